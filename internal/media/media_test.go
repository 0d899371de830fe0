package media

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProbe_PNG(t *testing.T) {
	info, err := Probe(pngBytes(t, 200, 100))
	require.NoError(t, err)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, ".png", info.Ext)
	assert.Equal(t, 200, info.Width)
	assert.Equal(t, 100, info.Height)
	assert.NotEmpty(t, info.BlurHash)
}

func TestProbe_RejectsNonImages(t *testing.T) {
	_, err := Probe([]byte("hello, not an image"))
	assert.ErrorIs(t, err, ErrNotImage)

	// PNG signature with a garbage body sniffs as PNG but cannot decode.
	broken := append([]byte("\x89PNG\x0D\x0A\x1A\x0A"), []byte("garbage")...)
	_, err = Probe(broken)
	assert.ErrorIs(t, err, ErrNotImage)
}

// pngHeader is a PNG signature plus an IHDR chunk declaring w x h RGB
// pixels, with no image data behind it.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolor

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestProbe_RejectsOversizedDimensions(t *testing.T) {
	data := pngHeader(50000, 50000)
	require.Less(t, len(data), 64)

	_, err := Probe(data)
	assert.ErrorIs(t, err, ErrTooManyPixels)
	assert.NotErrorIs(t, err, ErrNotImage)
}

func TestResizeForBlurHash(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Equal(t, small, resizeForBlurHash(small))

	wide := image.NewRGBA(image.Rect(0, 0, 640, 10))
	b := resizeForBlurHash(wide).Bounds()
	assert.Equal(t, 64, b.Dx())
	assert.Equal(t, 1, b.Dy())
}

func TestLocalStorage_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "ph-1.png", "image/png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/ph-1.png", url)

	got, err := os.ReadFile(filepath.Join(dir, "ph-1.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	_, err = s.Put(context.Background(), "../escape.png", "image/png", []byte("x"))
	assert.Error(t, err)
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Storage_Put(t *testing.T) {
	fake := &fakeS3{}
	s := newS3Storage(fake, S3Config{Bucket: "gallery", Prefix: "/photos/", PublicURL: "https://cdn.example.com/"})

	url, err := s.Put(context.Background(), "ph-1.jpg", "image/jpeg", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photos/ph-1.jpg", url)
	assert.Equal(t, "gallery", aws.ToString(fake.in.Bucket))
	assert.Equal(t, "photos/ph-1.jpg", aws.ToString(fake.in.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(fake.in.ContentType))
	assert.Equal(t, []byte("abc"), fake.body)

	fake.err = errors.New("denied")
	_, err = s.Put(context.Background(), "ph-2.jpg", "image/jpeg", []byte("abc"))
	assert.Error(t, err)
}

// Package media inspects uploaded images and stores their bytes.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"net/http"

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

var (
	// ErrNotImage is returned for uploads that are not a decodable image.
	ErrNotImage = errors.New("file is not a supported image")
	// ErrTooManyPixels is returned when the declared dimensions exceed MaxPixels.
	ErrTooManyPixels = errors.New("image dimensions too large")
)

// MaxPixels caps width*height of an accepted upload. Decoding allocates the
// full bitmap, so the header is checked first.
const MaxPixels = 50_000_000

// blurHashSize bounds the thumbnail BlurHash is computed from. The hash is a
// low-resolution placeholder, so a 64px source is indistinguishable.
const blurHashSize = 64

// ImageInfo is what the catalog records about an upload.
type ImageInfo struct {
	ContentType string
	Ext         string
	Width       int
	Height      int
	BlurHash    string
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Probe sniffs data, decodes it and computes its placeholder hash. The
// content type comes from the bytes, never from the client.
func Probe(data []byte) (ImageInfo, error) {
	ct := http.DetectContentType(data)
	ext, ok := extensions[ct]
	if !ok {
		return ImageInfo{}, ErrNotImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return ImageInfo{}, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	b := img.Bounds()

	// 4 horizontal, 3 vertical components keep the hash around 20-30 chars.
	hash, err := blurhash.Encode(4, 3, resizeForBlurHash(img))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("encode blurhash: %w", err)
	}

	return ImageInfo{
		ContentType: ct,
		Ext:         ext,
		Width:       b.Dx(),
		Height:      b.Dy(),
		BlurHash:    hash,
	}, nil
}

// resizeForBlurHash nearest-neighbour scales img to fit blurHashSize.
func resizeForBlurHash(img image.Image) image.Image {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= blurHashSize && srcH <= blurHashSize {
		return img
	}

	var dstW, dstH int
	if srcW > srcH {
		dstW = blurHashSize
		dstH = max(1, srcH*blurHashSize/srcW)
	} else {
		dstH = blurHashSize
		dstW = max(1, srcW*blurHashSize/srcH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xRatio := float64(srcW) / float64(dstW)
	yRatio := float64(srcH) / float64(dstH)
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			sx := int(float64(x) * xRatio)
			sy := int(float64(y) * yRatio)
			dst.Set(x, y, img.At(bounds.Min.X+sx, bounds.Min.Y+sy))
		}
	}
	return dst
}

package queue

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/photo-gallery/internal/logging"
)

func TestHandleMessage_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "activity.log")
	c := &ActivityConsumer{LogPath: path, Log: logging.Nop()}

	require.NoError(t, c.HandleMessage([]byte(`{"type":"user.registered","user_id":3,"email":"a@x.com","occurred_at":"2026-01-01T00:00:00Z"}`)))
	require.NoError(t, c.HandleMessage([]byte(`{"type":"photo.uploaded","photo_id":"ph-1","category":"nature","actor":"admin","occurred_at":"2026-01-01T00:00:01Z"}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[2026-01-01T00:00:00Z] User registered | user_id=3 | email="a@x.com"`, lines[0])
	assert.Equal(t, `[2026-01-01T00:00:01Z] Photo uploaded | photo_id=ph-1 | category="nature" | by="admin"`, lines[1])
}

func TestHandleMessage_RejectsBadPayloads(t *testing.T) {
	c := &ActivityConsumer{LogPath: filepath.Join(t.TempDir(), "a.log"), Log: logging.Nop()}
	assert.Error(t, c.HandleMessage([]byte("{not json")))
	assert.Error(t, c.HandleMessage([]byte(`{"user_id":1}`)))
}

func TestFormatLine_UnknownType(t *testing.T) {
	assert.Equal(t, "[now] something.else\n", FormatLine(Event{Type: "something.else", OccurredAt: "now"}))
}

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBeforeInitDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordRequest("GET", "/x", "200", 0.1)
		RecordAuthFailure("user", "missing_token")
		RecordEvent("user.registered", "ok")
	})
}

func TestInitAndHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Init(reg))

	RecordRequest("GET", "/api/user/favorites", "200", 0.02)
	RecordAuthFailure("admin", "forbidden")
	RecordEvent("photo.uploaded", "error")

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["gallery_http_requests_total"])
	assert.True(t, names["gallery_http_request_duration_seconds"])
	assert.True(t, names["gallery_auth_failures_total"])
	assert.True(t, names["gallery_events_published_total"])

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `gallery_auth_failures_total{guard="admin",reason="forbidden"} 1`)
}

func TestInitTwiceOnSameRegistryFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Init(reg))
	assert.Error(t, Init(reg))
}

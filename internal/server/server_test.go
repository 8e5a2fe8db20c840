package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/starbar/pkg/buildinfo"
	"github.com/matzehuels/starbar/pkg/cache"
	"github.com/matzehuels/starbar/pkg/observability"
)

func newTestServer(t *testing.T, c cache.Cache) *Server {
	t.Helper()
	t.Cleanup(observability.Reset)
	return New(Config{
		Cache:  c,
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
	})
}

func newRedisCache(t *testing.T) (*miniredis.Miniredis, *cache.RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewRedisCacheFromClient(client)
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetStarsFormats(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	tests := []struct {
		path        string
		contentType string
		prefix      []byte
	}{
		{"/stars.svg?rating=3.5&mode=half", "image/svg+xml", []byte("<svg")},
		{"/stars.png?rating=3.5&mode=half&scale=1", "image/png", []byte("\x89PNG")},
		{"/stars.json?rating=3.5&mode=half", "application/json", []byte("{")},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := get(t, h, tt.path)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Equal(t, tt.contentType, rr.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), tt.prefix))
			assert.NotEmpty(t, rr.Header().Get("ETag"))
		})
	}
}

func TestGetStarsJSONLayout(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	rr := get(t, h, "/stars.json?rating=2.25&total=4&mode=precise&text=2.25")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body struct {
		Rating     float64 `json:"rating"`
		TotalStars int     `json:"total_stars"`
		FillMode   string  `json:"fill_mode"`
		Stars      []struct {
			Level float64 `json:"level"`
			Kind  string  `json:"kind"`
		} `json:"stars"`
		Text *struct {
			Value string `json:"value"`
		} `json:"text"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	assert.Equal(t, 2.25, body.Rating)
	assert.Equal(t, 4, body.TotalStars)
	assert.Equal(t, "precise", body.FillMode)
	require.Len(t, body.Stars, 4)
	assert.Equal(t, 1.0, body.Stars[1].Level)
	assert.InDelta(t, 0.25, body.Stars[2].Level, 1e-9)
	assert.Equal(t, 0.0, body.Stars[3].Level)
	require.NotNil(t, body.Text)
	assert.Equal(t, "2.25", body.Text.Value)
}

func TestGetStarsBadRequests(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	tests := []struct {
		name string
		path string
		code string
	}{
		{"unknown format", "/stars.gif", "INVALID_FORMAT"},
		{"rating not a number", "/stars.svg?rating=abc", "INVALID_INPUT"},
		{"too many stars", "/stars.svg?total=500", "INVALID_INPUT"},
		{"zero stars", "/stars.svg?total=0", "INVALID_SETTINGS"},
		{"bad mode", "/stars.svg?mode=quarter", "INVALID_FILL_MODE"},
		{"bad color", "/stars.svg?filled=orange", "INVALID_COLOR"},
		{"correction out of range", "/stars.svg?mode=precise&correction=150", "INVALID_SETTINGS"},
		{"huge star", "/stars.svg?size=5000", "INVALID_INPUT"},
		{"huge font", "/stars.svg?text=hi&font_size=10000", "INVALID_INPUT"},
		{"font just over limit", "/stars.png?text=hi&font_size=128.5", "INVALID_INPUT"},
		{"huge scale", "/stars.png?text=hi&scale=1000", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, h, tt.path)
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

			var body errorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestGetStarsRedisCache(t *testing.T) {
	mr, rc := newRedisCache(t)
	h := newTestServer(t, rc).Handler()

	first := get(t, h, "/stars.svg?rating=4.2")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.NotEmpty(t, mr.Keys())

	second := get(t, h, "/stars.svg?rating=4.2")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	for _, k := range mr.Keys() {
		assert.True(t, strings.HasPrefix(k, "starbar:"), k)
	}
}

func TestGetStarsNamespace(t *testing.T) {
	mr, rc := newRedisCache(t)
	t.Cleanup(observability.Reset)
	s := New(Config{
		Cache:     rc,
		Namespace: "tenant-a",
		Logger:    log.NewWithOptions(io.Discard, log.Options{}),
	})

	rr := get(t, s.Handler(), "/stars.svg?rating=1")
	require.Equal(t, http.StatusOK, rr.Code)
	for _, k := range mr.Keys() {
		assert.Contains(t, k, "tenant-a")
	}
}

func TestGetStarsNotModified(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	first := get(t, h, "/stars.svg?rating=3")
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := get(t, h, "/stars.svg?rating=3", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.Bytes())

	other := get(t, h, "/stars.svg?rating=4", "If-None-Match", etag)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestGetStarsETagVariesWithRenderOptions(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	base := get(t, h, "/stars.png?rating=3&width=100")
	etag := base.Header().Get("ETag")
	require.NotEmpty(t, etag)

	variants := []string{
		"/stars.png?rating=3&width=200",
		"/stars.png?rating=3&width=100&scale=3",
		"/stars.png?rating=3&width=100&bg=%23ffffff",
	}
	for _, path := range variants {
		t.Run(path, func(t *testing.T) {
			rr := get(t, h, path, "If-None-Match", etag)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.NotEqual(t, etag, rr.Header().Get("ETag"))
		})
	}

	svg := get(t, h, "/stars.svg?rating=3")
	embedded := get(t, h, "/stars.svg?rating=3&embed_font=true", "If-None-Match", svg.Header().Get("ETag"))
	assert.Equal(t, http.StatusOK, embedded.Code)
}

func TestHealth(t *testing.T) {
	mr, rc := newRedisCache(t)
	h := newTestServer(t, rc).Handler()

	rr := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	var body healthBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, buildinfo.Version, body.Version)

	mr.Close()
	rr = get(t, h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHealthWithoutPinger(t *testing.T) {
	h := newTestServer(t, cache.NewNullCache()).Handler()
	rr := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMetrics(t *testing.T) {
	_, rc := newRedisCache(t)
	h := newTestServer(t, rc).Handler()

	get(t, h, "/stars.svg?rating=2")
	get(t, h, "/stars.svg?rating=2")
	get(t, h, "/stars.gif")

	rr := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()

	assert.Contains(t, body, `starbar_http_requests_total{method="GET",route="/stars.{format}",status="200"} 2`)
	assert.Contains(t, body, `starbar_http_requests_total{method="GET",route="/stars.{format}",status="400"} 1`)
	assert.Contains(t, body, `starbar_cache_events_total{event="hit",kind="artifact"} 1`)
	assert.Contains(t, body, `starbar_cache_events_total{event="miss",kind="artifact"} 1`)
	assert.Contains(t, body, `starbar_layout_duration_seconds_count{mode="full"} 2`)
	assert.Contains(t, body, `starbar_http_request_errors_total{method="GET",route="/stars.{format}"} 1`)
}

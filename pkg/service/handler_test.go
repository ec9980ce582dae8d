package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, metrics http.Handler) http.Handler {
	t.Helper()
	dir := sourceDir(t, map[string]string{"modal.tsx": modalSource})
	return New(testRegistry(t), Config{SourceDir: dir}).Handler(metrics)
}

func get(t *testing.T, h http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerComponent(t *testing.T) {
	h := newTestServer(t, nil)

	for _, target := range []string{"/r/glass-button", "/r/glass-button.json", "/r/modal.json"} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, h, target, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Header().Get("ETag"))
			assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

			var doc Document
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
			assert.Equal(t, ItemType, doc.Type)
			require.Len(t, doc.Files, 1)
		})
	}
}

func TestHandlerDocumentShape(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/r/modal", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"name", "type", "dependencies", "devDependencies", "registryDependencies", "files", "tailwind", "cssVars", "meta"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, []any{}, raw["devDependencies"])
	assert.Equal(t, map[string]any{}, raw["cssVars"])
}

func TestHandlerSameBodyWithAndWithoutSuffix(t *testing.T) {
	h := newTestServer(t, nil)
	a := get(t, h, "/r/modal", nil)
	b := get(t, h, "/r/modal.json", nil)
	assert.Equal(t, a.Body.String(), b.Body.String())
	assert.Equal(t, a.Header().Get("ETag"), b.Header().Get("ETag"))
}

func TestHandlerNotFound(t *testing.T) {
	h := newTestServer(t, nil)
	for _, target := range []string{"/r/nope", "/r/nope.json", "/r/..", "/r/.hidden", "/r/", "/r/a/b", "/r/modal/extra.json"} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, h, target, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"error":"Component not found"}`, rec.Body.String())
			assert.Empty(t, rec.Header().Get("ETag"))
		})
	}
}

func TestHandlerNotModified(t *testing.T) {
	h := newTestServer(t, nil)
	first := get(t, h, "/r/glass-button", nil)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec := get(t, h, "/r/glass-button", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandlerRequestID(t *testing.T) {
	h := newTestServer(t, nil)
	rec := get(t, h, "/healthz", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	a := get(t, h, "/healthz", nil).Header().Get(RequestIDHeader)
	b := get(t, h, "/healthz", nil).Header().Get(RequestIDHeader)
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestHandlerIndex(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/registry.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var idx Index
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &idx))
	assert.Equal(t, DefaultName, idx.Name)
	require.Len(t, idx.Items, 1)
	assert.Equal(t, "glass-button", idx.Items[0].Name)
}

func TestHandlerHealthz(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHandlerMetrics(t *testing.T) {
	without := get(t, newTestServer(t, nil), "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, without.Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# metrics"))
	})
	with := get(t, newTestServer(t, metrics), "/metrics", nil)
	assert.Equal(t, http.StatusOK, with.Code)
	assert.Equal(t, "# metrics", with.Body.String())
}

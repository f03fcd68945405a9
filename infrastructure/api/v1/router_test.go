package v1_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/csvsplit"
	"github.com/helixml/csvsplit/infrastructure/api/middleware"
	v1 "github.com/helixml/csvsplit/infrastructure/api/v1"
	"github.com/helixml/csvsplit/infrastructure/api/v1/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, opts ...csvsplit.Option) (chi.Router, *csvsplit.Client) {
	t.Helper()
	opts = append([]csvsplit.Option{
		csvsplit.WithDataDir(t.TempDir()),
		csvsplit.WithLogger(slog.New(slog.DiscardHandler)),
	}, opts...)
	client, err := csvsplit.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	router := chi.NewRouter()
	router.Mount("/api/v1/split", v1.NewSplitRouter(client).Routes())
	router.Mount("/api/v1/runs", v1.NewRunsRouter(client).Routes())
	return router, client
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func post(t *testing.T, router http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/split", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) middleware.ErrorObject {
	t.Helper()
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	return resp.Errors[0]
}

func TestSplit_WithHeader(t *testing.T) {
	router, _ := newTestRouter(t)
	source := writeSource(t, "h\n1\n2\n3\n")

	w := post(t, router, map[string]any{"path": source, "num_lines": 2, "with_header": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.SplitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Files)
	assert.Equal(t, 1, resp.HeaderLines)
	assert.Equal(t, 3, resp.DataLines)
	assert.Equal(t, filepath.Join(filepath.Dir(source), "data-2.csv"), resp.Paths[1])

	got, err := os.ReadFile(resp.Paths[1])
	require.NoError(t, err)
	assert.Equal(t, "h\n3\n", string(got))
}

func TestSplit_HeaderLinesTakesPrecedence(t *testing.T) {
	router, _ := newTestRouter(t)
	source := writeSource(t, "h1\nh2\nd\n")

	w := post(t, router, map[string]any{"path": source, "num_lines": 5, "header_lines": 2, "with_header": true})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SplitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.HeaderLines)
	assert.Equal(t, 1, resp.DataLines)
}

func TestSplit_DefaultNumLines(t *testing.T) {
	router, _ := newTestRouter(t, csvsplit.WithDefaultNumLines(2))
	source := writeSource(t, "a\nb\nc\n")

	w := post(t, router, map[string]any{"path": source})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SplitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Files)
}

func TestSplit_InvalidNumLines(t *testing.T) {
	router, _ := newTestRouter(t)
	source := writeSource(t, "a\n")

	w := post(t, router, map[string]any{"path": source, "num_lines": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Detail, "num lines cannot be 0")
}

func TestSplit_PathDerivationFailure(t *testing.T) {
	router, _ := newTestRouter(t)
	dir := t.TempDir()

	w := post(t, router, map[string]any{"path": filepath.Join(dir, "noext"), "num_lines": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSplit_MissingSource(t *testing.T) {
	router, _ := newTestRouter(t)

	w := post(t, router, map[string]any{"path": filepath.Join(t.TempDir(), "missing.csv"), "num_lines": 1})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeError(t, w).Detail, "missing.csv")
}

func TestSplit_MalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/split", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRuns_List(t *testing.T) {
	router, _ := newTestRouter(t)
	source := writeSource(t, "a\nb\n")

	require.Equal(t, http.StatusOK, post(t, router, map[string]any{"path": source, "num_lines": 1}).Code)
	require.Equal(t, http.StatusInternalServerError, post(t, router, map[string]any{"path": source + ".missing.csv", "num_lines": 1}).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs?limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.RunListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	states := []string{resp.Data[0].State, resp.Data[1].State}
	assert.ElementsMatch(t, []string{"completed", "failed"}, states)
}

func TestRuns_InvalidLimit(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs?limit=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRuns_HistoryDisabled(t *testing.T) {
	router, _ := newTestRouter(t, csvsplit.WithoutHistory())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

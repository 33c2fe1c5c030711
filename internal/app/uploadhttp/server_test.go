package uploadhttp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/slicebread/internal/config"
	"github.com/yourname/slicebread/pkg/uploadproto"
)

func newTestServer(t *testing.T, mutate ...func(*config.Config)) (http.Handler, string) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	for _, m := range mutate {
		m(cfg)
	}
	return New(cfg), cfg.DataDir
}

func chunkRequest(method, path, fileID string, idx, total int, name string, body []byte) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(uploadproto.HeaderFileID, fileID)
	req.Header.Set(uploadproto.HeaderChunkIndex, strconv.Itoa(idx))
	req.Header.Set(uploadproto.HeaderTotalChunks, strconv.Itoa(total))
	req.Header.Set(uploadproto.HeaderFileName, name)
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReceiveChunk_HelloWorld(t *testing.T) {
	h, root := newTestServer(t)

	rec := serve(h, chunkRequest(http.MethodPost, "/upload", "t1", 0, 2, "hello.txt", []byte("Hello, ")))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uploadproto.UploadedMessage, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(uploadproto.HeaderRequestID))

	rec = serve(h, chunkRequest(http.MethodPut, "/", "t1", 1, 2, "hello.txt", []byte("World!")))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uploadproto.UploadedMessage, rec.Body.String())

	got, err := os.ReadFile(filepath.Join(root, "t1", "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", string(got))

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/uploads/t1/hello.txt", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello, World!", rec.Body.String())
	assert.Equal(t, "13", rec.Header().Get("Content-Length"))
}

func TestReceiveChunk_BadRequests(t *testing.T) {
	h, root := newTestServer(t)

	tests := []struct {
		name string
		req  *http.Request
		want string
	}{
		{
			name: "missing header",
			req:  httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("x")),
			want: "Missing header: X-File-Id",
		},
		{
			name: "invalid header",
			req: func() *http.Request {
				r := chunkRequest(http.MethodPost, "/upload", "t", 0, 1, "f", nil)
				r.Header.Set(uploadproto.HeaderChunkIndex, "first")
				return r
			}(),
			want: "Invalid header value: X-Chunk-Index",
		},
		{
			name: "index out of range",
			req:  chunkRequest(http.MethodPost, "/upload", "t", 2, 1, "f", nil),
			want: "Invalid chunk index: 2 >= total chunks: 1",
		},
		{
			name: "zero total",
			req:  chunkRequest(http.MethodPost, "/upload", "t", 0, 0, "f", nil),
			want: "Total chunks must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want+"\n", rec.Body.String())
		})
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReceiveChunk_MissingChunk(t *testing.T) {
	h, root := newTestServer(t)

	rec := serve(h, chunkRequest(http.MethodPost, "/upload", "gap", 0, 3, "f", []byte("a")))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(h, chunkRequest(http.MethodPost, "/upload", "gap", 2, 3, "f", []byte("c")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing chunk: 1\n", rec.Body.String())

	for _, name := range []string{"chunk_0.bin", "chunk_2.bin"} {
		_, err := os.Stat(filepath.Join(root, "gap", name))
		assert.NoError(t, err)
	}
}

func TestReceiveChunk_IOErrorIs500(t *testing.T) {
	h, root := newTestServer(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "io", "taken"), 0o755))

	rec := serve(h, chunkRequest(http.MethodPost, "/upload", "io", 0, 1, "taken", []byte("x")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "io error")
}

func TestReceiveChunk_BodyLimit(t *testing.T) {
	h, root := newTestServer(t, func(c *config.Config) { c.MaxChunkBytes = 4 })

	rec := serve(h, chunkRequest(http.MethodPost, "/upload", "big", 0, 2, "f", []byte("0123456789")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	_, err := os.Stat(filepath.Join(root, "big"))
	assert.True(t, os.IsNotExist(err))

	rec = serve(h, chunkRequest(http.MethodPost, "/upload", "big", 0, 2, "f", []byte("0123")))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestReceiveChunk_StrictPaths(t *testing.T) {
	h, _ := newTestServer(t, func(c *config.Config) { c.StrictPaths = true })

	rec := serve(h, chunkRequest(http.MethodPost, "/upload", "..", 0, 1, "f", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid header value: X-File-Id\n", rec.Body.String())
}

func TestInspectChunk(t *testing.T) {
	h, _ := newTestServer(t)

	rec := serve(h, chunkRequest(http.MethodPost, "/upload", "insp", 0, 2, "f", []byte("12345")))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodHead, "/uploads/insp/chunks/0", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get(uploadproto.HeaderSize))

	rec = serve(h, httptest.NewRequest(http.MethodHead, "/uploads/insp/chunks/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodHead, "/uploads/insp/chunks/x", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFetchFile_NotFound(t *testing.T) {
	h, _ := newTestServer(t)

	rec := serve(h, chunkRequest(http.MethodPost, "/upload", "nf", 0, 2, "f", []byte("x")))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/uploads/nf/f", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// чанки наружу не отдаются
	rec = serve(h, httptest.NewRequest(http.MethodGet, "/uploads/nf/chunk_0.bin", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)

	serve(h, chunkRequest(http.MethodPost, "/upload", "a", 0, 2, "f", []byte("abc")))
	serve(h, chunkRequest(http.MethodPost, "/upload", "b", 0, 1, "f", []byte("defg")))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats healthStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.True(t, stats.OK)
	assert.Equal(t, int64(7), stats.TotalBytes)
	assert.Equal(t, "7 B", stats.Total)
	assert.Equal(t, 1, stats.PendingUploads)
	assert.Equal(t, 1, stats.PendingChunks)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	serve(h, chunkRequest(http.MethodPost, "/upload", "m", 0, 1, "f", []byte("abc")))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "slicebread_chunks_received_total")
	assert.Contains(t, string(body), "slicebread_uploads_assembled_total")
}

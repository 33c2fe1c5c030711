package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/slicebread/pkg/uploadclient"
)

func Test_GC_RemovesAbandonedUploads(t *testing.T) {
	srv, root := startServer(t)
	c := uploadclient.New()

	// незавершённая загрузка: только чанк 0 из 3
	require.NoError(t, c.PutChunk(context.Background(), srv.URL, uploadclient.PutChunkRequest{
		FileID: "stale", FileName: "f.bin", Index: 0, TotalChunks: 3,
		Reader: strings.NewReader("abc"), Size: 3,
	}))
	old := time.Now().Add(-48 * time.Hour)
	chunk := filepath.Join(root, "stale", "chunk_0.bin")
	require.NoError(t, os.Chtimes(chunk, old, old))

	// завершённая загрузка GC не трогает
	_, err := c.Upload(context.Background(), srv.URL, uploadclient.UploadRequest{
		FileID: "done", FileName: "ok.txt", Reader: strings.NewReader("ok"), Size: 2,
	})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/admin/gc?ttl=24h", "", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		RemovedChunks int `json:"removed_chunks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 1, out.RemovedChunks)

	_, err = os.Stat(filepath.Join(root, "stale"))
	assert.True(t, os.IsNotExist(err), "stale dir not removed")
	_, err = os.Stat(filepath.Join(root, "done", "ok.txt"))
	assert.NoError(t, err)
}

package uploadhttp

import (
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yourname/slicebread/internal/upload"
	"github.com/yourname/slicebread/pkg/uploadproto"
)

// inspectChunk отвечает на HEAD-запросы размером сохранённого чанка.
func (a *Server) inspectChunk(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	idx, err := strconv.ParseUint(chi.URLParam(r, "idx"), 10, 64)
	if err != nil || !safeSegment(fileID) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(upload.ChunkPath(a.dataDir, fileID, idx))
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set(uploadproto.HeaderSize, strconv.FormatInt(info.Size(), 10))
	w.WriteHeader(http.StatusOK)
}

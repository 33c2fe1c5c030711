package uploadhttp

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yourname/slicebread/internal/models"
	"github.com/yourname/slicebread/internal/upload"
	"github.com/yourname/slicebread/pkg/httperrors"
)

// fetchFile обслуживает GET-запросы, возвращая собранный файл.
func (a *Server) fetchFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	fileName := chi.URLParam(r, "fileName")

	// Чанки: внутреннее состояние загрузки, наружу отдаём только собранные файлы.
	if !safeSegment(fileID) || !safeSegment(fileName) || upload.IsChunkFile(fileName) {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(upload.FilePath(a.dataDir, fileID, fileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%s/%s: %w", fileID, fileName, models.ErrNotFound)
		}
		httperrors.Write(w, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		httperrors.Write(w, err)
		return
	}
	if info.IsDir() {
		http.NotFound(w, r)
		return
	}

	size := info.Size()
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Content-Type", "application/octet-stream")

	if _, err = io.Copy(w, f); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func safeSegment(s string) bool {
	return s != "" && s != "." && s != ".."
}

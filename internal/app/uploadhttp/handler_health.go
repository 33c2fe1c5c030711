package uploadhttp

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/yourname/slicebread/internal/upload"
)

// healthStats описывает payload ответа /health.
type healthStats struct {
	OK             bool   `json:"ok"`
	TotalBytes     int64  `json:"total_bytes"`
	Total          string `json:"total"`
	PendingUploads int    `json:"pending_uploads"`
	PendingChunks  int    `json:"pending_chunks"`
}

// health возвращает агрегированную статистику по каталогу загрузок.
func (a *Server) health(w http.ResponseWriter, r *http.Request) {
	var (
		total   int64
		chunks  int
		pending = map[string]struct{}{}
	)
	// Проходим по всем файлам в dataDir: суммируем размер и считаем незавершённые загрузки.
	err := filepath.WalkDir(a.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()

		if upload.IsChunkFile(d.Name()) {
			chunks++
			pending[filepath.Dir(path)] = struct{}{}
		}

		return nil
	})

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(healthStats{
		OK:             true,
		TotalBytes:     total,
		Total:          humanize.Bytes(uint64(total)),
		PendingUploads: len(pending),
		PendingChunks:  chunks,
	})

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

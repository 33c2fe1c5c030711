package uploadhttp

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yourname/slicebread/internal/logger"
	"github.com/yourname/slicebread/internal/upload"
	"github.com/yourname/slicebread/pkg/httperrors"
)

const manualGCTTL = 24 * time.Hour

type gcResponse struct {
	RemovedChunks int `json:"removed_chunks"`
}

// gcOnce вручную запускает сбор брошенных загрузок. TTL можно передать в ?ttl=.
func (a *Server) gcOnce(w http.ResponseWriter, r *http.Request) {
	ttl := a.gcTTL
	if ttl <= 0 {
		ttl = manualGCTTL
	}
	if v := r.URL.Query().Get("ttl"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			http.Error(w, "invalid ttl", http.StatusBadRequest)
			return
		}
		ttl = d
	}

	removed, err := sweepOnce(a.dataDir, ttl)
	if err != nil {
		httperrors.Write(w, err)
		return
	}
	logger.Ctx(r.Context()).Info().Int("removed_chunks", removed).Dur("ttl", ttl).Msg("manual gc finished")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(gcResponse{RemovedChunks: removed})
}

// StartGC стартует периодическую очистку каталога. Возвращает функцию остановки.
func StartGC(root string, ttl time.Duration, every time.Duration) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-ticker.C:
				removed, err := sweepOnce(root, ttl)
				if err != nil {
					logger.Warn().Err(err).Str("root", root).Msg("gc sweep failed")
					continue
				}
				if removed > 0 {
					logger.Info().Int("removed_chunks", removed).Msg("gc sweep finished")
				}
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}

// sweepOnce удаляет чанки загрузок, самый свежий чанк которых старше ttl.
// Собранные файлы не трогаются; каталог удаляется, только если опустел.
func sweepOnce(root string, ttl time.Duration) (int, error) {
	now := time.Now()
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	var removed int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		dir := filepath.Join(root, e.Name())
		chunks, newest, err := listChunks(dir)
		if err != nil || len(chunks) == 0 {
			continue
		}
		if now.Sub(newest) < ttl {
			continue
		}

		for _, name := range chunks {
			if err := os.Remove(filepath.Join(dir, name)); err == nil {
				removed++
				gcRemovedChunksTotal.Inc()
			}
		}
		_ = os.Remove(dir)
	}

	return removed, nil
}

// listChunks возвращает имена чанков в dir и время модификации самого свежего из них.
func listChunks(dir string) ([]string, time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, time.Time{}, err
	}

	var (
		names  []string
		newest time.Time
	)
	for _, e := range entries {
		if e.IsDir() || !upload.IsChunkFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		names = append(names, e.Name())
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}

	return names, newest, nil
}

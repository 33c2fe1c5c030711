package uploadhttp

import (
	"io"
	"net/http"

	"github.com/yourname/slicebread/internal/logger"
	"github.com/yourname/slicebread/internal/upload"
	"github.com/yourname/slicebread/pkg/httperrors"
	"github.com/yourname/slicebread/pkg/uploadproto"
)

// receiveChunk принимает один чанк и, если он последний, собирает файл.
// Промежуточный и финальный чанки получают одинаковый ответ 201.
func (a *Server) receiveChunk(w http.ResponseWriter, r *http.Request) {
	var body io.Reader = r.Body
	if a.maxChunk > 0 {
		body = http.MaxBytesReader(w, r.Body, a.maxChunk)
	}

	res, err := a.uploads.HandleChunk(r.Context(), r.Header, body)
	if err != nil {
		kind := upload.KindOf(err)
		chunkFailuresTotal.WithLabelValues(kind.String()).Inc()

		ev := logger.Ctx(r.Context()).Warn()
		if kind != upload.KindBadRequest {
			ev = logger.Ctx(r.Context()).Error()
		}
		ev.Err(err).Str("kind", kind.String()).Msg("chunk rejected")

		httperrors.Write(w, err)
		return
	}

	chunksReceivedTotal.Inc()
	chunkBytesTotal.Add(float64(res.ChunkSize))
	if res.Assembled {
		uploadsAssembledTotal.Inc()
		assembledBytesTotal.Add(float64(res.Size))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	_, _ = io.WriteString(w, uploadproto.UploadedMessage)
}

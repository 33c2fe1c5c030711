package uploadhttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/yourname/slicebread/internal/logger"
	"github.com/yourname/slicebread/pkg/uploadproto"
)

// requestContext вешает на запрос логгер с request_id и меряет длительность обработки.
func (a *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(uploadproto.HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(uploadproto.HeaderRequestID, reqID)

		l := logger.Global().With().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(logger.WithLogger(r.Context(), &l)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		requestDuration.WithLabelValues(r.Method, strconv.Itoa(status)).Observe(elapsed.Seconds())
		l.Debug().Int("status", status).Dur("elapsed", elapsed).Int("bytes", ww.BytesWritten()).Msg("request served")
	})
}

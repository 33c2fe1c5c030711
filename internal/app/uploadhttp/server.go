package uploadhttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourname/slicebread/internal/config"
	"github.com/yourname/slicebread/internal/upload"
	"github.com/yourname/slicebread/pkg/uploadproto"
)

// Server serves the chunked upload HTTP API on top of the local filesystem.
type Server struct {
	dataDir  string
	maxChunk int64
	gcTTL    time.Duration
	uploads  *upload.Handler
}

// New создаёт HTTP-обработчик загрузок поверх каталога cfg.DataDir.
func New(cfg *config.Config) http.Handler {
	return NewServer(cfg).routes()
}

// NewServer собирает Server без маршрутизатора; удобно, когда нужен доступ к Handler.
func NewServer(cfg *config.Config) *Server {
	var opts []upload.Option
	if cfg.StrictPaths {
		opts = append(opts, upload.WithStrictPaths())
	}
	if cfg.SerializeUploads {
		opts = append(opts, upload.WithUploadLocks(0))
	}

	return &Server{
		dataDir:  cfg.DataDir,
		maxChunk: cfg.MaxChunkBytes,
		gcTTL:    cfg.GCTTL,
		uploads:  upload.NewHandler(cfg.DataDir, opts...),
	}
}

// Handler возвращает маршрутизатор сервера.
func (a *Server) Handler() http.Handler {
	return a.routes()
}

// routes регистрирует обработчики чанков, файлов, здоровья и GC.
func (a *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(a.requestContext)
	r.Use(middleware.Recoverer)

	// Корень принимает чанки так же, как /upload: старые клиенты шлют на любой путь.
	for _, path := range []string{"/", uploadproto.UploadPath} {
		r.Post(path, a.receiveChunk)
		r.Put(path, a.receiveChunk)
	}

	r.Get("/uploads/{fileID}/{fileName}", a.fetchFile)
	r.Head("/uploads/{fileID}/chunks/{idx}", a.inspectChunk)

	r.Get("/health", a.health)
	r.Post("/admin/gc", a.gcOnce)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

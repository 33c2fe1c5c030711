package integration

import (
	"net/http/httptest"
	"testing"

	"github.com/yourname/slicebread/internal/app/uploadhttp"
	"github.com/yourname/slicebread/internal/config"
)

// startServer поднимает сервер загрузок поверх временного каталога.
func startServer(t *testing.T, mutate ...func(*config.Config)) (*httptest.Server, string) {
	t.Helper()

	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	for _, m := range mutate {
		m(cfg)
	}

	srv := httptest.NewServer(uploadhttp.New(cfg))
	t.Cleanup(srv.Close)
	return srv, cfg.DataDir
}

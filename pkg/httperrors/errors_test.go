package httperrors

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourname/slicebread/internal/models"
	"github.com/yourname/slicebread/internal/upload"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"bad request", upload.BadRequest("Missing header: X-File-Id"), http.StatusBadRequest, "Missing header: X-File-Id\n"},
		{"io", upload.IOError("write chunk 0", fs.ErrPermission), http.StatusInternalServerError, "io error: write chunk 0: permission denied\n"},
		{"transport", upload.TransportError(errors.New("reset")), http.StatusInternalServerError, "internal server error: read request body: reset\n"},
		{"wrapped bad request", fmt.Errorf("chunk: %w", upload.BadRequest("Missing chunk: 1")), http.StatusBadRequest, "chunk: Missing chunk: 1\n"},
		{"not found", fmt.Errorf("open x: %w", models.ErrNotFound), http.StatusNotFound, "open x: file not found\n"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Write(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		})
	}
}

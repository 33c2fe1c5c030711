package httperrors

import (
	"errors"
	"net/http"

	"github.com/yourname/slicebread/internal/models"
	"github.com/yourname/slicebread/internal/upload"
)

// Write переводит ошибку в статус и текстовое тело ответа.
func Write(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), Status(err))
}

// Status возвращает HTTP-статус для ошибки.
func Status(err error) int {
	var uerr *upload.Error
	switch {
	case errors.As(err, &uerr):
		return uerr.Status()
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

package upload

import (
	"errors"
	"net/http"
)

// Kind классифицирует ошибку обработки чанка.
type Kind uint8

const (
	// KindInternal: непредвиденная ошибка.
	KindInternal Kind = iota
	// KindBadRequest: ошибка клиента: заголовки, диапазон индекса, отсутствующий чанк.
	KindBadRequest
	// KindIO: ошибка файловой системы.
	KindIO
	// KindTransport: не удалось прочитать тело запроса.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindIO:
		return "io"
	case KindTransport:
		return "transport"
	default:
		return "internal"
	}
}

// Error описывает ошибку обработки чанка с видом, сообщением и исходной причиной.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status возвращает HTTP-статус для вида ошибки.
func (e *Error) Status() int {
	if e.Kind == KindBadRequest {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Msg: msg}
}

func IOError(msg string, err error) *Error {
	return &Error{Kind: KindIO, Msg: "io error: " + msg, Err: err}
}

func TransportError(err error) *Error {
	return &Error{Kind: KindTransport, Msg: "internal server error: read request body", Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: "internal server error: " + msg, Err: err}
}

// KindOf достаёт вид ошибки из цепочки; всё, что не *Error, считается внутренней ошибкой.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsBadRequest сообщает, что ошибку может исправить клиент.
func IsBadRequest(err error) bool {
	return err != nil && KindOf(err) == KindBadRequest
}

package upload

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/yourname/slicebread/internal/logger"
)

// Handler принимает чанки и собирает из них файлы в каталоге root.
// Безопасен для конкурентного использования.
type Handler struct {
	root   string
	strict bool
	locks  *uploadLocks
}

// Option настраивает Handler.
type Option func(*Handler)

// WithStrictPaths запрещает разделители пути и "."/".." в X-File-Id и X-File-Name.
func WithStrictPaths() Option {
	return func(h *Handler) {
		h.strict = true
	}
}

// WithUploadLocks включает взаимное исключение запросов с одинаковым fileID.
// Без этой опции параллельные запросы одной загрузки выполняются без координации.
func WithUploadLocks(stripes int) Option {
	return func(h *Handler) {
		h.locks = newUploadLocks(stripes)
	}
}

// NewHandler создаёт обработчик чанков поверх каталога root.
func NewHandler(root string, opts ...Option) *Handler {
	h := &Handler{root: root}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Root возвращает базовый каталог загрузок.
func (h *Handler) Root() string {
	return h.root
}

// Result описывает исход успешно обработанного чанка.
type Result struct {
	Meta ChunkMeta
	// ChunkSize: длина тела запроса.
	ChunkSize int64
	// Assembled выставлен, если чанк запустил сборку и она прошла.
	Assembled bool
	// Path: путь до чанка или, после сборки, до итогового файла.
	Path string
	// Size: размер итогового файла, если Assembled.
	Size int64
}

// HandleChunk валидирует заголовки, сохраняет тело как чанк и, если чанк
// последний по индексу, собирает файл.
func (h *Handler) HandleChunk(ctx context.Context, header http.Header, body io.Reader) (Result, error) {
	meta, err := ParseChunkMeta(header, h.strict)
	if err != nil {
		return Result{}, err
	}

	var data []byte
	if body != nil {
		data, err = io.ReadAll(body)
		if err != nil {
			return Result{}, TransportError(err)
		}
	}

	if h.locks != nil {
		unlock := h.locks.lock(meta.FileID)
		defer unlock()
	}

	log := logger.Ctx(ctx).With().
		Str("file_id", meta.FileID).
		Uint64("chunk_index", meta.ChunkIndex).
		Uint64("total_chunks", meta.TotalChunks).
		Logger()

	dir := UploadDir(h.root, meta.FileID)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, IOError("create upload dir", err)
	}

	chunk := ChunkPath(h.root, meta.FileID, meta.ChunkIndex)
	if err = os.WriteFile(chunk, data, 0o644); err != nil {
		return Result{}, IOError("write chunk "+strconv.FormatUint(meta.ChunkIndex, 10), err)
	}
	log.Debug().Int("bytes", len(data)).Msg("chunk stored")

	res := Result{
		Meta:      meta,
		ChunkSize: int64(len(data)),
		Path:      chunk,
	}
	if !meta.IsLast() {
		return res, nil
	}

	if err = checkChunks(h.root, meta); err != nil {
		log.Warn().Err(err).Msg("finalization aborted")
		return Result{}, err
	}

	dst := FilePath(h.root, meta.FileID, meta.FileName)
	size, err := assemble(h.root, meta, dst)
	if err != nil {
		log.Error().Err(err).Str("path", dst).Msg("assembly failed")
		return Result{}, err
	}
	log.Info().Str("path", dst).Int64("size", size).Msg("upload assembled")

	res.Assembled = true
	res.Path = dst
	res.Size = size
	return res, nil
}

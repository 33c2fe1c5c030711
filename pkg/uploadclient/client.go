// Package uploadclient отправляет файлы на сервер загрузки по чанкам.
package uploadclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yourname/slicebread/internal/models"
	"github.com/yourname/slicebread/pkg/uploadproto"
)

const (
	defaultChunkSize   = 8 << 20
	defaultConcurrency = 4
	maxErrorBody       = 4 << 10
)

// PutChunkRequest описывает один чанк.
type PutChunkRequest struct {
	FileID      string
	FileName    string
	Index       int
	TotalChunks int
	Reader      io.Reader
	Size        int64
}

// UploadRequest описывает файл целиком. FileID генерируется, если пуст.
type UploadRequest struct {
	FileID   string
	FileName string
	Reader   io.ReaderAt
	Size     int64
}

type Client interface {
	// PutChunk отправить один чанк
	PutChunk(ctx context.Context, baseURL string, req PutChunkRequest) error
	// Upload разбить файл на чанки и отправить все
	Upload(ctx context.Context, baseURL string, req UploadRequest) (models.UploadResult, error)
	// Download скачать собранный файл
	Download(ctx context.Context, baseURL, fileID, fileName string) (io.ReadCloser, error)
}

// StatusError возвращается, если сервер ответил не 2xx.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upload server: %s", e.Status)
	}
	return fmt.Sprintf("upload server: %s: %s", e.Status, e.Body)
}

// Unwrap позволяет проверять 404 через errors.Is(err, models.ErrNotFound).
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return models.ErrNotFound
	}
	return nil
}

type HTTPClient struct {
	c           *http.Client
	chunkSize   int64
	parts       int
	concurrency int
	progress    io.Writer
}

type Option func(*HTTPClient)

func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.c = c }
}

// WithChunkSize задаёт максимальный размер чанка. Игнорируется, если задан WithParts.
func WithChunkSize(n int64) Option {
	return func(h *HTTPClient) { h.chunkSize = n }
}

// WithParts задаёт желаемое число чанков вместо их размера.
func WithParts(n int) Option {
	return func(h *HTTPClient) { h.parts = n }
}

// WithConcurrency ограничивает число одновременно отправляемых чанков.
func WithConcurrency(n int) Option {
	return func(h *HTTPClient) { h.concurrency = n }
}

// WithProgress включает индикатор выполнения в out.
func WithProgress(out io.Writer) Option {
	return func(h *HTTPClient) { h.progress = out }
}

// New создаёт HTTP-клиент по умолчанию.
func New(opts ...Option) *HTTPClient {
	h := &HTTPClient{
		c:           &http.Client{},
		chunkSize:   defaultChunkSize,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.concurrency <= 0 {
		h.concurrency = 1
	}
	return h
}

var _ Client = (*HTTPClient)(nil)

// Plan возвращает разбиение файла длиной size на чанки.
func (h *HTTPClient) Plan(size int64) models.ChunkPlan {
	if h.parts > 0 {
		return PlanByParts(size, h.parts)
	}
	return PlanBySize(size, h.chunkSize)
}

// PutChunk загружает один чанк на сервер.
func (h *HTTPClient) PutChunk(ctx context.Context, baseURL string, req PutChunkRequest) error {
	u := strings.TrimRight(baseURL, "/") + uploadproto.UploadPath

	body := req.Reader
	if body == nil || req.Size == 0 {
		body = http.NoBody
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return err
	}
	httpReq.ContentLength = req.Size
	httpReq.Header.Set("Content-Type", "application/octet-stream")
	httpReq.Header.Set(uploadproto.HeaderFileID, req.FileID)
	httpReq.Header.Set(uploadproto.HeaderChunkIndex, strconv.Itoa(req.Index))
	httpReq.Header.Set(uploadproto.HeaderTotalChunks, strconv.Itoa(req.TotalChunks))
	httpReq.Header.Set(uploadproto.HeaderFileName, req.FileName)

	resp, err := h.c.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return readStatusError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Upload отправляет все чанки, кроме последнего, параллельно, а последний
// после них: на нём сервер собирает файл.
func (h *HTTPClient) Upload(ctx context.Context, baseURL string, req UploadRequest) (models.UploadResult, error) {
	name := strings.TrimSpace(req.FileName)
	if name == "" {
		return models.UploadResult{}, models.ErrNoFileName
	}
	if req.Size < 0 {
		return models.UploadResult{}, fmt.Errorf("size must be >= 0")
	}
	if req.Reader == nil && req.Size > 0 {
		return models.UploadResult{}, fmt.Errorf("reader is required for non-empty file")
	}

	fileID := req.FileID
	if fileID == "" {
		fileID = uuid.NewString()
	}

	plan := h.Plan(req.Size)
	if plan.Total <= 0 {
		return models.UploadResult{}, models.ErrEmptyPlan
	}

	bar := newProgressBar(h.progress, fmt.Sprintf("Uploading %s (%d chunks)", name, plan.Total), req.Size)

	send := func(ctx context.Context, idx int) error {
		off, n := plan.ChunkRange(idx, req.Size)
		var body io.Reader
		if n > 0 {
			body = io.NewSectionReader(req.Reader, off, n)
			if bar != nil {
				body = io.TeeReader(body, bar)
			}
		}
		return h.PutChunk(ctx, baseURL, PutChunkRequest{
			FileID:      fileID,
			FileName:    name,
			Index:       idx,
			TotalChunks: plan.Total,
			Reader:      body,
			Size:        n,
		})
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(h.concurrency)
	for idx := 0; idx < plan.Total-1; idx++ {
		eg.Go(func() error {
			if err := send(egCtx, idx); err != nil {
				return fmt.Errorf("chunk %d: %w", idx, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		bar.Fail(err)
		return models.UploadResult{}, err
	}

	last := plan.Total - 1
	if err := send(ctx, last); err != nil {
		err = fmt.Errorf("chunk %d: %w", last, err)
		bar.Fail(err)
		return models.UploadResult{}, err
	}
	bar.Finish()

	return models.UploadResult{
		FileID:   fileID,
		FileName: name,
		Size:     req.Size,
		Parts:    plan.Total,
	}, nil
}

// Download скачивает собранный файл и возвращает поток с телом.
func (h *HTTPClient) Download(ctx context.Context, baseURL, fileID, fileName string) (io.ReadCloser, error) {
	u := fmt.Sprintf(uploadproto.FilePathFormat, strings.TrimRight(baseURL, "/"), fileID, fileName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, readStatusError(resp)
	}

	return resp.Body, nil
}

func readStatusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Code:   resp.StatusCode,
		Status: resp.Status,
		Body:   strings.TrimSpace(string(b)),
	}
}

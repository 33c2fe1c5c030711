package upload

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/yourname/slicebread/pkg/uploadproto"
)

// ChunkMeta хранит разобранные заголовки одного чанка.
type ChunkMeta struct {
	FileID      string
	ChunkIndex  uint64
	TotalChunks uint64
	FileName    string
}

// IsLast сообщает, что чанк запускает сборку файла.
func (m ChunkMeta) IsLast() bool {
	return m.ChunkIndex == m.TotalChunks-1
}

// requiredHeaders задаёт порядок проверки: первый отсутствующий заголовок попадает в ответ.
var requiredHeaders = []string{
	uploadproto.HeaderFileID,
	uploadproto.HeaderChunkIndex,
	uploadproto.HeaderTotalChunks,
	uploadproto.HeaderFileName,
}

// ParseChunkMeta валидирует заголовки чанка. Файловая система не трогается.
// При strict значения X-File-Id и X-File-Name обязаны быть одним сегментом пути.
func ParseChunkMeta(h http.Header, strict bool) (ChunkMeta, error) {
	for _, name := range requiredHeaders {
		if len(h.Values(name)) == 0 {
			return ChunkMeta{}, BadRequest("Missing header: " + name)
		}
	}

	fileID, err := parseSegment(h, uploadproto.HeaderFileID, strict)
	if err != nil {
		return ChunkMeta{}, err
	}
	idx, err := parseCount(h, uploadproto.HeaderChunkIndex)
	if err != nil {
		return ChunkMeta{}, err
	}
	total, err := parseCount(h, uploadproto.HeaderTotalChunks)
	if err != nil {
		return ChunkMeta{}, err
	}
	fileName, err := parseSegment(h, uploadproto.HeaderFileName, strict)
	if err != nil {
		return ChunkMeta{}, err
	}

	if total == 0 {
		return ChunkMeta{}, BadRequest("Total chunks must be at least 1")
	}
	if idx >= total {
		return ChunkMeta{}, BadRequest(fmt.Sprintf("Invalid chunk index: %d >= total chunks: %d", idx, total))
	}

	return ChunkMeta{
		FileID:      fileID,
		ChunkIndex:  idx,
		TotalChunks: total,
		FileName:    fileName,
	}, nil
}

func invalidHeader(name string) error {
	return BadRequest("Invalid header value: " + name)
}

func parseCount(h http.Header, name string) (uint64, error) {
	n, err := strconv.ParseUint(h.Get(name), 10, 64)
	if err != nil {
		return 0, invalidHeader(name)
	}
	return n, nil
}

func parseSegment(h http.Header, name string, strict bool) (string, error) {
	v := h.Get(name)
	if v == "" {
		return "", invalidHeader(name)
	}
	if strict && !isPlainSegment(v) {
		return "", invalidHeader(name)
	}
	return v, nil
}

// isPlainSegment отсекает разделители пути и ссылки на текущий/родительский каталог.
func isPlainSegment(v string) bool {
	if v == "." || v == ".." {
		return false
	}
	return !strings.ContainsAny(v, `/\`) && !strings.ContainsRune(v, 0)
}

package upload

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	chunkFilenamePrefix = "chunk_"
	chunkFilenameSuffix = ".bin"
)

// ChunkFileName возвращает имя файла чанка с индексом idx.
func ChunkFileName(idx uint64) string {
	return fmt.Sprintf("%s%d%s", chunkFilenamePrefix, idx, chunkFilenameSuffix)
}

// IsChunkFile проверяет, что name: файл чанка (chunk_<idx>.bin).
func IsChunkFile(name string) bool {
	if !strings.HasPrefix(name, chunkFilenamePrefix) || !strings.HasSuffix(name, chunkFilenameSuffix) {
		return false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, chunkFilenamePrefix), chunkFilenameSuffix)
	_, err := strconv.ParseUint(digits, 10, 64)
	return err == nil
}

// UploadDir возвращает каталог загрузки fileID внутри root.
func UploadDir(root, fileID string) string {
	return filepath.Join(root, fileID)
}

// ChunkPath возвращает путь до чанка idx загрузки fileID.
func ChunkPath(root, fileID string, idx uint64) string {
	return filepath.Join(UploadDir(root, fileID), ChunkFileName(idx))
}

// FilePath возвращает путь до собранного файла.
func FilePath(root, fileID, fileName string) string {
	return filepath.Join(UploadDir(root, fileID), fileName)
}

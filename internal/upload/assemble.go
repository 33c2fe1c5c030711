package upload

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// checkChunks убеждается, что на диске есть все чанки 0..total-1.
// Первый отсутствующий индекс возвращается как BadRequest.
func checkChunks(root string, meta ChunkMeta) error {
	for i := uint64(0); i < meta.TotalChunks; i++ {
		_, err := os.Stat(ChunkPath(root, meta.FileID, i))
		if err == nil {
			continue
		}
		if errors.Is(err, fs.ErrNotExist) {
			return BadRequest(fmt.Sprintf("Missing chunk: %d", i))
		}
		return IOError(fmt.Sprintf("stat chunk %d", i), err)
	}
	return nil
}

// assemble склеивает чанки по возрастанию индекса в dst, удаляя каждый после
// дописывания. Сборка не транзакционна: при ошибке dst может остаться
// недописанным, а часть чанков: уже удалённой.
func assemble(root string, meta ChunkMeta, dst string) (int64, error) {
	f, err := os.Create(dst)
	if err != nil {
		return 0, IOError("create destination file", err)
	}
	defer f.Close()

	var written int64
	for i := uint64(0); i < meta.TotalChunks; i++ {
		chunk := ChunkPath(root, meta.FileID, i)

		// Чанк читается целиком: его размер ограничен телом одного запроса.
		b, err := os.ReadFile(chunk)
		if err != nil {
			return written, IOError(fmt.Sprintf("read chunk %d", i), err)
		}
		n, err := f.Write(b)
		written += int64(n)
		if err != nil {
			return written, IOError(fmt.Sprintf("append chunk %d", i), err)
		}
		if err = os.Remove(chunk); err != nil {
			return written, IOError(fmt.Sprintf("remove chunk %d", i), err)
		}
	}

	if err = f.Sync(); err != nil {
		return written, IOError("flush destination file", err)
	}
	if err = f.Close(); err != nil {
		return written, IOError("close destination file", err)
	}

	return written, nil
}

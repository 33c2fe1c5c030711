package uploadclient

import (
	"github.com/yourname/slicebread/internal/models"
)

// PlanBySize разбивает файл длиной length на чанки не длиннее chunkSize.
// Пустой файл отправляется одним пустым чанком.
func PlanBySize(length, chunkSize int64) models.ChunkPlan {
	if length <= 0 {
		return models.ChunkPlan{Total: 1, Size: 0}
	}
	if chunkSize <= 0 || chunkSize > length {
		chunkSize = length
	}

	total := length / chunkSize
	if length%chunkSize != 0 {
		total++
	}

	return models.ChunkPlan{Total: int(total), Size: chunkSize}
}

// PlanByParts вычисляет размер чанка так, чтобы файл уложился в desired частей.
// Если файл короче desired байт, частей будет меньше.
func PlanByParts(length int64, desired int) models.ChunkPlan {
	if desired <= 0 {
		desired = 1
	}
	if length <= 0 {
		return models.ChunkPlan{Total: 1, Size: 0}
	}

	chunkSize := (length + int64(desired) - 1) / int64(desired)
	return PlanBySize(length, chunkSize)
}

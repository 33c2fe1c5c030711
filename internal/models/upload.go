package models

// UploadResult возвращается клиентом после успешной загрузки всех чанков.
type UploadResult struct {
	FileID   string
	FileName string
	Size     int64
	Parts    int
}

// ChunkPlan описывает, на сколько чанков нужно разбить файл и какого они размера.
// Последний чанк может быть короче Size.
type ChunkPlan struct {
	Total int
	Size  int64
}

// ChunkRange возвращает смещение и длину чанка idx для файла длиной length.
func (p ChunkPlan) ChunkRange(idx int, length int64) (offset, size int64) {
	offset = int64(idx) * p.Size
	size = p.Size
	if rest := length - offset; rest < size {
		size = rest
	}
	if size < 0 {
		size = 0
	}
	return offset, size
}

// Package uploadproto описывает HTTP-протокол загрузки файла по частям (чанкам).
package uploadproto

// Заголовки, которыми клиент описывает каждый чанк.
const (
	HeaderFileID      = "X-File-Id"
	HeaderChunkIndex  = "X-Chunk-Index"
	HeaderTotalChunks = "X-Total-Chunks"
	HeaderFileName    = "X-File-Name"
	HeaderSize        = "X-Size"
	HeaderRequestID   = "X-Request-Id"
)

// Пути и форматы URL сервера загрузки.
const (
	UploadPath        = "/upload"
	FilePathFormat    = "%s/uploads/%s/%s"
	ChunkPathFormat   = "%s/uploads/%s/chunks/%d"
	UploadedMessage   = "File uploaded successfully"
	DefaultServerAddr = "http://127.0.0.1:3000"
)

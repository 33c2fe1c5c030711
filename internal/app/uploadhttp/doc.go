// Package uploadhttp реализует HTTP-интерфейс приёма файлов по чанкам поверх
// локального диска. Основные эндпоинты:
//   - POST|PUT /upload (и /): принимает чанк с заголовками X-File-Id, X-Chunk-Index,
//     X-Total-Chunks, X-File-Name; на последнем индексе собирает файл. Отвечает 201.
//   - GET /uploads/{fileID}/{fileName}: отдаёт собранный файл как application/octet-stream.
//   - HEAD /uploads/{fileID}/chunks/{idx}: возвращает размер сохранённого чанка через X-Size.
//   - POST /admin/gc: удаляет чанки брошенных загрузок (ручной GC).
//   - GET /health: агрегированные метрики по каталогу данных.
//   - GET /metrics: метрики Prometheus.
package uploadhttp

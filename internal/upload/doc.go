// Package upload реализует приём файла по чанкам поверх локального диска.
//
// Каждый запрос несёт один чанк и четыре заголовка (X-File-Id, X-Chunk-Index,
// X-Total-Chunks, X-File-Name). Чанк сохраняется в <root>/<fileID>/chunk_<idx>.bin.
// Запрос с индексом total-1 запускает сборку: проверяется наличие всех чанков,
// они склеиваются по возрастанию индекса в <root>/<fileID>/<fileName> и удаляются.
//
// Состояние загрузки целиком определяется набором файлов на диске; в памяти
// между запросами ничего не хранится.
package upload

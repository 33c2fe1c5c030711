package uploadhttp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chunksReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slicebread_chunks_received_total",
		Help: "Total number of chunks stored on disk",
	})
	chunkBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slicebread_chunk_bytes_total",
		Help: "Total bytes of chunk bodies stored on disk",
	})
	chunkFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slicebread_chunk_failures_total",
			Help: "Total number of rejected or failed chunk requests by error kind",
		},
		[]string{"kind"},
	)
	uploadsAssembledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slicebread_uploads_assembled_total",
		Help: "Total number of files assembled from chunks",
	})
	assembledBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slicebread_assembled_bytes_total",
		Help: "Total bytes written to assembled files",
	})
	gcRemovedChunksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slicebread_gc_removed_chunks_total",
		Help: "Total number of abandoned chunk files removed by GC",
	})
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slicebread_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "code"},
	)
)

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecordWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evergraze",
		Name:      "record_writes_total",
		Help:      "Record create/update/delete operations by kind.",
	}, []string{"kind", "op"})

	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evergraze",
		Name:      "exports_total",
		Help:      "Export requests by format and result (ok|empty|error).",
	}, []string{"format", "result"})

	ExportBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "evergraze",
		Name:      "export_size_bytes",
		Help:      "Size of generated export files.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
	}, []string{"format"})
)

func Handler() http.Handler { return promhttp.Handler() }

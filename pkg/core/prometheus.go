package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// blockHeight prometheus metric.
	blockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Current index of processed block",
			Name:      "current_block_height",
			Namespace: "novago",
		},
	)
	// headerHeight prometheus metric.
	headerHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Current index of processed header",
			Name:      "current_header_height",
			Namespace: "novago",
		},
	)
	// persistDuration prometheus metric.
	persistDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Help:      "Duration of a single block persist in milliseconds",
			Name:      "block_persist_duration",
			Namespace: "novago",
		},
	)
)

func init() {
	prometheus.MustRegister(
		blockHeight,
		headerHeight,
		persistDuration,
	)
}

func updateHeaderHeightMetric(hHeight uint32) {
	headerHeight.Set(float64(hHeight))
}

func updateBlockHeightMetric(bHeight uint32) {
	blockHeight.Set(float64(bHeight))
}

func updatePersistMetric(millis float64) {
	persistDuration.Observe(millis)
}

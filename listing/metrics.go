package listing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rideboard_listing_loads_total",
		Help: "Vehicle collection loads by outcome",
	}, []string{"result"})

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rideboard_listing_retries_total",
		Help: "User triggered retries after a failed load",
	})

	resultSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rideboard_listing_result_size",
		Help:    "Number of vehicles shown after filtering",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
)

package repository

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "tagcat_store_query_duration_seconds",
	Help:    "Duration of tag category store queries in seconds",
	Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
}, []string{"query"})

// Package metrics собирает операционные метрики движка сопоставления.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AcceleratorMemUsedBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "accelerator_memory_used_bytes",
		Help: "Accelerator memory currently in use",
	})

	AcceleratorMemTotalBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "accelerator_memory_total_bytes",
		Help: "Total accelerator memory",
	})

	OOMErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "extraction_oom_errors_total",
		Help: "Total number of accelerator allocation failures",
	})

	RetryAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "extraction_retry_attempts_total",
		Help: "Total number of extraction retries after transient failures",
	})

	TaskLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "extraction_task_seconds",
		Help:    "Time taken to extract features for one asset",
		Buckets: prometheus.DefBuckets,
	})

	CurrentConcurrency = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "extraction_concurrency",
		Help: "Number of extraction tasks currently admitted",
	})

	CacheReclaims = promauto.NewCounter(prometheus.CounterOpts{
		Name: "extraction_cache_reclaims_total",
		Help: "Total number of forced accelerator cache reclamations",
	})

	MatchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "match_outcomes_total",
		Help: "Match request verdicts",
	}, []string{"outcome"})

	PairLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pair_verification_seconds",
		Help:    "Time taken to verify one image-frame pair",
		Buckets: prometheus.DefBuckets,
	})
)

package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "career_coach"

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total coach pipeline runs by outcome",
		},
		[]string{"outcome"},
	)

	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"stage"},
	)

	stageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Pipeline stage failures",
		},
		[]string{"stage"},
	)

	llmChunks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_chunks_total",
			Help:      "Streamed token chunks received from the model runtime",
		},
		[]string{"provider"},
	)
)

// IncRun counts a finished run; outcome is "ok", "failed" or "invalid".
func IncRun(outcome string) {
	runsTotal.WithLabelValues(outcome).Inc()
}

// ObserveStage records a stage duration.
func ObserveStage(stage string, d time.Duration) {
	if d < 0 {
		d = 0
	}
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// IncStageFailure counts a failed stage.
func IncStageFailure(stage string) {
	stageFailures.WithLabelValues(stage).Inc()
}

// AddLLMChunks counts streamed chunks for a provider.
func AddLLMChunks(provider string, n int) {
	if n <= 0 {
		return
	}
	llmChunks.WithLabelValues(provider).Add(float64(n))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

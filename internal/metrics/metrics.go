package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Game Metrics
var (
	SpinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSpinsTotal,
			Help: HelpTextSpinsTotal,
		},
	)

	SpinOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinOutcomes,
			Help: HelpTextSpinOutcomes,
		},
		[]string{LabelSegment, LabelResult},
	)

	USDCAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameUSDCAwarded,
			Help: HelpTextUSDCAwarded,
		},
	)

	PointsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsAwarded,
			Help: HelpTextPointsAwarded,
		},
	)

	ClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimsTotal,
			Help: HelpTextClaimsTotal,
		},
		[]string{LabelResult},
	)

	ChainCommits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChainCommits,
			Help: HelpTextChainCommits,
		},
		[]string{LabelResult},
	)

	ReconcilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReconcilesTotal,
			Help: HelpTextReconcilesTotal,
		},
		[]string{LabelResult},
	)

	RemindersNotified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRemindersNotified,
			Help: HelpTextRemindersNotified,
		},
	)
)

// RecordSpinOutcome updates the spin counters for one resolved outcome.
func RecordSpinOutcome(segment string, isWin bool, amount float64, points int64) {
	SpinsTotal.Inc()
	result := "loss"
	if isWin {
		result = "win"
	}
	SpinOutcomes.WithLabelValues(segment, result).Inc()
	if isWin {
		USDCAwarded.Add(amount)
		PointsAwarded.Add(float64(points))
	}
}

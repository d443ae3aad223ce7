package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Game metric names
const (
	MetricNameSpinsTotal        = "spins_total"
	MetricNameSpinOutcomes      = "spin_outcomes_total"
	MetricNameUSDCAwarded       = "usdc_awarded_total"
	MetricNamePointsAwarded     = "points_awarded_total"
	MetricNameClaimsTotal       = "claims_total"
	MetricNameChainCommits      = "chain_commits_total"
	MetricNameReconcilesTotal   = "stats_reconciles_total"
	MetricNameRemindersNotified = "reminders_notified_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Game metric help text
const (
	HelpTextSpinsTotal        = "Total number of wheel spins"
	HelpTextSpinOutcomes      = "Total spin outcomes by segment"
	HelpTextUSDCAwarded       = "Total USDC awarded by winning spins"
	HelpTextPointsAwarded     = "Total points awarded by winning spins"
	HelpTextClaimsTotal       = "Total number of claim transactions"
	HelpTextChainCommits      = "Total number of spin fee transactions"
	HelpTextReconcilesTotal   = "Total number of stats reconciliations"
	HelpTextRemindersNotified = "Total number of reminder notifications delivered"
)

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelSegment = "segment"
	LabelResult  = "result"
)

// HTTPLatencyBuckets are tuned for a request path that may include a
// chain transaction wait.
var HTTPLatencyBuckets = []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60}

package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(insightsEmitted, jobsScanned, reportsGenerated, rateLimited) }

var (
	insightsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_insights_emitted_total",
			Help: "Insights returned to users, by insight type.",
		},
		[]string{"type"},
	)

	jobsScanned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_jobs_scanned",
			Help:    "Size of the job snapshot fed to each analytics run.",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{"operation"},
	)

	reportsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Reports persisted, by report type and trigger (api/scheduler).",
		},
		[]string{"type", "trigger"},
	)

	rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_total",
			Help: "Requests rejected by a rate limiter, by scope.",
		},
		[]string{"scope"},
	)
)

func IncInsight(typ string) { insightsEmitted.WithLabelValues(norm(typ)).Inc() }

func ObserveJobsScanned(operation string, n int) {
	jobsScanned.WithLabelValues(norm(operation)).Observe(float64(n))
}

func IncReportGenerated(typ, trigger string) {
	reportsGenerated.WithLabelValues(norm(typ), norm(trigger)).Inc()
}

func IncRateLimited(scope string) { rateLimited.WithLabelValues(norm(scope)).Inc() }

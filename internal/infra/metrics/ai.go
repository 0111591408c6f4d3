package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		aiTokensIn,
		aiTokensOut,
		aiCallsLatencyMs,
		aiThrottledWaitMs,
		checklistResults,
	)
}

var (
	aiTokensIn = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_tokens_in",
			Help: "Sum of prompt (input) tokens per provider/model.",
		},
		[]string{"provider", "model"},
	)

	aiTokensOut = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_tokens_out",
			Help: "Sum of completion (output) tokens per provider/model.",
		},
		[]string{"provider", "model"},
	)

	aiCallsLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_calls_latency_ms",
			Help:    "AI call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"provider", "model", "success"},
	)

	aiThrottledWaitMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ai_throttle_wait_ms",
			Help:    "Time spent waiting for the AI request rate limiter.",
			Buckets: []float64{0, 5, 25, 100, 250, 1000, 5000},
		},
	)

	checklistResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_checklists_total",
			Help: "Interview checklists served, by source (ai/static) and fallback reason.",
		},
		[]string{"source", "reason"},
	)
)

func ObserveChatUsage(provider, model string, tokensIn, tokensOut int, latencyMs int, success bool) {
	lbl := []string{norm(provider), norm(model)}
	aiTokensIn.WithLabelValues(lbl...).Add(float64(tokensIn))
	aiTokensOut.WithLabelValues(lbl...).Add(float64(tokensOut))
	aiCallsLatencyMs.WithLabelValues(norm(provider), norm(model), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func ObserveThrottleWait(ms int64) { aiThrottledWaitMs.Observe(float64(ms)) }

// IncChecklist counts a served checklist; reason is empty for AI results.
func IncChecklist(source, reason string) {
	checklistResults.WithLabelValues(norm(source), norm(reason)).Inc()
}

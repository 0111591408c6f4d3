package ai

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"job-tracker-api/internal/domain/ports/adapter"
	"job-tracker-api/internal/infra/metrics"
)

// Compile-time check
var _ adapter.AIServiceAdapter = (*limitedAI)(nil)

// limitedAI bounds concurrent calls with a semaphore and the request rate
// with a token bucket, and records usage metrics for every chat call.
type limitedAI struct {
	inner   adapter.AIServiceAdapter
	sem     chan struct{}
	limiter *rate.Limiter
}

// NewLimitedAI wraps inner; maxConcurrent <= 0 or rps <= 0 disables the
// respective bound.
func NewLimitedAI(inner adapter.AIServiceAdapter, maxConcurrent int, rps float64) adapter.AIServiceAdapter {
	l := &limitedAI{inner: inner}
	if maxConcurrent > 0 {
		l.sem = make(chan struct{}, maxConcurrent)
	}
	if rps > 0 {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		l.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return l
}

func (l *limitedAI) Provider() string { return l.inner.Provider() }

func (l *limitedAI) acquire(ctx context.Context) (func(), error) {
	if l.limiter != nil {
		start := time.Now()
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		metrics.ObserveThrottleWait(time.Since(start).Milliseconds())
	}
	if l.sem == nil {
		return func() {}, nil
	}
	select {
	case l.sem <- struct{}{}:
		return func() { <-l.sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *limitedAI) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	reply, _, err := l.ChatWithUsage(ctx, model, messages)
	return reply, err
}

func (l *limitedAI) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	release, err := l.acquire(ctx)
	if err != nil {
		return "", adapter.Usage{}, err
	}
	defer release()

	start := time.Now()
	reply, usage, err := l.inner.ChatWithUsage(ctx, model, messages)
	metrics.ObserveChatUsage(l.inner.Provider(), model, usage.PromptTokens, usage.CompletionTokens,
		int(time.Since(start).Milliseconds()), err == nil)
	return reply, usage, err
}

// CountTokens is local for OpenAI and cheap for Gemini, so only the
// concurrency bound applies.
func (l *limitedAI) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	if l.sem != nil {
		select {
		case l.sem <- struct{}{}:
			defer func() { <-l.sem }()
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return l.inner.CountTokens(ctx, model, messages)
}

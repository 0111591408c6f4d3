//go:build !integration

package ai_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"job-tracker-api/internal/config"
	"job-tracker-api/internal/domain/ports/adapter"
	ai "job-tracker-api/internal/infra/adapters/ai"
)

type stubAI struct {
	name         string
	ctN          int
	cwuN         int
	lastModelCWU string
}

func (s *stubAI) Provider() string { return s.name }
func (s *stubAI) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	s.ctN++
	return 1, nil
}
func (s *stubAI) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	return "ok", nil
}
func (s *stubAI) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	s.cwuN++
	s.lastModelCWU = model
	return "ok", adapter.Usage{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2}, nil
}

func TestRouting_ExplicitMap_Heuristics_And_Fallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	open := &stubAI{name: "openai"}
	gem := &stubAI{name: "gemini"}

	m := ai.NewMultiAIAdapter(
		"openai",
		map[string]adapter.AIServiceAdapter{"openai": open, "gemini": gem},
		map[string]string{"custom-x": "gemini"},
	)

	// explicit map wins
	_, _ = m.CountTokens(ctx, "custom-x", nil)
	if gem.ctN != 1 || open.ctN != 0 {
		t.Fatalf("explicit map should route to gemini, got open:%d gem:%d", open.ctN, gem.ctN)
	}

	// gpt-* -> openai
	_, _, _ = m.ChatWithUsage(ctx, "gpt-4o-mini", nil)
	if open.cwuN != 1 || gem.cwuN != 0 {
		t.Fatalf("heuristic gpt-* should go openai")
	}
	open.cwuN, gem.cwuN = 0, 0

	// gemini-* -> gemini
	_, _, _ = m.ChatWithUsage(ctx, "gemini-2.0-flash", nil)
	if gem.cwuN != 1 || open.cwuN != 0 {
		t.Fatalf("heuristic gemini-* should go gemini")
	}

	// unknown -> default provider (openai)
	open.ctN, gem.ctN = 0, 0
	_, _ = m.CountTokens(ctx, "unknown", nil)
	if open.ctN != 1 || gem.ctN != 0 {
		t.Fatalf("unknown model should go to default provider (openai)")
	}
	if m.Provider() != "openai" {
		t.Errorf("Provider() = %q", m.Provider())
	}
}

func TestRouting_NoProviders(t *testing.T) {
	m := ai.NewMultiAIAdapter("openai", map[string]adapter.AIServiceAdapter{}, nil)
	if _, _, err := m.ChatWithUsage(context.Background(), "gpt-4o", nil); err == nil {
		t.Error("expected an error without providers")
	}
}

type slowAI struct {
	stubAI
	inFlight, peak int32
	mu             sync.Mutex
}

func (s *slowAI) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	n := atomic.AddInt32(&s.inFlight, 1)
	s.mu.Lock()
	if n > s.peak {
		s.peak = n
	}
	s.mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	atomic.AddInt32(&s.inFlight, -1)
	return "ok", adapter.Usage{}, nil
}

func TestLimitedAI_BoundsConcurrency(t *testing.T) {
	inner := &slowAI{stubAI: stubAI{name: "slow"}}
	l := ai.NewLimitedAI(inner, 2, 0)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Chat(context.Background(), "m", nil)
		}()
	}
	wg.Wait()
	if inner.peak > 2 {
		t.Errorf("expected at most 2 concurrent calls, saw %d", inner.peak)
	}
	if l.Provider() != "slow" {
		t.Errorf("Provider() should pass through, got %q", l.Provider())
	}
}

func TestLimitedAI_HonoursContext(t *testing.T) {
	l := ai.NewLimitedAI(&stubAI{name: "s"}, 1, 0.001)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// The first call consumes the only token; the second must give up on ctx.
	if _, err := l.Chat(ctx, "m", nil); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := l.Chat(ctx, "m", nil); err == nil {
		t.Error("expected the throttled call to fail with the context")
	}
}

func TestNew_WithoutKeys(t *testing.T) {
	a, err := ai.New(context.Background(), config.AIConfig{Provider: "none"})
	if err != nil || a != nil {
		t.Fatalf("expected nil adapter and no error, got %v, %v", a, err)
	}
	if _, err := ai.New(context.Background(), config.AIConfig{Provider: "gemini", OpenAIKey: "k"}); err == nil {
		t.Error("expected an error when the selected provider has no key")
	}
}

func TestNew_OpenAI(t *testing.T) {
	a, err := ai.New(context.Background(), config.AIConfig{Provider: "openai", OpenAIKey: "sk-test", ConcurrentLimit: 2, RequestsPerSec: 1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if a.Provider() != "openai" {
		t.Errorf("Provider() = %q", a.Provider())
	}
}

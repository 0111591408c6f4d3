//go:build !integration

package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

func TestPool_RunsSubmittedTasks(t *testing.T) {
	p := NewPool(3, 10, newTestLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	var n int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		err := p.Submit(func(ctx context.Context) error {
			defer wg.Done()
			atomic.AddInt32(&n, 1)
			return nil
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	wg.Wait()
	if n != 10 {
		t.Errorf("expected 10 tasks to run, got %d", n)
	}
}

func TestPool_RejectsWhenFull(t *testing.T) {
	// Not started: nothing drains the queue.
	p := NewPool(1, 1, newTestLogger())
	noop := func(context.Context) error { return nil }

	if err := p.Submit(noop); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := p.Submit(noop); !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
	if err := p.Submit(nil); err == nil {
		t.Error("expected an error for a nil task")
	}
	p.Stop()
}

func TestPool_SurvivesFailingAndPanickingTasks(t *testing.T) {
	p := NewPool(1, 4, newTestLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	done := make(chan struct{})
	_ = p.Submit(func(context.Context) error { return errors.New("boom") })
	_ = p.Submit(func(context.Context) error { panic("kaboom") })
	_ = p.Submit(func(context.Context) error { close(done); return nil })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not recover from a failing task")
	}
	p.Stop()
	p.Stop() // idempotent
}

func TestPool_StopRunsQueuedTasksCancelled(t *testing.T) {
	// Not started: the task stays queued until Stop.
	p := NewPool(1, 2, newTestLogger())

	var wg sync.WaitGroup
	var sawCancel atomic.Bool
	wg.Add(1)
	if err := p.Submit(func(ctx context.Context) error {
		defer wg.Done()
		sawCancel.Store(ctx.Err() != nil)
		return ctx.Err()
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	p.Stop()

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("queued task was dropped without running its cleanup")
	}
	if !sawCancel.Load() {
		t.Error("expected the queued task to see a cancelled context")
	}
	if err := p.Submit(func(context.Context) error { return nil }); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped after Stop, got %v", err)
	}
}

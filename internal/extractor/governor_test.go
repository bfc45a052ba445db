package extractor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/match-engine/pkg/logger"
)

type fakeSampler struct {
	used  atomic.Uint64
	total atomic.Uint64
	fail  atomic.Bool
}

func (s *fakeSampler) DeviceMemory(_ context.Context) (uint64, uint64, error) {
	if s.fail.Load() {
		return 0, 0, errors.New("sampler down")
	}
	return s.used.Load(), s.total.Load(), nil
}

type fakeReclaimer struct {
	calls atomic.Int64
}

func (r *fakeReclaimer) ReclaimCache(_ context.Context, _ bool) error {
	r.calls.Add(1)
	return nil
}

func testGovernor(t *testing.T, cfg GovernorCfg, sampler *fakeSampler, reclaimer *fakeReclaimer) *Governor {
	t.Helper()
	if cfg.SampleInterval == 0 {
		cfg.SampleInterval = 5 * time.Millisecond
	}
	return NewGovernor(cfg, sampler, reclaimer, logger.NewDiscardLogger())
}

func TestGovernorAdmitsUnderThreshold(t *testing.T) {
	sampler := &fakeSampler{}
	sampler.used.Store(10)
	sampler.total.Store(100)

	g := testGovernor(t, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4}, sampler, &fakeReclaimer{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() = %v, want nil", err)
	}
	if got := g.Stats().InFlight; got != 1 {
		t.Errorf("InFlight = %d, want 1", got)
	}
	g.Release(ctx)
	if got := g.Stats().InFlight; got != 0 {
		t.Errorf("InFlight after release = %d, want 0", got)
	}
}

func TestGovernorBlocksAboveThreshold(t *testing.T) {
	sampler := &fakeSampler{}
	sampler.used.Store(95)
	sampler.total.Store(100)

	g := testGovernor(t, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4}, sampler, &fakeReclaimer{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Первая задача проходит по нижней границе полосы даже выше порога.
	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire() = %v, want nil", err)
	}

	admitted := make(chan error, 1)
	go func() {
		admitted <- g.Acquire(ctx)
	}()

	select {
	case err := <-admitted:
		t.Fatalf("second Acquire admitted above threshold: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	// Память разгрузилась: ожидающая задача должна пройти.
	sampler.used.Store(10)
	select {
	case err := <-admitted:
		if err != nil {
			t.Fatalf("second Acquire() after memory drop = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("second Acquire still blocked after memory dropped")
	}
}

func TestGovernorMinConcurrentPreventsStarvation(t *testing.T) {
	sampler := &fakeSampler{}
	sampler.used.Store(100)
	sampler.total.Store(100)

	g := testGovernor(t, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 2, MaxConcurrent: 4}, sampler, &fakeReclaimer{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := g.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d under MinConcurrent floor = %v, want nil", i, err)
		}
	}
}

func TestGovernorAcquireContextCancel(t *testing.T) {
	sampler := &fakeSampler{}
	sampler.used.Store(100)
	sampler.total.Store(100)

	g := testGovernor(t, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4}, sampler, &fakeReclaimer{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire() = %v", err)
	}

	waitCtx, waitCancel := context.WithCancel(context.Background())
	admitted := make(chan error, 1)
	go func() {
		admitted <- g.Acquire(waitCtx)
	}()

	time.Sleep(20 * time.Millisecond)
	waitCancel()

	select {
	case err := <-admitted:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Acquire after cancel = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire did not return after cancel")
	}

	// Отменённое ожидание не должно съесть допуск: следующая задача проходит.
	sampler.used.Store(10)
	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("Acquire after cancelled waiter = %v, want nil", err)
	}
}

func TestGovernorSamplerFailureAdmitsByBand(t *testing.T) {
	sampler := &fakeSampler{}
	sampler.fail.Store(true)

	g := testGovernor(t, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 2}, sampler, &fakeReclaimer{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := g.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d with broken sampler = %v, want nil", i, err)
		}
	}
}

func TestGovernorPeriodicReclaim(t *testing.T) {
	sampler := &fakeSampler{}
	sampler.used.Store(10)
	sampler.total.Store(100)
	reclaimer := &fakeReclaimer{}

	g := testGovernor(t, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4, ReclaimEvery: 2}, sampler, reclaimer)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 6; i++ {
		if err := g.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d = %v", i, err)
		}
		g.Release(ctx)
	}

	if got := reclaimer.calls.Load(); got != 3 {
		t.Errorf("reclaim calls = %d, want 3 (every 2 of 6 completions)", got)
	}
	if got := g.Stats().Reclaims; got != 3 {
		t.Errorf("Stats().Reclaims = %d, want 3", got)
	}
}

func TestGovernorStatsCounters(t *testing.T) {
	sampler := &fakeSampler{}
	sampler.used.Store(40)
	sampler.total.Store(100)

	g := testGovernor(t, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4}, sampler, &fakeReclaimer{})

	ctx := context.Background()
	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() = %v", err)
	}
	g.RecordOOM()
	g.RecordOOM()
	g.RecordRetry()

	stats := g.Stats()
	if stats.OOMErrors != 2 {
		t.Errorf("OOMErrors = %d, want 2", stats.OOMErrors)
	}
	if stats.RetryAttempts != 1 {
		t.Errorf("RetryAttempts = %d, want 1", stats.RetryAttempts)
	}
	if stats.MemUsedBytes != 40 || stats.MemTotalBytes != 100 {
		t.Errorf("memory snapshot = %d/%d, want 40/100", stats.MemUsedBytes, stats.MemTotalBytes)
	}
}

// Package extractor реализует ресурсно-управляемый фронтенд извлечения признаков:
// допуск задач по живому состоянию памяти ускорителя и восстановление после
// сбоев аллокации.
package extractor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/match-engine/internal/metrics"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

// MemorySampler сообщает текущее использование памяти ускорителя.
type MemorySampler interface {
	DeviceMemory(ctx context.Context) (used, total uint64, err error)
}

// Reclaimer принудительно освобождает кэш аллокатора ускорителя.
// synchronize=true добавляет барьер синхронизации перед возвратом.
type Reclaimer interface {
	ReclaimCache(ctx context.Context, synchronize bool) error
}

// GovernorCfg — параметры допуска задач экстракции.
type GovernorCfg struct {
	// MemoryThreshold — доля занятой памяти, выше которой допуск блокируется.
	MemoryThreshold float64
	// MinConcurrent — нижняя граница полосы: столько задач допускается даже
	// выше порога, иначе очередь могла бы не разгрузиться никогда.
	MinConcurrent int
	// MaxConcurrent — верхняя граница полосы.
	MaxConcurrent int
	// ReclaimEvery — каждые N завершённых задач запускается принудительная
	// очистка кэша: без неё запросы аллокации растут с десятков до сотен
	// мегабайт за сессию из-за фрагментации, хотя суммарное использование
	// выглядит стабильным.
	ReclaimEvery int
	// SampleInterval — пауза между пересэмплированием памяти при ожидании допуска.
	SampleInterval time.Duration
}

func DefaultGovernorCfg() GovernorCfg {
	return GovernorCfg{
		MemoryThreshold: 0.85,
		MinConcurrent:   1,
		MaxConcurrent:   8,
		ReclaimEvery:    50,
		SampleInterval:  200 * time.Millisecond,
	}
}

// GovernorStats — снимок состояния governor'а для наблюдаемости.
type GovernorStats struct {
	MemUsedBytes  uint64
	MemTotalBytes uint64
	InFlight      int64
	OOMErrors     int64
	RetryAttempts int64
	Reclaims      int64
}

// Governor пропускает задачи экстракции по живому давлению памяти ускорителя.
// Полоса [MinConcurrent, MaxConcurrent] ограничивает одновременно допущенные
// задачи; выше порога памяти допуск блокируется до разгрузки. Пакетная подача
// из N кадров проходит через тот же допуск по задаче за раз — обойти шлюз нельзя.
type Governor struct {
	cfg       GovernorCfg
	sampler   MemorySampler
	reclaimer Reclaimer
	logger    logger.Logger

	permits   chan struct{}
	inFlight  atomic.Int64
	completed atomic.Int64
	oomErrors atomic.Int64
	retries   atomic.Int64
	reclaims  atomic.Int64

	lastUsed  atomic.Uint64
	lastTotal atomic.Uint64
}

func NewGovernor(cfg GovernorCfg, sampler MemorySampler, reclaimer Reclaimer, logger logger.Logger) *Governor {
	def := DefaultGovernorCfg()
	if cfg.MemoryThreshold <= 0 || cfg.MemoryThreshold > 1 {
		cfg.MemoryThreshold = def.MemoryThreshold
	}
	if cfg.MinConcurrent < 1 {
		cfg.MinConcurrent = def.MinConcurrent
	}
	if cfg.MaxConcurrent < cfg.MinConcurrent {
		cfg.MaxConcurrent = cfg.MinConcurrent
	}
	if cfg.ReclaimEvery <= 0 {
		cfg.ReclaimEvery = def.ReclaimEvery
	}
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = def.SampleInterval
	}

	return &Governor{
		cfg:       cfg,
		sampler:   sampler,
		reclaimer: reclaimer,
		logger:    logger,
		permits:   make(chan struct{}, cfg.MaxConcurrent),
	}
}

// Acquire блокируется до допуска задачи: свободное место в полосе и память
// ниже порога. Ниже MinConcurrent допущенных задач порог игнорируется —
// это гарантирует отсутствие голодания очереди.
func (g *Governor) Acquire(ctx context.Context) error {
	const op = "Governor.Acquire"

	select {
	case g.permits <- struct{}{}:
	case <-ctx.Done():
		return e.Wrap(op, ctx.Err())
	}

	for {
		over, err := g.overThreshold(ctx)
		if err != nil {
			// Сэмплер недоступен: допускаем по полосе, чтобы не остановить конвейер,
			// но оставляем след в логе.
			g.logger.Warnf("%s: memory sampling failed, admitting by band only: %v", op, err)
			break
		}

		if !over || g.inFlight.Load() < int64(g.cfg.MinConcurrent) {
			break
		}

		select {
		case <-time.After(g.cfg.SampleInterval):
		case <-ctx.Done():
			<-g.permits
			return e.Wrap(op, ctx.Err())
		}
	}

	cur := g.inFlight.Add(1)
	metrics.CurrentConcurrency.Set(float64(cur))
	return nil
}

// Release возвращает допуск и учитывает завершение задачи. Каждые ReclaimEvery
// завершений запускается фоновая принудительная очистка кэша аллокатора.
func (g *Governor) Release(ctx context.Context) {
	cur := g.inFlight.Add(-1)
	metrics.CurrentConcurrency.Set(float64(cur))
	<-g.permits

	done := g.completed.Add(1)
	if done%int64(g.cfg.ReclaimEvery) == 0 {
		g.ForceReclaim(ctx, false)
	}
}

// ForceReclaim запускает принудительную очистку кэша аллокатора.
func (g *Governor) ForceReclaim(ctx context.Context, synchronize bool) {
	const op = "Governor.ForceReclaim"

	if g.reclaimer == nil {
		return
	}
	g.reclaims.Add(1)
	metrics.CacheReclaims.Inc()

	if err := g.reclaimer.ReclaimCache(ctx, synchronize); err != nil {
		g.logger.Warnf("%s: reclaim failed: %v", op, err)
	}
}

// RecordOOM учитывает ошибку аллокации для наблюдаемости.
func (g *Governor) RecordOOM() {
	g.oomErrors.Add(1)
	metrics.OOMErrors.Inc()
}

// RecordRetry учитывает повтор задачи.
func (g *Governor) RecordRetry() {
	g.retries.Add(1)
	metrics.RetryAttempts.Inc()
}

// Stats возвращает снимок состояния.
func (g *Governor) Stats() GovernorStats {
	return GovernorStats{
		MemUsedBytes:  g.lastUsed.Load(),
		MemTotalBytes: g.lastTotal.Load(),
		InFlight:      g.inFlight.Load(),
		OOMErrors:     g.oomErrors.Load(),
		RetryAttempts: g.retries.Load(),
		Reclaims:      g.reclaims.Load(),
	}
}

// overThreshold сэмплирует память и сообщает, превышен ли порог.
func (g *Governor) overThreshold(ctx context.Context) (bool, error) {
	used, total, err := g.sampler.DeviceMemory(ctx)
	if err != nil {
		return false, err
	}
	if total == 0 {
		return false, nil
	}

	g.lastUsed.Store(used)
	g.lastTotal.Store(total)
	metrics.AcceleratorMemUsedBytes.Set(float64(used))
	metrics.AcceleratorMemTotalBytes.Set(float64(total))

	return float64(used)/float64(total) > g.cfg.MemoryThreshold, nil
}

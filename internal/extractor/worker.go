package extractor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/metrics"
	"github.com/DRSN-tech/match-engine/internal/usecase"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/jitter"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

// ModelClient — вызов внешнего сервиса извлечения признаков для одного ассета.
type ModelClient interface {
	ExtractFeatures(ctx context.Context, assetID string, kind domain.AssetKind, data []byte) (*usecase.ExtractAssetRes, error)
}

// oomRetrySchedule — фиксированные задержки повторов после ошибки аллокации.
// Третий подряд сбой аллокации фатален: первый вызов плюс повтор на каждый
// шаг расписания, итого не больше трёх обращений к модели.
var oomRetrySchedule = []time.Duration{
	500 * time.Millisecond,
	1 * time.Second,
}

// Worker гонит пакеты ассетов через governor в сервис извлечения признаков.
// Каждый ассет — отдельная задача со своим допуском: пакет из N кадров
// не получает преимущества перед одиночными изображениями.
type Worker struct {
	client   ModelClient
	governor *Governor
	logger   logger.Logger
}

func NewWorker(client ModelClient, governor *Governor, logger logger.Logger) *Worker {
	return &Worker{
		client:   client,
		governor: governor,
		logger:   logger,
	}
}

// ExtractBatch извлекает признаки всех ассетов пакета параллельно.
// Сбой одного ассета не отменяет остальные: возвращаются все успешные
// результаты и совокупная ошибка по упавшим.
func (w *Worker) ExtractBatch(ctx context.Context, req *usecase.ExtractBatchReq) ([]usecase.ExtractAssetRes, error) {
	const op = "Worker.ExtractBatch"

	if len(req.Assets) == 0 {
		return nil, nil
	}

	resCh := make(chan usecase.ExtractAssetRes, len(req.Assets))
	errCh := make(chan error, len(req.Assets))

	var wg sync.WaitGroup
	for _, asset := range req.Assets {
		wg.Add(1)
		go func() {
			defer wg.Done()

			res, err := w.extractOne(ctx, asset)
			if err != nil {
				errCh <- fmt.Errorf("asset %s: %w", asset.AssetID, err)
				return
			}
			resCh <- *res
		}()
	}

	wg.Wait()
	close(resCh)
	close(errCh)

	results := make([]usecase.ExtractAssetRes, 0, len(req.Assets))
	for res := range resCh {
		results = append(results, res)
	}

	var failures []error
	for err := range errCh {
		failures = append(failures, err)
	}
	if len(failures) > 0 {
		return results, e.Wrap(op, fmt.Errorf("%d of %d assets failed: %w", len(failures), len(req.Assets), errors.Join(failures...)))
	}

	return results, nil
}

// extractOne проводит один ассет через допуск governor'а и вызывает модель.
// Ошибка аллокации ускорителя лечится принудительной очисткой кэша и повтором
// по фиксированному расписанию; любая другая ошибка фатальна для ассета.
func (w *Worker) extractOne(ctx context.Context, asset usecase.ExtractAsset) (*usecase.ExtractAssetRes, error) {
	const op = "Worker.extractOne"

	if err := w.governor.Acquire(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}
	defer w.governor.Release(ctx)

	start := time.Now()
	defer func() {
		metrics.TaskLatency.Observe(time.Since(start).Seconds())
	}()

	for attempt := 0; ; attempt++ {
		res, err := w.client.ExtractFeatures(ctx, asset.AssetID, asset.Kind, asset.Data)
		if err == nil {
			return res, nil
		}

		if !errors.Is(err, e.ErrResourceExhausted) {
			return nil, e.Wrap(op, err)
		}

		w.governor.RecordOOM()
		if attempt >= len(oomRetrySchedule) {
			return nil, e.Wrap(op, fmt.Errorf("allocation kept failing after %d attempts: %w", attempt+1, err))
		}

		// Фрагментированный кэш — самая частая причина ложного OOM: сначала
		// чистим его с барьером, потом ждём по расписанию.
		w.governor.ForceReclaim(ctx, true)
		w.governor.RecordRetry()

		delay := jitter.Schedule(oomRetrySchedule, attempt)
		w.logger.Warnf("%s: allocation failed for asset %s, retrying in %v (attempt %d)", op, asset.AssetID, delay, attempt+1)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}
}

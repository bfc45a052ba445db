// Package retriever отбирает кандидатов сопоставления по ANN-индексу:
// поиск в двух пространствах эмбеддингов и слияние их результатов.
package retriever

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/usecase"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/jitter"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

const (
	// DefaultTopK — размер выборки кандидатов по умолчанию.
	DefaultTopK = 20
	// maxRetries — сколько раз повторяется поиск при недоступности индекса.
	maxRetries = 3
)

// MergedRetriever выполняет поиск в обоих пространствах и сливает результаты:
// сходство кандидата — максимум по пространствам. Недоступность индекса
// лечится ограниченным повтором с экспоненциальной задержкой.
type MergedRetriever struct {
	index  usecase.VectorIndex
	logger logger.Logger
}

func NewMergedRetriever(index usecase.VectorIndex, logger logger.Logger) *MergedRetriever {
	return &MergedRetriever{
		index:  index,
		logger: logger,
	}
}

// RetrieveMerged возвращает до topK кандидатов, отсортированных по убыванию
// сходства. Пустой корпус — пустой список, не ошибка.
func (r *MergedRetriever) RetrieveMerged(ctx context.Context, colorQuery, grayQuery []float32, topK int) ([]usecase.CandidateRes, error) {
	const op = "MergedRetriever.RetrieveMerged"

	if topK <= 0 {
		topK = DefaultTopK
	}

	colorHits, err := r.retrieveWithRetry(ctx, domain.SpaceColor, colorQuery, topK)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	grayHits, err := r.retrieveWithRetry(ctx, domain.SpaceGray, grayQuery, topK)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	merged := make(map[string]float64, len(colorHits)+len(grayHits))
	for _, hit := range append(colorHits, grayHits...) {
		if hit.Similarity > merged[hit.AssetID] {
			merged[hit.AssetID] = hit.Similarity
		}
	}

	candidates := make([]usecase.CandidateRes, 0, len(merged))
	for assetID, similarity := range merged {
		candidates = append(candidates, usecase.NewCandidateRes(assetID, similarity))
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		return candidates[i].AssetID < candidates[j].AssetID
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	return candidates, nil
}

// retrieveWithRetry повторяет поиск в одном пространстве при временной
// недоступности индекса; любая другая ошибка возвращается сразу.
func (r *MergedRetriever) retrieveWithRetry(ctx context.Context, space domain.Space, query []float32, topK int) ([]domain.Candidate, error) {
	const (
		op         = "MergedRetriever.retrieveWithRetry"
		baseJitter = 100 * time.Millisecond
		maxJitter  = 2 * time.Second
	)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		hits, err := r.index.Retrieve(ctx, space, query, topK)
		if err == nil {
			return hits, nil
		}
		if !errors.Is(err, e.ErrIndexUnavailable) {
			return nil, e.Wrap(op, err)
		}
		lastErr = err

		if attempt == maxRetries-1 {
			break
		}

		sleepTime := jitter.ExponentialBackoff(baseJitter, maxJitter, attempt, jitter.DefaultJitter)
		r.logger.Warnf("%s: %s index unavailable, retrying in %v (attempt %d)", op, space, sleepTime, attempt+1)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return nil, e.Wrap(op, lastErr)
}

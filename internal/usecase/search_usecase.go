package usecase

import (
	"context"

	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

// SearchUseCase — ad hoc поиск похожих ассетов и снятие ресурсной статистики.
type SearchUseCase struct {
	retriever Retriever
	stats     ResourceStatsProvider
	logger    logger.Logger
}

func NewSearchUC(retriever Retriever, stats ResourceStatsProvider, logger logger.Logger) *SearchUseCase {
	return &SearchUseCase{
		retriever: retriever,
		stats:     stats,
		logger:    logger,
	}
}

// Search возвращает top-K похожих ассетов по паре векторов запроса.
func (s *SearchUseCase) Search(ctx context.Context, req *SearchReq) (*SearchRes, error) {
	const op = "SearchUseCase.Search"

	if req == nil || (len(req.ColorVector) == 0 && len(req.GrayVector) == 0) {
		return nil, e.Wrap(op, e.ErrEmptyVectors)
	}
	if req.TopK < 0 {
		return nil, e.Wrap(op, e.ErrInvalidTopK)
	}

	candidates, err := s.retriever.RetrieveMerged(ctx, req.ColorVector, req.GrayVector, req.TopK)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewSearchRes(candidates), nil
}

// ResourceStats возвращает снимок ресурсного состояния экстракции.
func (s *SearchUseCase) ResourceStats(_ context.Context) (*ResourceStatsRes, error) {
	stats := s.stats.ResourceStats()
	return &stats, nil
}

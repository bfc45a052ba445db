package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

// FeatureUseCase регистрирует готовые признаки ассета: запись в хранилище,
// векторы в ANN-индекс, отметка готовности в кэше.
type FeatureUseCase struct {
	assetRepo AssetRepository
	index     VectorIndex
	cacheRepo CacheRepository
	logger    logger.Logger
}

func NewFeatureUC(assetRepo AssetRepository, index VectorIndex, cacheRepo CacheRepository, logger logger.Logger) *FeatureUseCase {
	return &FeatureUseCase{
		assetRepo: assetRepo,
		index:     index,
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

// RegisterFeatures сохраняет ассет с признаками и публикует его эмбеддинги
// в индекс. Повторная регистрация перезаписывает признаки атомарно.
func (f *FeatureUseCase) RegisterFeatures(ctx context.Context, req *FeaturesReadyReq) error {
	const op = "FeatureUseCase.RegisterFeatures"

	if err := f.validate(req); err != nil {
		return e.Wrap(op, err)
	}

	asset := domain.NewVisualAsset(req.AssetID, req.Kind, req.OwnerID, req.TimestampMs)
	asset.ColorVector = req.ColorVector
	asset.GrayVector = req.GrayVector
	asset.KeypointKey = req.KeypointKey

	saved, err := f.assetRepo.Upsert(ctx, asset)
	if err != nil {
		return e.Wrap(op, err)
	}

	payload := domain.NewPayload(saved.OwnerID, saved.Kind, saved.KeypointKey, req.ModelVersion)
	embeddings := []domain.Embedding{
		*domain.NewEmbedding(saved.ID, domain.SpaceColor, req.ColorVector, payload),
		*domain.NewEmbedding(saved.ID, domain.SpaceGray, req.GrayVector, payload),
	}
	if err := f.index.Upsert(ctx, embeddings); err != nil {
		return e.Wrap(op, err)
	}

	// Отметка готовности ускоряет проверку перед сопоставлением; её потеря
	// не критична, источник истины — хранилище ассетов.
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := f.cacheRepo.MarkFeaturesReady(bgCtx, saved.ID); err != nil {
			f.logger.Warnf("failed to mark asset %s ready in background: %v", saved.ID, e.Wrap(op, err))
		}
	}()

	return nil
}

func (f *FeatureUseCase) validate(req *FeaturesReadyReq) error {
	if req == nil || req.AssetID == "" {
		return e.ErrMalformedRequest
	}
	if req.Kind != domain.KindProductImage && req.Kind != domain.KindVideoFrame {
		return e.ErrUnsupportedKind
	}
	if len(req.ColorVector) == 0 || len(req.GrayVector) == 0 {
		return e.ErrVectorEmbeddingEmpty
	}
	if req.KeypointKey == "" {
		return e.ErrMissingFields
	}
	return nil
}

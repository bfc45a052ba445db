package usecase

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

// ExtractionUseCase — приём сырых ассетов: извлечение признаков через
// управляемый worker, сохранение блоба ключевых точек и регистрация признаков.
type ExtractionUseCase struct {
	extractor ExtractorInfra
	blobRepo  KeypointBlobRepository
	features  FeatureUC
	logger    logger.Logger
}

func NewExtractionUC(extractor ExtractorInfra, blobRepo KeypointBlobRepository, features FeatureUC, logger logger.Logger) *ExtractionUseCase {
	return &ExtractionUseCase{
		extractor: extractor,
		blobRepo:  blobRepo,
		features:  features,
		logger:    logger,
	}
}

// IngestAssets извлекает признаки пакета ассетов и регистрирует успешные.
// Возвращает идентификаторы зарегистрированных ассетов; частичный сбой
// экстракции не отменяет регистрацию остальных.
func (u *ExtractionUseCase) IngestAssets(ctx context.Context, req *IngestAssetsReq) ([]string, error) {
	const op = "ExtractionUseCase.IngestAssets"

	if req == nil || len(req.Assets) == 0 {
		return nil, e.Wrap(op, e.ErrNoAssets)
	}

	meta := make(map[string]IngestAsset, len(req.Assets))
	batch := make([]ExtractAsset, 0, len(req.Assets))
	for _, a := range req.Assets {
		if a.AssetID == "" || len(a.Data) == 0 {
			return nil, e.Wrap(op, e.ErrMalformedRequest)
		}
		if a.Kind != domain.KindProductImage && a.Kind != domain.KindVideoFrame {
			return nil, e.Wrap(op, e.ErrUnsupportedKind)
		}
		meta[a.AssetID] = a
		batch = append(batch, ExtractAsset{AssetID: a.AssetID, Kind: a.Kind, Data: a.Data})
	}

	results, extractErr := u.extractor.ExtractBatch(ctx, NewExtractBatchReq(batch))

	registered := make([]string, 0, len(results))
	for i := range results {
		res := &results[i]
		src := meta[res.AssetID]

		key, err := u.blobRepo.Put(ctx, keypointObjectKey(res.AssetID), res.KeypointBlob)
		if err != nil {
			u.logger.Warnf("keypoint blob for %s not stored: %v", res.AssetID, e.Wrap(op, err))
			continue
		}

		ready := &FeaturesReadyReq{
			AssetID:      res.AssetID,
			Kind:         src.Kind,
			OwnerID:      src.OwnerID,
			TimestampMs:  src.TimestampMs,
			ColorVector:  res.ColorVector,
			GrayVector:   res.GrayVector,
			KeypointKey:  key,
			ModelVersion: res.ModelVersion,
		}
		if err := u.features.RegisterFeatures(ctx, ready); err != nil {
			u.logger.Warnf("asset %s not registered: %v", res.AssetID, e.Wrap(op, err))
			continue
		}

		registered = append(registered, res.AssetID)
	}

	if extractErr != nil {
		return registered, e.Wrap(op, extractErr)
	}

	return registered, nil
}

func keypointObjectKey(assetID string) string {
	return fmt.Sprintf("keypoints/%s.kps", assetID)
}

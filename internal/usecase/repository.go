package usecase

import (
	"context"

	"github.com/DRSN-tech/match-engine/internal/domain"
)

type AssetRepository interface {
	Upsert(ctx context.Context, asset *domain.VisualAsset) (*domain.VisualAsset, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.VisualAsset, error)
}

type MatchRepository interface {
	// Create вставляет Match; для существующей тройки (job, product, video)
	// возвращает уже сохранённый Match и alreadyExists=true.
	Create(ctx context.Context, match *domain.Match) (saved *domain.Match, alreadyExists bool, err error)
	GetByKey(ctx context.Context, jobID string, productID, videoID int64) (*domain.Match, error)
	SetEvidenceKey(ctx context.Context, matchID string, evidenceKey string) error
}

// VectorIndex — ANN-индекс эмбеддингов. Retrieve выполняет поиск в одном
// пространстве; слияние пространств — ответственность retriever'а.
type VectorIndex interface {
	Upsert(ctx context.Context, vectors []domain.Embedding) error
	Retrieve(ctx context.Context, space domain.Space, query []float32, topK int) ([]domain.Candidate, error)
}

// KeypointBlobRepository хранит блобы ключевых точек и артефакты доказательств.
type KeypointBlobRepository interface {
	Put(ctx context.Context, key string, blob []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type CacheRepository interface {
	GetVerdict(ctx context.Context, jobID string, productID, videoID int64) (*MatchVerdict, error)
	SetVerdict(ctx context.Context, verdict *MatchVerdict) error
	MarkFeaturesReady(ctx context.Context, assetID string) error
	FeaturesReady(ctx context.Context, assetIDs []string) (map[string]bool, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

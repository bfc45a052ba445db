package qdrant

import (
	"context"

	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/DRSN-tech/match-engine/internal/cfg"
	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/pkg/e"
)

// EmbeddingRepo реализует векторный индекс поверх Qdrant.
// Оба пространства живут в одной коллекции именованными векторами точки.
type EmbeddingRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewEmbeddingRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *EmbeddingRepo {
	return &EmbeddingRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upsert сохраняет или обновляет векторы ассетов. Векторы одного ассета
// группируются в одну точку: upsert в Qdrant заменяет точку целиком,
// и раздельная запись пространств потеряла бы одно из них.
func (q *EmbeddingRepo) Upsert(ctx context.Context, vectors []domain.Embedding) error {
	if len(vectors) == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrEmptyVectors)
	}

	type grouped struct {
		spaces  map[string]*qdrant.Vector
		payload domain.Payload
	}
	byID := make(map[string]*grouped, len(vectors))
	order := make([]string, 0, len(vectors))
	for _, vector := range vectors {
		if len(vector.Vector) == 0 {
			return e.Wrap(whereami.WhereAmI(), e.ErrVectorEmbeddingEmpty)
		}

		g, ok := byID[vector.ID]
		if !ok {
			g = &grouped{spaces: make(map[string][]float32, 2)}
			byID[vector.ID] = g
			order = append(order, vector.ID)
		}
		g.spaces[string(vector.Space)] = vector.Vector
		g.payload = vector.Payload
	}

	points := make([]*qdrant.PointStruct, 0, len(order))
	for _, id := range order {
		g := byID[id]
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(id),
			Vectors: qdrant.NewVectorsMap(g.spaces),
			Payload: qdrant.NewValueMap(g.payload),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Points:         points,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), mapIndexError(err))
	}

	return nil
}

// Retrieve выполняет ANN-поиск в одном именованном пространстве.
// Счёт Qdrant для косинусной метрики лежит в [-1,1] и отображается в [0,1].
func (q *EmbeddingRepo) Retrieve(ctx context.Context, space domain.Space, query []float32, topK int) ([]domain.Candidate, error) {
	if len(query) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrEmptyVectors)
	}

	limit := uint64(topK)
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Query:          qdrant.NewQuery(query...),
		Using:          qdrant.PtrOf(string(space)),
		Limit:          &limit,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapIndexError(err))
	}

	candidates := make([]domain.Candidate, 0, len(points))
	for _, point := range points {
		id := point.GetId().GetUuid()
		if id == "" {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			AssetID:    id,
			Similarity: float64(point.GetScore()+1) / 2,
		})
	}

	return candidates, nil
}

// mapIndexError переводит транспортные сбои Qdrant в e.ErrIndexUnavailable,
// чтобы retriever мог повторить поиск.
func mapIndexError(err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return e.ErrIndexUnavailable
	case codes.DataLoss, codes.Internal:
		return e.ErrIndexCorrupted
	default:
		return err
	}
}

// Package local — встраиваемый ANN-индекс на HNSW-графе. Используется как
// бэкенд индекса в тестах и в инсталляциях без внешнего Qdrant.
package local

import (
	"context"
	"sort"
	"sync"

	"github.com/coder/hnsw"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/matching"
	"github.com/DRSN-tech/match-engine/pkg/e"
)

// Index хранит по одному HNSW-графу на пространство эмбеддингов.
type Index struct {
	mu     sync.Mutex
	graphs map[domain.Space]*hnsw.Graph[string]
	dim    int
}

func NewIndex(dim int) *Index {
	return &Index{
		graphs: map[domain.Space]*hnsw.Graph[string]{
			domain.SpaceColor: hnsw.NewGraph[string](),
			domain.SpaceGray:  hnsw.NewGraph[string](),
		},
		dim: dim,
	}
}

// Upsert добавляет или заменяет векторы в графе своего пространства.
func (i *Index) Upsert(_ context.Context, vectors []domain.Embedding) error {
	const op = "local.Index.Upsert"

	i.mu.Lock()
	defer i.mu.Unlock()

	for _, vector := range vectors {
		graph, ok := i.graphs[vector.Space]
		if !ok {
			return e.Wrap(op, e.ErrUnknownEmbeddingSpace)
		}
		if len(vector.Vector) != i.dim {
			return e.Wrap(op, e.ErrVectorDimensionWrong)
		}

		graph.Delete(vector.ID)
		graph.Add(hnsw.MakeNode(vector.ID, vector.Vector))
	}

	return nil
}

// Retrieve ищет topK ближайших соседей в одном пространстве.
// Сходство пересчитывается как (cos+1)/2 по сохранённому вектору соседа.
func (i *Index) Retrieve(_ context.Context, space domain.Space, query []float32, topK int) ([]domain.Candidate, error) {
	const op = "local.Index.Retrieve"

	i.mu.Lock()
	defer i.mu.Unlock()

	graph, ok := i.graphs[space]
	if !ok {
		return nil, e.Wrap(op, e.ErrUnknownEmbeddingSpace)
	}
	if len(query) != i.dim {
		return nil, e.Wrap(op, e.ErrVectorDimensionWrong)
	}
	if graph.Len() == 0 {
		return nil, nil
	}

	neighbors := graph.Search(query, topK)

	candidates := make([]domain.Candidate, 0, len(neighbors))
	for _, node := range neighbors {
		candidates = append(candidates, domain.Candidate{
			AssetID:    node.Key,
			Similarity: matching.Cosine01(query, node.Value),
		})
	}
	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].Similarity > candidates[b].Similarity
	})

	return candidates, nil
}

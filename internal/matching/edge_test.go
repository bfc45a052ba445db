package matching

import (
	"testing"

	"github.com/DRSN-tech/match-engine/internal/domain"
)

func diagonalEdges(w, h int) *domain.EdgeMap {
	m := domain.NewEdgeMap(w, h)
	for i := 0; i < w && i < h; i++ {
		m.Set(i, i)
	}
	return m
}

func TestEdgeSimilarity_NilMaps(t *testing.T) {
	if sim := EdgeSimilarity(nil, diagonalEdges(10, 10), nil); sim != 0 {
		t.Fatalf("nil image map must give 0, got %v", sim)
	}
	if sim := EdgeSimilarity(diagonalEdges(10, 10), nil, nil); sim != 0 {
		t.Fatalf("nil frame map must give 0, got %v", sim)
	}
}

func TestEdgeSimilarity_IdentityTransform(t *testing.T) {
	image := diagonalEdges(20, 20)
	frame := diagonalEdges(20, 20)
	identity := domain.Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}

	sim := EdgeSimilarity(image, frame, &identity)
	if sim < 0.9 {
		t.Fatalf("identical maps under identity transform: sim = %v, want >= 0.9", sim)
	}
}

func TestEdgeSimilarity_DisjointEdges(t *testing.T) {
	image := domain.NewEdgeMap(20, 20)
	frame := domain.NewEdgeMap(20, 20)
	// Границы в противоположных углах, дальше допуска в один пиксель.
	image.Set(1, 1)
	image.Set(2, 1)
	frame.Set(18, 18)
	frame.Set(17, 18)
	identity := domain.Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}

	sim := EdgeSimilarity(image, frame, &identity)
	if sim != 0 {
		t.Fatalf("disjoint edges: sim = %v, want 0", sim)
	}
}

func TestEdgeSimilarity_NoTransformFallsBackToWholeImage(t *testing.T) {
	image := diagonalEdges(10, 10)
	frame := diagonalEdges(20, 20)

	// Без преобразования карта изображения масштабируется к размеру кадра;
	// диагональ остаётся диагональю, схожесть заметно выше нуля.
	sim := EdgeSimilarity(image, frame, nil)
	if sim <= 0.2 {
		t.Fatalf("scaled diagonal edges: sim = %v, want > 0.2", sim)
	}
	if sim > 1 {
		t.Fatalf("sim = %v out of [0,1]", sim)
	}
}

func TestEdgeSimilarity_RangeUnderTranslation(t *testing.T) {
	image := diagonalEdges(15, 15)
	frame := domain.NewEdgeMap(40, 40)
	for i := 0; i < 15; i++ {
		frame.Set(i+5, i+7)
	}
	shift := domain.Homography{1, 0, 5, 0, 1, 7, 0, 0, 1}

	sim := EdgeSimilarity(image, frame, &shift)
	if sim < 0.9 {
		t.Fatalf("translated edges must align: sim = %v, want >= 0.9", sim)
	}
}

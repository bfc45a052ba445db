package matching

import (
	"math"
	"testing"

	"github.com/DRSN-tech/match-engine/internal/domain"
)

func TestCosine01(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 0, 0}, b: []float32{1, 0, 0}, want: 1},
		{name: "opposite", a: []float32{1, 0, 0}, b: []float32{-1, 0, 0}, want: 0},
		{name: "orthogonal", a: []float32{1, 0, 0}, b: []float32{0, 1, 0}, want: 0.5},
		{name: "empty", a: nil, b: nil, want: 0},
		{name: "dimension mismatch", a: []float32{1, 0}, b: []float32{1, 0, 0}, want: 0},
		{name: "zero norm", a: []float32{0, 0, 0}, b: []float32{1, 0, 0}, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Cosine01(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Cosine01 = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEmbeddingSimilarity_TakesMaxOfSpaces(t *testing.T) {
	image := &domain.VisualAsset{
		ColorVector: []float32{1, 0},
		GrayVector:  []float32{0, 1},
	}
	frame := &domain.VisualAsset{
		ColorVector: []float32{-1, 0}, // color: 0
		GrayVector:  []float32{0, 1},  // gray: 1
	}

	got := EmbeddingSimilarity(image, frame)
	if math.Abs(got-1) > 1e-9 {
		t.Fatalf("similarity = %v, want max over spaces = 1", got)
	}
}

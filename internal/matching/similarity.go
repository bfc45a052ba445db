package matching

import (
	"math"

	"github.com/DRSN-tech/match-engine/internal/domain"
)

// Cosine01 возвращает косинусное сходство двух векторов, отображённое в [0,1]
// по формуле (cos+1)/2. Для векторов разной длины или нулевой нормы — 0.
func Cosine01(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01((cos + 1) / 2)
}

// EmbeddingSimilarity — сходство эмбеддингов пары ассетов: максимум по двум
// пространствам (color, gray). Максимум защищает от провала одного пространства
// при цветовых и световых искажениях.
func EmbeddingSimilarity(image, frame *domain.VisualAsset) float64 {
	color := Cosine01(image.ColorVector, frame.ColorVector)
	gray := Cosine01(image.GrayVector, frame.GrayVector)
	return math.Max(color, gray)
}

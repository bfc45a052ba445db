// Package matching содержит CPU-ядро визуального сопоставления:
// геометрическую верификацию пар, слияние оценок и агрегацию вердиктов.
// Пакет не имеет внешних зависимостей и не хранит разделяемого состояния:
// все типы создаются на один запрос.
package matching

// Веса компонент и порог принятия по умолчанию. Значения задаются конфигурацией;
// формула — фиксированная выпуклая комбинация — является контрактом:
// любой вызывающий обязан получить то же решение, пересчитав score по компонентам.
const (
	DefaultEmbeddingWeight = 0.35
	DefaultGeometricWeight = 0.55
	DefaultEdgeWeight      = 0.10
	DefaultAcceptThreshold = 0.80
)

// FusionWeights — веса трёх компонент сходства.
type FusionWeights struct {
	Embedding float64
	Geometric float64
	Edge      float64
}

func DefaultWeights() FusionWeights {
	return FusionWeights{
		Embedding: DefaultEmbeddingWeight,
		Geometric: DefaultGeometricWeight,
		Edge:      DefaultEdgeWeight,
	}
}

// Fusion сводит три компонентных сходства в один скаляр и принимает решение по порогу.
type Fusion struct {
	weights   FusionWeights
	threshold float64
}

// NewFusion создаёт Fusion. Веса нормализуются к сумме 1, чтобы итоговый
// score гарантированно оставался в [0,1] при компонентах из [0,1].
func NewFusion(weights FusionWeights, threshold float64) *Fusion {
	sum := weights.Embedding + weights.Geometric + weights.Edge
	if sum <= 0 {
		weights = DefaultWeights()
		sum = 1
	}
	weights.Embedding /= sum
	weights.Geometric /= sum
	weights.Edge /= sum

	if threshold <= 0 || threshold > 1 {
		threshold = DefaultAcceptThreshold
	}

	return &Fusion{
		weights:   weights,
		threshold: threshold,
	}
}

// Fuse вычисляет итоговую оценку пары и решение о принятии.
func (f *Fusion) Fuse(embeddingSim, geometricSim, edgeSim float64) (score float64, accepted bool) {
	score = f.weights.Embedding*clamp01(embeddingSim) +
		f.weights.Geometric*clamp01(geometricSim) +
		f.weights.Edge*clamp01(edgeSim)

	return score, score >= f.threshold
}

// Threshold возвращает действующий порог принятия.
func (f *Fusion) Threshold() float64 {
	return f.threshold
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package matching

import "github.com/DRSN-tech/match-engine/internal/domain"

// AggregationPolicy сводит оценки всех пар (изображение x кадр) одной пары
// продукт-видео в один вердикт. Политика выбирается конфигурацией.
type AggregationPolicy interface {
	// Aggregate возвращает лучшую пару и решение о принятии.
	// Для пустого входа возвращается (nil, false).
	Aggregate(scores []domain.PairScore) (*domain.PairScore, bool)
}

// BestPairPolicy — политика по умолчанию: вердикт определяется единственной
// лучшей парой; принятие — если её итоговая оценка не ниже порога.
type BestPairPolicy struct {
	threshold float64
}

func NewBestPairPolicy(threshold float64) *BestPairPolicy {
	return &BestPairPolicy{threshold: threshold}
}

func (p *BestPairPolicy) Aggregate(scores []domain.PairScore) (*domain.PairScore, bool) {
	best := bestOf(scores)
	if best == nil {
		return nil, false
	}
	return best, best.Fused >= p.threshold
}

// CorroboratingFramesPolicy — более строгая политика: помимо лучшей пары,
// не менее minFrames различных кадров должны превысить вторичный порог.
type CorroboratingFramesPolicy struct {
	threshold          float64
	secondaryThreshold float64
	minFrames          int
}

func NewCorroboratingFramesPolicy(threshold, secondaryThreshold float64, minFrames int) *CorroboratingFramesPolicy {
	return &CorroboratingFramesPolicy{
		threshold:          threshold,
		secondaryThreshold: secondaryThreshold,
		minFrames:          minFrames,
	}
}

func (p *CorroboratingFramesPolicy) Aggregate(scores []domain.PairScore) (*domain.PairScore, bool) {
	best := bestOf(scores)
	if best == nil {
		return nil, false
	}
	if best.Fused < p.threshold {
		return best, false
	}

	frames := make(map[string]struct{})
	for i := range scores {
		if scores[i].Fused >= p.secondaryThreshold {
			frames[scores[i].FrameID] = struct{}{}
		}
	}

	return best, len(frames) >= p.minFrames
}

// bestOf возвращает пару с максимальной итоговой оценкой.
// При равенстве выигрывает более ранняя пара — результат детерминирован
// относительно порядка обхода изображение x кадр.
func bestOf(scores []domain.PairScore) *domain.PairScore {
	if len(scores) == 0 {
		return nil
	}

	best := &scores[0]
	for i := 1; i < len(scores); i++ {
		if scores[i].Fused > best.Fused {
			best = &scores[i]
		}
	}
	return best
}

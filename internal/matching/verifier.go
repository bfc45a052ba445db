package matching

import (
	"math"
	"math/rand"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/pkg/e"
)

// VerifierCfg — параметры геометрической верификации.
type VerifierCfg struct {
	// RatioThreshold — порог теста отношений Лоу для отбраковки неоднозначных соответствий.
	RatioThreshold float64
	// ReprojThreshold — порог ошибки репроекции (в пикселях), внутри которого точка считается инлайером.
	ReprojThreshold float64
	// MaxIterations — жёсткая верхняя граница итераций RANSAC.
	MaxIterations int
	// Confidence — целевая вероятность найти модель без выбросов (адаптивная остановка).
	Confidence float64
}

func DefaultVerifierCfg() VerifierCfg {
	return VerifierCfg{
		RatioThreshold:  0.75,
		ReprojThreshold: 3.0,
		MaxIterations:   2000,
		Confidence:      0.995,
	}
}

// VerifyResult — результат верификации одной пары (изображение, кадр).
// Reason заполняется, когда преобразование не найдено: пара остаётся
// валидной, просто без геометрического вклада.
type VerifyResult struct {
	InlierRatio    float64
	TransformFound bool
	Transform      *domain.Homography
	InlierCount    int
	TentativeCount int
	Reason         error
}

// Verifier сопоставляет дескрипторы двух наборов ключевых точек и проверяет
// геометрическую согласованность через RANSAC-оценку гомографии.
// Verifier не потокобезопасен: на каждый запрос создаётся свой экземпляр
// с детерминированным зерном.
type Verifier struct {
	cfg VerifierCfg
	rng *rand.Rand
}

func NewVerifier(cfg VerifierCfg, seed int64) *Verifier {
	if cfg.RatioThreshold <= 0 || cfg.RatioThreshold >= 1 {
		cfg.RatioThreshold = DefaultVerifierCfg().RatioThreshold
	}
	if cfg.ReprojThreshold <= 0 {
		cfg.ReprojThreshold = DefaultVerifierCfg().ReprojThreshold
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultVerifierCfg().MaxIterations
	}
	if cfg.Confidence <= 0 || cfg.Confidence >= 1 {
		cfg.Confidence = DefaultVerifierCfg().Confidence
	}

	return &Verifier{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Verify выполняет полный конвейер: сопоставление дескрипторов, тест отношений,
// RANSAC-оценку гомографии и подсчёт доли инлайеров.
// Менее minSampleSize предварительных соответствий — преобразования нет, ratio = 0.
func (v *Verifier) Verify(image, frame *domain.KeypointSet) VerifyResult {
	tentative := v.matchDescriptors(image, frame)
	if len(tentative) < minSampleSize {
		return VerifyResult{TentativeCount: len(tentative), Reason: e.ErrNotEnoughMatches}
	}

	best, inliers := v.ransacHomography(tentative)
	if best == nil {
		return VerifyResult{TentativeCount: len(tentative), Reason: e.ErrNoTransform}
	}

	ratio := float64(inliers) / float64(len(tentative))
	if ratio > 1 {
		ratio = 1
	}

	return VerifyResult{
		InlierRatio:    ratio,
		TransformFound: true,
		Transform:      best,
		InlierCount:    inliers,
		TentativeCount: len(tentative),
	}
}

// matchDescriptors находит для каждой точки изображения ближайший и второй по
// близости дескрипторы кадра (расстояние Хэмминга) и применяет тест отношений Лоу.
func (v *Verifier) matchDescriptors(image, frame *domain.KeypointSet) []correspondence {
	if len(frame.Keypoints) < 2 {
		return nil
	}

	out := make([]correspondence, 0, len(image.Keypoints))
	for i := range image.Keypoints {
		kp := &image.Keypoints[i]

		bestDist, secondDist := math.MaxInt32, math.MaxInt32
		bestIdx := -1
		for j := range frame.Keypoints {
			d := kp.HammingDistance(&frame.Keypoints[j])
			switch {
			case d < bestDist:
				secondDist = bestDist
				bestDist = d
				bestIdx = j
			case d < secondDist:
				secondDist = d
			}
		}

		if bestIdx < 0 {
			continue
		}
		if float64(bestDist) >= v.cfg.RatioThreshold*float64(secondDist) {
			continue // неоднозначное соответствие
		}

		fp := &frame.Keypoints[bestIdx]
		out = append(out, correspondence{
			src: point{kp.X, kp.Y},
			dst: point{fp.X, fp.Y},
		})
	}

	return out
}

// ransacHomography ищет гомографию с максимальной поддержкой.
// Количество итераций адаптивно сокращается по мере роста лучшей доли инлайеров,
// но никогда не превышает MaxIterations.
func (v *Verifier) ransacHomography(tentative []correspondence) (*domain.Homography, int) {
	var (
		best        *domain.Homography
		bestInliers int
	)

	n := len(tentative)
	maxIter := v.cfg.MaxIterations
	logOneMinusConf := math.Log(1 - v.cfg.Confidence)

	sample := make([]correspondence, minSampleSize)
	for iter := 0; iter < maxIter; iter++ {
		v.sampleCorrespondences(tentative, sample)

		h, ok := fitHomography(sample)
		if !ok {
			continue
		}

		inliers := 0
		for _, c := range tentative {
			if reprojectionError(h, c) < v.cfg.ReprojThreshold {
				inliers++
			}
		}

		if inliers > bestInliers {
			bestInliers = inliers
			best = h

			// Адаптивная остановка: при доле инлайеров w достаточно
			// log(1-conf)/log(1-w^4) итераций.
			w := float64(inliers) / float64(n)
			denom := math.Log(1 - math.Pow(w, minSampleSize))
			if denom < 0 {
				if need := int(math.Ceil(logOneMinusConf / denom)); need < maxIter {
					maxIter = need
				}
			}
		}
	}

	if bestInliers < minSampleSize {
		return nil, 0
	}
	return best, bestInliers
}

// sampleCorrespondences заполняет sample случайными различными соответствиями.
func (v *Verifier) sampleCorrespondences(tentative []correspondence, sample []correspondence) {
	n := len(tentative)
	var idx [minSampleSize]int
	for i := 0; i < minSampleSize; i++ {
	retry:
		cand := v.rng.Intn(n)
		for j := 0; j < i; j++ {
			if idx[j] == cand {
				goto retry
			}
		}
		idx[i] = cand
		sample[i] = tentative[cand]
	}
}

package matching

import (
	"math"

	"github.com/DRSN-tech/match-engine/internal/domain"
)

// EdgeSimilarity — нормированная структурная схожесть карт границ в [0,1].
//
// Выбранная мера (точное определение меры в исходных материалах не зафиксировано,
// поэтому решение задокументировано здесь): коэффициент Жаккара пересечения
// граничных пикселей. При найденном преобразовании граничные пиксели изображения
// продукта проецируются в координаты кадра и сравниваются с границами кадра внутри
// спроецированной области (с допуском в один пиксель); без преобразования карты
// сравниваются целиком с приведением масштаба изображения к размеру кадра.
func EdgeSimilarity(image, frame *domain.EdgeMap, h *domain.Homography) float64 {
	if image == nil || frame == nil || image.Width == 0 || image.Height == 0 ||
		frame.Width == 0 || frame.Height == 0 {
		return 0
	}

	if h == nil {
		return scaledJaccard(image, frame)
	}
	return projectedJaccard(image, frame, h)
}

// projectedJaccard считает пересечение спроецированных границ изображения с
// границами кадра в области, очерченной спроецированными углами изображения.
func projectedJaccard(image, frame *domain.EdgeMap, h *domain.Homography) float64 {
	minX, minY, maxX, maxY, ok := projectedRegion(image, frame, h)
	if !ok {
		return 0
	}

	projected := 0
	hits := 0
	for y := 0; y < image.Height; y++ {
		for x := 0; x < image.Width; x++ {
			if !image.At(x, y) {
				continue
			}
			px, py, ok := h.Apply(float64(x), float64(y))
			if !ok {
				continue
			}
			fx, fy := int(math.Round(px)), int(math.Round(py))
			if fx < minX || fx > maxX || fy < minY || fy > maxY {
				continue
			}
			projected++
			if nearEdge(frame, fx, fy) {
				hits++
			}
		}
	}

	frameEdges := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if frame.At(x, y) {
				frameEdges++
			}
		}
	}

	union := projected + frameEdges - hits
	if union <= 0 {
		return 0
	}
	return clamp01(float64(hits) / float64(union))
}

// projectedRegion возвращает ограничивающий прямоугольник спроецированных углов
// изображения, обрезанный по границам кадра.
func projectedRegion(image, frame *domain.EdgeMap, h *domain.Homography) (minX, minY, maxX, maxY int, ok bool) {
	corners := [4][2]float64{
		{0, 0},
		{float64(image.Width - 1), 0},
		{0, float64(image.Height - 1)},
		{float64(image.Width - 1), float64(image.Height - 1)},
	}

	fMinX, fMinY := math.Inf(1), math.Inf(1)
	fMaxX, fMaxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		px, py, valid := h.Apply(c[0], c[1])
		if !valid {
			return 0, 0, 0, 0, false
		}
		fMinX = math.Min(fMinX, px)
		fMinY = math.Min(fMinY, py)
		fMaxX = math.Max(fMaxX, px)
		fMaxY = math.Max(fMaxY, py)
	}

	minX = clampInt(int(math.Floor(fMinX)), 0, frame.Width-1)
	minY = clampInt(int(math.Floor(fMinY)), 0, frame.Height-1)
	maxX = clampInt(int(math.Ceil(fMaxX)), 0, frame.Width-1)
	maxY = clampInt(int(math.Ceil(fMaxY)), 0, frame.Height-1)

	if minX > maxX || minY > maxY {
		return 0, 0, 0, 0, false
	}
	return minX, minY, maxX, maxY, true
}

// scaledJaccard сравнивает карты целиком, приводя координаты изображения к
// размеру кадра ближайшим соседом.
func scaledJaccard(image, frame *domain.EdgeMap) float64 {
	sx := float64(frame.Width) / float64(image.Width)
	sy := float64(frame.Height) / float64(image.Height)

	projected := 0
	hits := 0
	for y := 0; y < image.Height; y++ {
		for x := 0; x < image.Width; x++ {
			if !image.At(x, y) {
				continue
			}
			projected++
			fx := int(math.Round(float64(x) * sx))
			fy := int(math.Round(float64(y) * sy))
			if nearEdge(frame, fx, fy) {
				hits++
			}
		}
	}

	frameEdges := 0
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			if frame.At(x, y) {
				frameEdges++
			}
		}
	}

	union := projected + frameEdges - hits
	if union <= 0 {
		return 0
	}
	return clamp01(float64(hits) / float64(union))
}

// nearEdge — попадание с допуском в один пиксель, чтобы не штрафовать
// субпиксельные сдвиги после проекции.
func nearEdge(m *domain.EdgeMap, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if m.At(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package matching

import (
	"math"

	"github.com/DRSN-tech/match-engine/internal/domain"
)

// point — пиксельная координата.
type point struct {
	x, y float64
}

// correspondence — предварительное соответствие точки изображения точке кадра.
type correspondence struct {
	src point // изображение продукта
	dst point // кадр видео
}

// minSampleSize — минимальный набор соответствий для планарной гомографии.
const minSampleSize = 4

// collinearEps — порог площади треугольника, ниже которого три точки считаются коллинеарными.
const collinearEps = 1e-6

// collinear сообщает, лежат ли три точки (почти) на одной прямой.
func collinear(a, b, c point) bool {
	area := (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
	return math.Abs(area) < collinearEps
}

// degenerateSample проверяет минимальную выборку на вырожденность:
// любые три коллинеарные точки с любой из сторон делают систему неустойчивой.
func degenerateSample(sample []correspondence) bool {
	for i := 0; i < len(sample); i++ {
		for j := i + 1; j < len(sample); j++ {
			for k := j + 1; k < len(sample); k++ {
				if collinear(sample[i].src, sample[j].src, sample[k].src) ||
					collinear(sample[i].dst, sample[j].dst, sample[k].dst) {
					return true
				}
			}
		}
	}
	return false
}

// normalization — сдвиг и масштаб Хартли: центр масс в нуле, средняя
// дистанция sqrt(2). Улучшает обусловленность линейной системы.
type normalization struct {
	cx, cy, scale float64
}

func normalizePoints(pts []point) ([]point, normalization) {
	var cx, cy float64
	for _, p := range pts {
		cx += p.x
		cy += p.y
	}
	n := float64(len(pts))
	cx /= n
	cy /= n

	var meanDist float64
	for _, p := range pts {
		meanDist += math.Hypot(p.x-cx, p.y-cy)
	}
	meanDist /= n

	scale := 1.0
	if meanDist > 1e-12 {
		scale = math.Sqrt2 / meanDist
	}

	out := make([]point, len(pts))
	for i, p := range pts {
		out[i] = point{(p.x - cx) * scale, (p.y - cy) * scale}
	}
	return out, normalization{cx: cx, cy: cy, scale: scale}
}

// fitHomography решает минимальную задачу по четырём соответствиям методом DLT
// с нормализацией Хартли. Возвращает ok=false для вырожденных конфигураций.
func fitHomography(sample []correspondence) (*domain.Homography, bool) {
	if len(sample) != minSampleSize || degenerateSample(sample) {
		return nil, false
	}

	srcPts := make([]point, minSampleSize)
	dstPts := make([]point, minSampleSize)
	for i, c := range sample {
		srcPts[i] = c.src
		dstPts[i] = c.dst
	}

	ns, tSrc := normalizePoints(srcPts)
	nd, tDst := normalizePoints(dstPts)

	// Система 8x8 при фиксированном h33=1 в нормализованных координатах.
	var a [8][9]float64
	for i := 0; i < minSampleSize; i++ {
		sx, sy := ns[i].x, ns[i].y
		dx, dy := nd[i].x, nd[i].y

		a[2*i] = [9]float64{sx, sy, 1, 0, 0, 0, -dx * sx, -dx * sy, dx}
		a[2*i+1] = [9]float64{0, 0, 0, sx, sy, 1, -dy * sx, -dy * sy, dy}
	}

	h8, ok := solveLinear8(&a)
	if !ok {
		return nil, false
	}

	hn := domain.Homography{h8[0], h8[1], h8[2], h8[3], h8[4], h8[5], h8[6], h8[7], 1}

	// Денормализация: H = Tdst^-1 * Hn * Tsrc.
	h := denormalize(&hn, tSrc, tDst)
	return h, true
}

// solveLinear8 решает систему 8x8 (расширенная матрица 8x9) методом Гаусса
// с частичным выбором ведущего элемента. ok=false при (почти) сингулярной матрице.
func solveLinear8(a *[8][9]float64) ([8]float64, bool) {
	const pivotEps = 1e-10

	var x [8]float64
	for col := 0; col < 8; col++ {
		// Выбор ведущей строки
		pivot := col
		for row := col + 1; row < 8; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < pivotEps {
			return x, false
		}
		a[col], a[pivot] = a[pivot], a[col]

		// Исключение
		for row := col + 1; row < 8; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < 9; k++ {
				a[row][k] -= factor * a[col][k]
			}
		}
	}

	// Обратный ход
	for row := 7; row >= 0; row-- {
		sum := a[row][8]
		for k := row + 1; k < 8; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}

	return x, true
}

// denormalize возвращает гомографию в исходных пиксельных координатах.
func denormalize(hn *domain.Homography, tSrc, tDst normalization) *domain.Homography {
	// Tsrc = [s 0 -s*cx; 0 s -s*cy; 0 0 1]
	ts := [9]float64{
		tSrc.scale, 0, -tSrc.scale * tSrc.cx,
		0, tSrc.scale, -tSrc.scale * tSrc.cy,
		0, 0, 1,
	}
	// Tdst^-1 = [1/s 0 cx; 0 1/s cy; 0 0 1]
	tdInv := [9]float64{
		1 / tDst.scale, 0, tDst.cx,
		0, 1 / tDst.scale, tDst.cy,
		0, 0, 1,
	}

	tmp := mat3Mul((*[9]float64)(hn), &ts)
	res := mat3Mul(&tdInv, tmp)

	// Приводим к h33=1 для стабильного сравнения
	if math.Abs(res[8]) > 1e-12 {
		for i := range res {
			res[i] /= res[8]
		}
	}

	h := domain.Homography(*res)
	return &h
}

func mat3Mul(a, b *[9]float64) *[9]float64 {
	var c [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i*3+k] * b[k*3+j]
			}
			c[i*3+j] = sum
		}
	}
	return &c
}

// reprojectionError — евклидова ошибка проекции точки src через h относительно dst.
// Для точек, уходящих в бесконечность, возвращается +Inf.
func reprojectionError(h *domain.Homography, c correspondence) float64 {
	px, py, ok := h.Apply(c.src.x, c.src.y)
	if !ok {
		return math.Inf(1)
	}
	return math.Hypot(px-c.dst.x, py-c.dst.y)
}

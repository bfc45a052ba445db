package domain

// Homography — планарное проективное преобразование 3x3, построчно.
// Переводит точки изображения продукта в координаты кадра видео.
type Homography [9]float64

// Apply проецирует точку (x, y) через преобразование.
// Возвращает ok=false для точек, уходящих в бесконечность (w около нуля).
func (h *Homography) Apply(x, y float64) (px, py float64, ok bool) {
	const epsW = 1e-12

	w := h[6]*x + h[7]*y + h[8]
	if w > -epsW && w < epsW {
		return 0, 0, false
	}

	px = (h[0]*x + h[1]*y + h[2]) / w
	py = (h[3]*x + h[4]*y + h[5]) / w
	return px, py, true
}

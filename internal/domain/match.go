package domain

import "time"

// PairScore — оценка одной пары (изображение продукта, кадр видео).
// Живёт только внутри обработки запроса: после агрегации отбрасывается или логируется.
type PairScore struct {
	ImageID      string
	FrameID      string
	TimestampMs  int64
	EmbeddingSim float64
	GeometricSim float64
	EdgeSim      float64
	Fused        float64
	InlierCount  int
	Transform    *Homography // nil, если преобразование не найдено
}

// Match — принятый вердикт продукт-видео. Неизменяем после создания;
// для тройки (job, product, video) существует не более одного Match.
type Match struct {
	ID              string // uuid
	JobID           string
	ProductID       int64
	VideoID         int64
	BestImageID     string
	BestFrameID     string
	BestTimestampMs int64
	Score           float64
	EvidenceKey     string // ключ артефакта доказательств в S3; пуст до обогащения
	CreatedAt       time.Time
}

func NewMatch(id string, jobID string, productID, videoID int64, best *PairScore) *Match {
	return &Match{
		ID:              id,
		JobID:           jobID,
		ProductID:       productID,
		VideoID:         videoID,
		BestImageID:     best.ImageID,
		BestFrameID:     best.FrameID,
		BestTimestampMs: best.TimestampMs,
		Score:           best.Fused,
	}
}

package domain

import "time"

// AssetKind различает изображения продуктов и кадры видео.
type AssetKind string

const (
	KindProductImage AssetKind = "product-image"
	KindVideoFrame   AssetKind = "video-frame"
)

// VisualAsset описывает визуальный объект (изображение продукта или кадр видео)
// с уже извлечёнными признаками. После записи признаков сущность не изменяется:
// повторная экстракция создаёт новую версию либо перезаписывает атомарно.
type VisualAsset struct {
	ID          string // uuid
	Kind        AssetKind
	OwnerID     int64 // id продукта или видео
	TimestampMs int64 // позиция кадра в видео; 0 для изображений продуктов
	ColorVector []float32
	GrayVector  []float32
	KeypointKey string // ключ блоба с ключевыми точками в S3
	CreatedAt   time.Time
}

func NewVisualAsset(id string, kind AssetKind, ownerID int64, timestampMs int64) *VisualAsset {
	return &VisualAsset{
		ID:          id,
		Kind:        kind,
		OwnerID:     ownerID,
		TimestampMs: timestampMs,
	}
}

// FeaturesReady сообщает, извлечены ли все признаки ассета.
func (a *VisualAsset) FeaturesReady() bool {
	return len(a.ColorVector) > 0 && len(a.GrayVector) > 0 && a.KeypointKey != ""
}

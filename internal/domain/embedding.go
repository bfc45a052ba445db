package domain

import "time"

// Space обозначает пространство эмбеддингов: полноцветное или в градациях серого.
// Два пространства на один ассет снижают ложные отказы при цветовых искажениях.
type Space string

const (
	SpaceColor Space = "color"
	SpaceGray  Space = "gray"
)

// Payload описывает дополнительную информацию вектора
type Payload map[string]any

// Embedding представляет эмбеддинг одного изображения/кадра в одном пространстве
type Embedding struct {
	ID      string
	Space   Space
	Vector  []float32
	Payload Payload
}

func NewEmbedding(id string, space Space, vector []float32, payload Payload) *Embedding {
	return &Embedding{
		ID:      id,
		Space:   space,
		Vector:  vector,
		Payload: payload,
	}
}

func NewPayload(ownerID int64, kind AssetKind, keypointKey string, modelVersion string) Payload {
	return Payload{
		"owner_id":      ownerID,
		"asset_kind":    string(kind),
		"keypoint_key":  keypointKey,
		"created_at":    time.Now().UTC().UnixNano(),
		"model_version": modelVersion,
	}
}

// Candidate — результат поиска по векторному индексу: ассет и его сходство в [0,1].
type Candidate struct {
	AssetID    string
	Similarity float64
}

package converter

import (
	"time"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/usecase"
)

// AssetModel представляет запись таблицы visual_assets в PostgreSQL.
type AssetModel struct {
	ID          string           `db:"id"`
	Kind        domain.AssetKind `db:"kind"`
	OwnerID     int64            `db:"owner_id"`
	TimestampMs int64            `db:"timestamp_ms"`
	ColorVector []float32        `db:"color_vector"`
	GrayVector  []float32        `db:"gray_vector"`
	KeypointKey string           `db:"keypoint_key"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   *time.Time       `db:"updated_at"`
}

// MatchModel представляет запись таблицы matches в PostgreSQL.
type MatchModel struct {
	ID              string    `db:"id"`
	JobID           string    `db:"job_id"`
	ProductID       int64     `db:"product_id"`
	VideoID         int64     `db:"video_id"`
	BestImageID     string    `db:"best_image_id"`
	BestFrameID     string    `db:"best_frame_id"`
	BestTimestampMs int64     `db:"best_timestamp_ms"`
	Score           float64   `db:"score"`
	EvidenceKey     string    `db:"evidence_key"`
	CreatedAt       time.Time `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64                   `db:"id"`
	EventID     string                  `db:"event_id"`
	EventType   usecase.OutboxEventType `db:"event_type"`
	MatchID     string                  `db:"match_id"`
	Payload     []byte                  `db:"payload"`
	Status      usecase.OutboxStatus    `db:"status"`
	CreatedAt   time.Time               `db:"created_at"`
	ProcessedAt *time.Time              `db:"processed_at"`
}

package converter

// VerdictRedisModel — представление вердикта в кэше.
type VerdictRedisModel struct {
	MatchID         string  `json:"match_id,omitempty"`
	JobID           string  `json:"job_id"`
	ProductID       int64   `json:"product_id"`
	VideoID         int64   `json:"video_id"`
	Accepted        bool    `json:"accepted"`
	BestImageID     string  `json:"best_image_id,omitempty"`
	BestFrameID     string  `json:"best_frame_id,omitempty"`
	BestTimestampMs int64   `json:"best_timestamp_ms,omitempty"`
	Score           float64 `json:"score"`
	EvidenceKey     string  `json:"evidence_key,omitempty"`
}

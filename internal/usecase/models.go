package usecase

import (
	"time"

	"github.com/DRSN-tech/match-engine/internal/domain"
)

// MATCHING USECASE

// MatchReq — запрос на сопоставление одной пары продукт-видео.
type MatchReq struct {
	RequestID string // идентификатор сообщения для идемпотентной переобработки
	JobID     string
	ProductID int64
	VideoID   int64
	ImageIDs  []string
	FrameIDs  []string
}

// MatchVerdict — итог обработки запроса: принятый Match либо отклонение.
// Сериализуется в outbox-события и кэш вердиктов.
type MatchVerdict struct {
	MatchID         string  `json:"match_id,omitempty"` // пуст для отклонённых
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

// FeaturesReadyReq — уведомление о готовности признаков одного ассета.
type FeaturesReadyReq struct {
	AssetID      string
	Kind         domain.AssetKind
	OwnerID      int64
	TimestampMs  int64
	ColorVector  []float32
	GrayVector   []float32
	KeypointKey  string
	ModelVersion string
}

// SEARCH USECASE

// SearchReq — ad hoc запрос top-K ближайших ассетов.
type SearchReq struct {
	ColorVector []float32
	GrayVector  []float32
	TopK        int
}

type SearchRes struct {
	Candidates []CandidateRes
}

// CandidateRes — кандидат поиска после слияния пространств.
type CandidateRes struct {
	AssetID    string
	Similarity float64
}

// ResourceStatsRes — снимок ресурсного состояния экстракции.
type ResourceStatsRes struct {
	MemUsedBytes  uint64
	MemTotalBytes uint64
	InFlight      int64
	OOMErrors     int64
	RetryAttempts int64
	Reclaims      int64
}

// INFRASTRUCTURE

// ExtractAsset — одно изображение/кадр, подаваемые на экстракцию.
type ExtractAsset struct {
	AssetID string
	Kind    domain.AssetKind
	Data    []byte // байты изображения
}

// IngestAsset — сырой ассет вместе с метаданными владельца.
type IngestAsset struct {
	AssetID     string
	Kind        domain.AssetKind
	OwnerID     int64
	TimestampMs int64
	Data        []byte
}

// IngestAssetsReq — пакет сырых ассетов на приём.
type IngestAssetsReq struct {
	Assets []IngestAsset
}

// ExtractBatchReq — пакет ассетов на экстракцию. Пакет не обходит допуск
// governor'а: каждый ассет проходит шлюз отдельной задачей.
type ExtractBatchReq struct {
	Assets []ExtractAsset
}

// ExtractAssetRes — результат экстракции признаков одного ассета.
type ExtractAssetRes struct {
	AssetID      string
	ColorVector  []float32
	GrayVector   []float32
	KeypointBlob []byte
	ModelVersion string
}

type WriteRawMessageReq struct {
	Topic   string
	Key     string
	Payload []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	EventMatchResult         OutboxEventType = "match-result"
	EventMatchResultEnriched OutboxEventType = "match-result-enriched"
)

// OutboxEvent — событие для транзакционной отправки в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	MatchID     string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewMatchReq(requestID, jobID string, productID, videoID int64, imageIDs, frameIDs []string) *MatchReq {
	return &MatchReq{
		RequestID: requestID,
		JobID:     jobID,
		ProductID: productID,
		VideoID:   videoID,
		ImageIDs:  imageIDs,
		FrameIDs:  frameIDs,
	}
}

func NewRejectedVerdict(jobID string, productID, videoID int64, score float64) *MatchVerdict {
	return &MatchVerdict{
		JobID:     jobID,
		ProductID: productID,
		VideoID:   videoID,
		Accepted:  false,
		Score:     score,
	}
}

func NewAcceptedVerdict(match *domain.Match) *MatchVerdict {
	return &MatchVerdict{
		MatchID:         match.ID,
		JobID:           match.JobID,
		ProductID:       match.ProductID,
		VideoID:         match.VideoID,
		Accepted:        true,
		BestImageID:     match.BestImageID,
		BestFrameID:     match.BestFrameID,
		BestTimestampMs: match.BestTimestampMs,
		Score:           match.Score,
		EvidenceKey:     match.EvidenceKey,
	}
}

func NewSearchReq(colorVector, grayVector []float32, topK int) *SearchReq {
	return &SearchReq{
		ColorVector: colorVector,
		GrayVector:  grayVector,
		TopK:        topK,
	}
}

func NewSearchRes(candidates []CandidateRes) *SearchRes {
	return &SearchRes{Candidates: candidates}
}

func NewCandidateRes(assetID string, similarity float64) CandidateRes {
	return CandidateRes{AssetID: assetID, Similarity: similarity}
}

func NewExtractBatchReq(assets []ExtractAsset) *ExtractBatchReq {
	return &ExtractBatchReq{Assets: assets}
}

func NewExtractAssetRes(assetID string, colorVector, grayVector []float32, keypointBlob []byte, modelVersion string) *ExtractAssetRes {
	return &ExtractAssetRes{
		AssetID:      assetID,
		ColorVector:  colorVector,
		GrayVector:   grayVector,
		KeypointBlob: keypointBlob,
		ModelVersion: modelVersion,
	}
}

func NewWriteRawMessageReq(topic, key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Topic:   topic,
		Key:     key,
		Payload: payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, matchID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		MatchID:   matchID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/DRSN-tech/match-engine/internal/cfg"
	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/usecase"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

const retryDelay = 1 * time.Second

// matchRequestMessage — входящий запрос на сопоставление пары товар/видео.
type matchRequestMessage struct {
	RequestID string   `json:"request_id" validate:"required"`
	JobID     string   `json:"job_id" validate:"required"`
	ProductID int64    `json:"product_id" validate:"required,gt=0"`
	VideoID   int64    `json:"video_id" validate:"required,gt=0"`
	ImageIDs  []string `json:"image_ids" validate:"required,min=1,dive,required"`
	FrameIDs  []string `json:"frame_ids" validate:"omitempty,dive,required"`
}

// featuresReadyMessage — уведомление экстрактора о готовности признаков ассета.
// Временная метка кадра приходит в секундах десятичной строкой ("12.480").
type featuresReadyMessage struct {
	AssetID      string    `json:"asset_id" validate:"required"`
	Kind         string    `json:"kind" validate:"required,oneof=product-image video-frame"`
	OwnerID      int64     `json:"owner_id" validate:"required,gt=0"`
	TimestampSec string    `json:"timestamp_sec" validate:"omitempty"`
	ColorVector  []float32 `json:"color_vector" validate:"required,min=1"`
	GrayVector   []float32 `json:"gray_vector" validate:"required,min=1"`
	KeypointKey  string    `json:"keypoint_key" validate:"required"`
	ModelVersion string    `json:"model_version" validate:"required"`
}

// MatchRequestConsumer читает топик запросов и запускает конвейер сопоставления.
type MatchRequestConsumer struct {
	reader   *kafka.Reader
	uc       usecase.MatchingUC
	validate *validator.Validate
	logger   logger.Logger
}

func NewMatchRequestConsumer(uc usecase.MatchingUC, logger logger.Logger, cfg *cfg.KafkaCfg) *MatchRequestConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.MatchRequestTopic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &MatchRequestConsumer{
		reader:   reader,
		uc:       uc,
		validate: validator.New(),
		logger:   logger,
	}
}

func (c *MatchRequestConsumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Warnf("match-request fetch failed: %v", err)
			time.Sleep(retryDelay)
			continue
		}

		if err := c.handle(ctx, msg.Value); err != nil {
			if isTransient(err) {
				// Не коммитим — сообщение будет перечитано после задержки.
				c.logger.Warnf("match-request deferred (offset %d): %v", msg.Offset, err)
				time.Sleep(retryDelay)
				continue
			}
			c.logger.Warnf("match-request dropped (offset %d): %v", msg.Offset, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Warnf("match-request commit failed: %v", err)
		}
	}
}

func (c *MatchRequestConsumer) handle(ctx context.Context, payload []byte) error {
	const op = "MatchRequestConsumer.handle"

	var msg matchRequestMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return e.Wrap(op, err)
	}

	if err := c.validate.Struct(&msg); err != nil {
		return e.Wrap(op, err)
	}

	req := usecase.NewMatchReq(msg.RequestID, msg.JobID, msg.ProductID, msg.VideoID, msg.ImageIDs, msg.FrameIDs)
	if _, err := c.uc.ProcessMatchRequest(ctx, req); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (c *MatchRequestConsumer) Close() error {
	return c.reader.Close()
}

// FeaturesReadyConsumer читает топик готовности признаков и регистрирует ассеты.
type FeaturesReadyConsumer struct {
	reader   *kafka.Reader
	uc       usecase.FeatureUC
	validate *validator.Validate
	logger   logger.Logger
}

func NewFeaturesReadyConsumer(uc usecase.FeatureUC, logger logger.Logger, cfg *cfg.KafkaCfg) *FeaturesReadyConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.FeaturesReadyTopic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &FeaturesReadyConsumer{
		reader:   reader,
		uc:       uc,
		validate: validator.New(),
		logger:   logger,
	}
}

func (c *FeaturesReadyConsumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Warnf("features-ready fetch failed: %v", err)
			time.Sleep(retryDelay)
			continue
		}

		if err := c.handle(ctx, msg.Value); err != nil {
			if isTransient(err) {
				// Не коммитим — признаки нельзя потерять из-за сбоя индекса
				// или хранилища, сообщение будет перечитано.
				c.logger.Warnf("features-ready deferred (offset %d): %v", msg.Offset, err)
				time.Sleep(retryDelay)
				continue
			}
			c.logger.Warnf("features-ready dropped (offset %d): %v", msg.Offset, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Warnf("features-ready commit failed: %v", err)
		}
	}
}

func (c *FeaturesReadyConsumer) handle(ctx context.Context, payload []byte) error {
	const op = "FeaturesReadyConsumer.handle"

	var msg featuresReadyMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return e.Wrap(op, err)
	}

	if err := c.validate.Struct(&msg); err != nil {
		return e.Wrap(op, err)
	}

	req, err := toFeaturesReadyReq(&msg)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := c.uc.RegisterFeatures(ctx, req); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (c *FeaturesReadyConsumer) Close() error {
	return c.reader.Close()
}

func toFeaturesReadyReq(msg *featuresReadyMessage) (*usecase.FeaturesReadyReq, error) {
	timestampMs, err := parseTimestampMs(msg.TimestampSec)
	if err != nil {
		return nil, err
	}

	return &usecase.FeaturesReadyReq{
		AssetID:      msg.AssetID,
		Kind:         domain.AssetKind(msg.Kind),
		OwnerID:      msg.OwnerID,
		TimestampMs:  timestampMs,
		ColorVector:  msg.ColorVector,
		GrayVector:   msg.GrayVector,
		KeypointKey:  msg.KeypointKey,
		ModelVersion: msg.ModelVersion,
	}, nil
}

// parseTimestampMs переводит секунды в миллисекунды без потери точности
// на дробной части float64.
func parseTimestampMs(sec string) (int64, error) {
	if sec == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(sec)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(1000)).IntPart(), nil
}

// isTransient отличает ошибки, после которых offset не двигается и сообщение
// перечитывается, от ошибок самого сообщения. Повреждённый индекс тоже здесь:
// приём новой работы останавливается, пока индекс не восстановят.
func isTransient(err error) bool {
	return errors.Is(err, e.ErrFeaturesNotReady) ||
		errors.Is(err, e.ErrIndexUnavailable) ||
		errors.Is(err, e.ErrIndexCorrupted) ||
		errors.Is(err, e.ErrStorageUnavailable)
}

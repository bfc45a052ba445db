package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"

	"github.com/DRSN-tech/match-engine/internal/cfg"
	"github.com/DRSN-tech/match-engine/internal/repository/redis/converter"
	"github.com/DRSN-tech/match-engine/internal/usecase"
	"github.com/DRSN-tech/match-engine/pkg/clients"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

// CacheRepo хранит вердикты и отметки готовности признаков в Redis.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.VerdictConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.VerdictConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetVerdict возвращает вердикт из кэша; промах — (nil, nil).
func (c *CacheRepo) GetVerdict(ctx context.Context, jobID string, productID, videoID int64) (*usecase.MatchVerdict, error) {
	data, err := c.client.Client.Get(ctx, c.verdictKey(jobID, productID, videoID)).Bytes()
	if err != nil {
		if err == r.Nil {
			return nil, nil
		}
		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.VerdictRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, nil // битую запись трактуем как промах
	}

	return c.conv.ToUseCase(&model), nil
}

// SetVerdict кэширует вердикт с настроенным TTL.
func (c *CacheRepo) SetVerdict(ctx context.Context, verdict *usecase.MatchVerdict) error {
	model := c.conv.ToRedisModel(verdict)

	data, err := json.Marshal(model)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	key := c.verdictKey(verdict.JobID, verdict.ProductID, verdict.VideoID)
	if err := c.client.Client.Set(ctx, key, data, c.cfg.VerdictTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// MarkFeaturesReady ставит отметку готовности признаков ассета.
func (c *CacheRepo) MarkFeaturesReady(ctx context.Context, assetID string) error {
	if err := c.client.Client.Set(ctx, c.readyKey(assetID), "1", c.cfg.ReadyTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// FeaturesReady возвращает отметки готовности для набора ассетов.
// Отсутствие отметки не означает неготовность: источник истины — хранилище ассетов.
func (c *CacheRepo) FeaturesReady(ctx context.Context, assetIDs []string) (map[string]bool, error) {
	if len(assetIDs) == 0 {
		return map[string]bool{}, nil
	}

	keys := make([]string, len(assetIDs))
	for i, id := range assetIDs {
		keys[i] = c.readyKey(id)
	}

	values, err := c.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warnf("Redis MGET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make(map[string]bool, len(assetIDs))
	for i, val := range values {
		result[assetIDs[i]] = val != nil
	}

	return result, nil
}

// verdictKey возвращает Redis-ключ вердикта тройки (job, product, video).
func (c *CacheRepo) verdictKey(jobID string, productID, videoID int64) string {
	return fmt.Sprintf("verdict:%s:%d:%d", jobID, productID, videoID)
}

// readyKey возвращает Redis-ключ отметки готовности ассета.
func (c *CacheRepo) readyKey(assetID string) string {
	return fmt.Sprintf("ready:%s", assetID)
}

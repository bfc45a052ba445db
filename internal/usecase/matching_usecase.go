package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/matching"
	"github.com/DRSN-tech/match-engine/internal/metrics"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

// stage — этап конвейера сопоставления; используется в журнале обработки.
type stage string

const (
	stageRetrieving  stage = "retrieving"
	stageVerifying   stage = "verifying"
	stageAggregating stage = "aggregating"
	stageDone        stage = "done"
)

// MatchingUseCase реализует конвейер сопоставления продукт-видео:
// отбор кандидатов, геометрическая верификация пар, слияние оценок,
// агрегация и транзакционная фиксация вердикта.
type MatchingUseCase struct {
	assetRepo   AssetRepository
	matchRepo   MatchRepository
	outboxRepo  OutboxRepository
	blobRepo    KeypointBlobRepository
	cacheRepo   CacheRepository
	retriever   Retriever
	dbPool      transaction.Transactional
	fusion      *matching.Fusion
	policy      matching.AggregationPolicy
	verifierCfg matching.VerifierCfg
	topK        int
	logger      logger.Logger
}

func NewMatchingUC(
	assetRepo AssetRepository,
	matchRepo MatchRepository,
	outboxRepo OutboxRepository,
	blobRepo KeypointBlobRepository,
	cacheRepo CacheRepository,
	retriever Retriever,
	dbPool transaction.Transactional,
	fusion *matching.Fusion,
	policy matching.AggregationPolicy,
	verifierCfg matching.VerifierCfg,
	topK int,
	logger logger.Logger,
) *MatchingUseCase {
	return &MatchingUseCase{
		assetRepo:   assetRepo,
		matchRepo:   matchRepo,
		outboxRepo:  outboxRepo,
		blobRepo:    blobRepo,
		cacheRepo:   cacheRepo,
		retriever:   retriever,
		dbPool:      dbPool,
		fusion:      fusion,
		policy:      policy,
		verifierCfg: verifierCfg,
		topK:        topK,
		logger:      logger,
	}
}

// ProcessMatchRequest обрабатывает один запрос продукт-видео и возвращает вердикт.
// Повторная обработка того же запроса идемпотентна: существующий вердикт
// возвращается без пересчёта.
func (m *MatchingUseCase) ProcessMatchRequest(ctx context.Context, req *MatchReq) (*MatchVerdict, error) {
	const op = "MatchingUseCase.ProcessMatchRequest"

	if err := m.validateRequest(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Идемпотентность: сперва кэш, затем хранилище.
	if verdict, err := m.cacheRepo.GetVerdict(ctx, req.JobID, req.ProductID, req.VideoID); err == nil && verdict != nil {
		metrics.MatchOutcomes.WithLabelValues("duplicate").Inc()
		return verdict, nil
	}
	if match, err := m.matchRepo.GetByKey(ctx, req.JobID, req.ProductID, req.VideoID); err == nil && match != nil {
		metrics.MatchOutcomes.WithLabelValues("duplicate").Inc()
		return NewAcceptedVerdict(match), nil
	}

	m.logger.Infof("job %s: stage %s, product %d, video %d", req.JobID, stageRetrieving, req.ProductID, req.VideoID)

	images, err := m.loadReadyAssets(ctx, req.ImageIDs, domain.KindProductImage, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	frames, err := m.resolveFrames(ctx, req, images)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(frames) == 0 {
		return m.finishRejected(ctx, req, 0)
	}

	m.logger.Infof("job %s: stage %s, %d images x %d frames", req.JobID, stageVerifying, len(images), len(frames))

	scores, err := m.verifyPairs(ctx, req, images, frames)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	m.logger.Infof("job %s: stage %s, %d pairs scored", req.JobID, stageAggregating, len(scores))

	best, accepted := m.policy.Aggregate(scores)
	if !accepted {
		var score float64
		if best != nil {
			score = best.Fused
		}
		return m.finishRejected(ctx, req, score)
	}

	verdict, err := m.commitMatch(ctx, req, best, scores)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	m.logger.Infof("job %s: stage %s, accepted pair (%s, %s) score %.4f",
		req.JobID, stageDone, best.ImageID, best.FrameID, best.Fused)
	metrics.MatchOutcomes.WithLabelValues("accepted").Inc()
	m.cacheVerdict(ctx, verdict)

	return verdict, nil
}

// validateRequest проверяет обязательные поля запроса.
func (m *MatchingUseCase) validateRequest(req *MatchReq) error {
	if req == nil || strings.TrimSpace(req.JobID) == "" {
		return e.ErrMalformedRequest
	}
	if req.ProductID <= 0 {
		return e.ErrProductRequired
	}
	if req.VideoID <= 0 {
		return e.ErrVideoRequired
	}
	if len(req.ImageIDs) == 0 {
		return e.ErrNoAssets
	}
	return nil
}

// loadReadyAssets загружает ассеты и требует готовности признаков каждого.
// Неготовый ассет — временная ошибка: запрос вернётся в очередь.
func (m *MatchingUseCase) loadReadyAssets(ctx context.Context, ids []string, kind domain.AssetKind, ownerID int64) ([]domain.VisualAsset, error) {
	// Отметка в кэше ставится только после успешной регистрации признаков,
	// поэтому её наличие закрывает проверку готовности. Отсутствие отметки
	// (истёкший TTL, сбой кэша) ничего не значит — решает строка ассета.
	ready, err := m.cacheRepo.FeaturesReady(ctx, ids)
	if err != nil {
		m.logger.Debugf("readiness marks unavailable, falling back to storage: %v", err)
		ready = nil
	}

	assets, err := m.assetRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.VisualAsset, len(assets))
	for _, asset := range assets {
		byID[asset.ID] = asset
	}

	result := make([]domain.VisualAsset, 0, len(ids))
	for _, id := range ids {
		asset, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("asset %s: %w", id, e.ErrFeaturesNotReady)
		}
		if !ready[id] && !asset.FeaturesReady() {
			return nil, fmt.Errorf("asset %s: %w", id, e.ErrFeaturesNotReady)
		}
		if asset.Kind != kind || asset.OwnerID != ownerID {
			return nil, fmt.Errorf("asset %s: %w", id, e.ErrMalformedRequest)
		}
		result = append(result, asset)
	}

	return result, nil
}

// resolveFrames возвращает кадры для верификации: явно заданные запросом либо
// найденные ANN-поиском по эмбеддингам изображений продукта.
func (m *MatchingUseCase) resolveFrames(ctx context.Context, req *MatchReq, images []domain.VisualAsset) ([]domain.VisualAsset, error) {
	if len(req.FrameIDs) > 0 {
		return m.loadReadyAssets(ctx, req.FrameIDs, domain.KindVideoFrame, req.VideoID)
	}

	seen := make(map[string]struct{})
	candidateIDs := make([]string, 0, m.topK*len(images))
	for _, image := range images {
		candidates, err := m.retriever.RetrieveMerged(ctx, image.ColorVector, image.GrayVector, m.topK)
		if err != nil {
			return nil, err
		}
		for _, candidate := range candidates {
			if _, ok := seen[candidate.AssetID]; ok {
				continue
			}
			seen[candidate.AssetID] = struct{}{}
			candidateIDs = append(candidateIDs, candidate.AssetID)
		}
	}
	if len(candidateIDs) == 0 {
		return nil, nil
	}

	assets, err := m.assetRepo.GetByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	// Индекс общий для всех видов и владельцев: оставляем только кадры нужного видео.
	frames := make([]domain.VisualAsset, 0, len(assets))
	for _, asset := range assets {
		if asset.Kind == domain.KindVideoFrame && asset.OwnerID == req.VideoID && asset.FeaturesReady() {
			frames = append(frames, asset)
		}
	}

	return frames, nil
}

// verifyPairs прогоняет все пары изображение-кадр через геометрическую
// верификацию и слияние оценок. Сбой поиска преобразования в одной паре
// не прерывает запрос: такая пара получает нулевой геометрический вклад.
func (m *MatchingUseCase) verifyPairs(ctx context.Context, req *MatchReq, images, frames []domain.VisualAsset) ([]domain.PairScore, error) {
	verifier := matching.NewVerifier(m.verifierCfg, requestSeed(req))

	sets := make(map[string]*domain.KeypointSet, len(images)+len(frames))
	for _, assets := range [][]domain.VisualAsset{images, frames} {
		for _, asset := range assets {
			if _, ok := sets[asset.ID]; ok {
				continue
			}
			set, err := m.loadKeypoints(ctx, &asset)
			if err != nil {
				return nil, err
			}
			sets[asset.ID] = set
		}
	}

	scores := make([]domain.PairScore, 0, len(images)*len(frames))
	for _, image := range images {
		for _, frame := range frames {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			start := time.Now()
			res := verifier.Verify(sets[image.ID], sets[frame.ID])

			embeddingSim := matching.EmbeddingSimilarity(&image, &frame)
			edgeSim := matching.EdgeSimilarity(sets[image.ID].Edges, sets[frame.ID].Edges, res.Transform)
			fused, _ := m.fusion.Fuse(embeddingSim, res.InlierRatio, edgeSim)

			metrics.PairLatency.Observe(time.Since(start).Seconds())

			if !res.TransformFound {
				m.logger.Debugf("job %s: pair (%s, %s) without geometric score: %v, %d tentative matches",
					req.JobID, image.ID, frame.ID, res.Reason, res.TentativeCount)
			}

			scores = append(scores, domain.PairScore{
				ImageID:      image.ID,
				FrameID:      frame.ID,
				TimestampMs:  frame.TimestampMs,
				EmbeddingSim: embeddingSim,
				GeometricSim: res.InlierRatio,
				EdgeSim:      edgeSim,
				Fused:        fused,
				InlierCount:  res.InlierCount,
				Transform:    res.Transform,
			})
		}
	}

	return scores, nil
}

// loadKeypoints читает и декодирует блоб ключевых точек ассета.
// Повреждённый блоб фатален для запроса: пересчитывать его бессмысленно.
func (m *MatchingUseCase) loadKeypoints(ctx context.Context, asset *domain.VisualAsset) (*domain.KeypointSet, error) {
	blob, err := m.blobRepo.Get(ctx, asset.KeypointKey)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", asset.ID, err)
	}

	set, err := domain.DecodeKeypointSet(blob)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", asset.ID, err)
	}

	return set, nil
}

// commitMatch фиксирует принятый вердикт: артефакт доказательств в S3,
// затем Match и события outbox в одной транзакции.
func (m *MatchingUseCase) commitMatch(ctx context.Context, req *MatchReq, best *domain.PairScore, scores []domain.PairScore) (*MatchVerdict, error) {
	const op = "MatchingUseCase.commitMatch"

	match := domain.NewMatch(uuid.NewString(), req.JobID, req.ProductID, req.VideoID, best)

	evidenceKey, err := m.uploadEvidence(ctx, match, best, scores)
	if err != nil {
		// Доказательства вторичны: вердикт фиксируется и без них.
		m.logger.Warnf("job %s: evidence upload failed: %v", req.JobID, e.Wrap(op, err))
		evidenceKey = ""
	}
	match.EvidenceKey = evidenceKey

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}
			if evidenceKey != "" {
				m.logger.Warnf("job %s: cleaning up orphaned evidence %s after transaction failure", req.JobID, evidenceKey)
				if delErr := m.blobRepo.Delete(context.WithoutCancel(ctx), evidenceKey); delErr != nil {
					m.logger.Warnf("job %s: evidence cleanup failed: %v", req.JobID, delErr)
				}
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	saved, alreadyExists, err := m.matchRepo.Create(ctx, match)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if alreadyExists {
		// Конкурентная переобработка: чужой вердикт уже зафиксирован.
		if commitErr := tx.Commit(ctx); commitErr != nil {
			m.logger.Warnf("job %s: commit after duplicate detection failed: %v", req.JobID, commitErr)
		}
		err = fmt.Errorf("duplicate") // для defer: подчистить свой артефакт
		verdict := NewAcceptedVerdict(saved)
		metrics.MatchOutcomes.WithLabelValues("duplicate").Inc()
		return verdict, nil
	}

	if err = m.createOutboxEvents(ctx, saved); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	if evidenceKey == "" {
		m.repairEvidence(saved, best, scores)
	}

	return NewAcceptedVerdict(saved), nil
}

// repairEvidence в фоне догружает артефакт доказательств, не сохранившийся
// при фиксации вердикта, и дописывает его ключ к вердикту.
func (m *MatchingUseCase) repairEvidence(match *domain.Match, best *domain.PairScore, scores []domain.PairScore) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		key, err := m.uploadEvidence(bgCtx, match, best, scores)
		if err != nil {
			m.logger.Warnf("job %s: evidence repair upload failed: %v", match.JobID, err)
			return
		}
		if err := m.matchRepo.SetEvidenceKey(bgCtx, match.ID, key); err != nil {
			m.logger.Warnf("job %s: evidence repair update failed: %v", match.JobID, err)
		}
	}()
}

// createOutboxEvents кладёт события для Kafka в outbox в рамках транзакции вердикта.
func (m *MatchingUseCase) createOutboxEvents(ctx context.Context, match *domain.Match) error {
	payload, err := json.Marshal(NewAcceptedVerdict(match))
	if err != nil {
		return err
	}
	if _, err := m.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), EventMatchResult, match.ID, payload)); err != nil {
		return err
	}

	if match.EvidenceKey == "" {
		return nil
	}

	enriched, err := json.Marshal(struct {
		MatchID     string `json:"match_id"`
		EvidenceKey string `json:"evidence_key"`
	}{MatchID: match.ID, EvidenceKey: match.EvidenceKey})
	if err != nil {
		return err
	}
	if _, err := m.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), EventMatchResultEnriched, match.ID, enriched)); err != nil {
		return err
	}

	return nil
}

// evidenceArtifact — содержимое артефакта доказательств вердикта.
type evidenceArtifact struct {
	MatchID   string             `json:"match_id"`
	JobID     string             `json:"job_id"`
	ProductID int64              `json:"product_id"`
	VideoID   int64              `json:"video_id"`
	Best      evidencePair       `json:"best"`
	Pairs     []evidencePair     `json:"pairs"`
	Transform *domain.Homography `json:"transform,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

type evidencePair struct {
	ImageID      string  `json:"image_id"`
	FrameID      string  `json:"frame_id"`
	TimestampMs  int64   `json:"timestamp_ms"`
	EmbeddingSim float64 `json:"embedding_sim"`
	GeometricSim float64 `json:"geometric_sim"`
	EdgeSim      float64 `json:"edge_sim"`
	Fused        float64 `json:"fused"`
	InlierCount  int     `json:"inlier_count"`
}

// uploadEvidence сохраняет JSON-артефакт с оценками всех пар в объектное хранилище.
func (m *MatchingUseCase) uploadEvidence(ctx context.Context, match *domain.Match, best *domain.PairScore, scores []domain.PairScore) (string, error) {
	pairs := make([]evidencePair, 0, len(scores))
	for _, score := range scores {
		pairs = append(pairs, newEvidencePair(&score))
	}

	artifact := evidenceArtifact{
		MatchID:   match.ID,
		JobID:     match.JobID,
		ProductID: match.ProductID,
		VideoID:   match.VideoID,
		Best:      newEvidencePair(best),
		Pairs:     pairs,
		Transform: best.Transform,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(artifact)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("evidence/%s/%d-%d/%s.json", match.JobID, match.ProductID, match.VideoID, match.ID)
	return m.blobRepo.Put(ctx, key, data)
}

func newEvidencePair(score *domain.PairScore) evidencePair {
	return evidencePair{
		ImageID:      score.ImageID,
		FrameID:      score.FrameID,
		TimestampMs:  score.TimestampMs,
		EmbeddingSim: score.EmbeddingSim,
		GeometricSim: score.GeometricSim,
		EdgeSim:      score.EdgeSim,
		Fused:        score.Fused,
		InlierCount:  score.InlierCount,
	}
}

// finishRejected журналирует отклонение, считает метрику и кэширует вердикт.
// Отклонения не сохраняются в БД: журнал — их единственный след.
func (m *MatchingUseCase) finishRejected(ctx context.Context, req *MatchReq, score float64) (*MatchVerdict, error) {
	m.logger.Infof("job %s: stage %s, rejected, product %d, video %d, best score %.4f, threshold %.4f",
		req.JobID, stageDone, req.ProductID, req.VideoID, score, m.fusion.Threshold())
	metrics.MatchOutcomes.WithLabelValues("rejected").Inc()

	verdict := NewRejectedVerdict(req.JobID, req.ProductID, req.VideoID, score)
	m.cacheVerdict(ctx, verdict)
	return verdict, nil
}

// cacheVerdict кладёт вердикт в кэш в фоне: сбой кэша не влияет на результат.
func (m *MatchingUseCase) cacheVerdict(_ context.Context, verdict *MatchVerdict) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := m.cacheRepo.SetVerdict(bgCtx, verdict); err != nil {
			m.logger.Warnf("failed to cache verdict for job %s in background: %v", verdict.JobID, err)
		}
	}()
}

// requestSeed — детерминированное зерно RANSAC для запроса: повторная
// обработка того же запроса даёт те же выборки.
func requestSeed(req *MatchReq) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s/%d/%d", req.JobID, req.ProductID, req.VideoID)
	return int64(h.Sum64())
}

package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/tr"
)

// MatchRepo реализует репозиторий вердиктов поверх PostgreSQL.
type MatchRepo struct {
	pool *pgxpool.Pool
	conv converter.MatchConverter
}

func NewMatchRepo(pool *pgxpool.Pool, conv converter.MatchConverter) *MatchRepo {
	return &MatchRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет вердикт. Уникальность тройки (job_id, product_id, video_id)
// гарантируется базой: при гонке двух воркеров второй получает уже сохранённый
// вердикт и alreadyExists=true.
func (m *MatchRepo) Create(ctx context.Context, match *domain.Match) (*domain.Match, bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	model := m.conv.ToModel(match)

	insert := `
		INSERT INTO matches (
			id, job_id, product_id, video_id,
			best_image_id, best_frame_id, best_timestamp_ms, score, evidence_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (job_id, product_id, video_id) DO NOTHING
		RETURNING id, job_id, product_id, video_id,
			best_image_id, best_frame_id, best_timestamp_ms, score, evidence_key, created_at;
	`

	err = tx.QueryRow(ctx, insert,
		model.ID, model.JobID, model.ProductID, model.VideoID,
		model.BestImageID, model.BestFrameID, model.BestTimestampMs,
		model.Score, model.EvidenceKey,
	).Scan(
		&model.ID, &model.JobID, &model.ProductID, &model.VideoID,
		&model.BestImageID, &model.BestFrameID, &model.BestTimestampMs,
		&model.Score, &model.EvidenceKey, &model.CreatedAt,
	)
	if err == nil {
		return m.conv.ToEntity(model), false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, e.Wrap(whereami.WhereAmI(), mapStorageError(err))
	}

	// Конфликт: читаем существующий вердикт той же тройки.
	existing, err := m.getByKeyTx(ctx, tx, match.JobID, match.ProductID, match.VideoID)
	if err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	return existing, true, nil
}

// GetByKey возвращает вердикт тройки (job, product, video) либо nil, если его нет.
func (m *MatchRepo) GetByKey(ctx context.Context, jobID string, productID, videoID int64) (*domain.Match, error) {
	match, err := m.getByKeyTx(ctx, m.pool, jobID, productID, videoID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapStorageError(err))
	}
	return match, nil
}

// SetEvidenceKey дописывает ключ артефакта доказательств к уже сохранённому вердикту.
func (m *MatchRepo) SetEvidenceKey(ctx context.Context, matchID string, evidenceKey string) error {
	query := `
		UPDATE matches
		SET evidence_key = $1
		WHERE id = $2
	`

	if _, err := m.pool.Exec(ctx, query, evidenceKey, matchID); err != nil {
		return e.Wrap(whereami.WhereAmI(), mapStorageError(err))
	}

	return nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (m *MatchRepo) getByKeyTx(ctx context.Context, q querier, jobID string, productID, videoID int64) (*domain.Match, error) {
	query := `
		SELECT id, job_id, product_id, video_id,
			best_image_id, best_frame_id, best_timestamp_ms, score, evidence_key, created_at
		FROM matches
		WHERE job_id = $1 AND product_id = $2 AND video_id = $3
	`

	var model converter.MatchModel
	err := q.QueryRow(ctx, query, jobID, productID, videoID).Scan(
		&model.ID, &model.JobID, &model.ProductID, &model.VideoID,
		&model.BestImageID, &model.BestFrameID, &model.BestTimestampMs,
		&model.Score, &model.EvidenceKey, &model.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return m.conv.ToEntity(&model), nil
}

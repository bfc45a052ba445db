package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/match-engine/pkg/e"
)

// AssetRepo реализует репозиторий визуальных ассетов поверх PostgreSQL.
type AssetRepo struct {
	pool *pgxpool.Pool
	conv converter.AssetConverter
}

func NewAssetRepo(pool *pgxpool.Pool, conv converter.AssetConverter) *AssetRepo {
	return &AssetRepo{
		pool: pool,
		conv: conv,
	}
}

// Upsert атомарно создаёт или перезаписывает ассет вместе с признаками.
// Частичных обновлений нет: повторная экстракция заменяет все признаки разом.
func (a *AssetRepo) Upsert(ctx context.Context, asset *domain.VisualAsset) (*domain.VisualAsset, error) {
	model := a.conv.ToModel(asset)

	query := `
		INSERT INTO visual_assets (
			id, kind, owner_id, timestamp_ms, color_vector, gray_vector, keypoint_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			color_vector = EXCLUDED.color_vector,
			gray_vector = EXCLUDED.gray_vector,
			keypoint_key = EXCLUDED.keypoint_key,
			updated_at = NOW()
		RETURNING id, kind, owner_id, timestamp_ms, color_vector, gray_vector, keypoint_key, created_at, updated_at;
	`

	err := a.pool.QueryRow(ctx, query,
		model.ID, model.Kind, model.OwnerID, model.TimestampMs,
		model.ColorVector, model.GrayVector, model.KeypointKey,
	).Scan(
		&model.ID, &model.Kind, &model.OwnerID, &model.TimestampMs,
		&model.ColorVector, &model.GrayVector, &model.KeypointKey,
		&model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapStorageError(err))
	}

	return a.conv.ToEntity(model), nil
}

// GetByIDs возвращает ассеты по идентификаторам; отсутствующие просто не попадают в ответ.
func (a *AssetRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.VisualAsset, error) {
	query := `
		SELECT id, kind, owner_id, timestamp_ms, color_vector, gray_vector, keypoint_key, created_at, updated_at
		FROM visual_assets
		WHERE id = ANY($1)
	`

	rows, err := a.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapStorageError(err))
	}
	defer rows.Close()

	result := make([]domain.VisualAsset, 0, len(ids))
	for rows.Next() {
		var model converter.AssetModel
		if err := rows.Scan(
			&model.ID, &model.Kind, &model.OwnerID, &model.TimestampMs,
			&model.ColorVector, &model.GrayVector, &model.KeypointKey,
			&model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), mapStorageError(err))
		}

		result = append(result, *a.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapStorageError(err))
	}

	return result, nil
}

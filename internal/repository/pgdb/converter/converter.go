//go:generate goverter gen github.com/DRSN-tech/match-engine/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/usecase"
)

// AssetConverter преобразует сущности VisualAsset между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertAssetKind
type AssetConverter interface {
	ToModel(entity *domain.VisualAsset) *AssetModel
	ToEntity(model *AssetModel) *domain.VisualAsset
	ToArrEntity(models []*AssetModel) []*domain.VisualAsset
}

// MatchConverter преобразует сущности Match между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type MatchConverter interface {
	ToModel(entity *domain.Match) *MatchModel
	ToEntity(model *MatchModel) *domain.Match
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutBoxStatus
// goverter:extend ConvertOutboxEventType
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertAssetKind(k domain.AssetKind) domain.AssetKind {
	return k
}

func ConvertOutBoxStatus(s usecase.OutboxStatus) usecase.OutboxStatus {
	return s
}

func ConvertOutboxEventType(t usecase.OutboxEventType) usecase.OutboxEventType {
	return t
}

//go:generate goverter gen github.com/DRSN-tech/match-engine/internal/repository/redis/converter

package converter

import (
	"github.com/DRSN-tech/match-engine/internal/usecase"
)

// goverter:converter
type VerdictConverter interface {
	ToRedisModel(entity *usecase.MatchVerdict) *VerdictRedisModel
	ToUseCase(model *VerdictRedisModel) *usecase.MatchVerdict
}

package extractor

import "github.com/DRSN-tech/match-engine/internal/usecase"

// ResourceStats отдаёт снимок состояния governor'а в формате usecase-слоя.
func (g *Governor) ResourceStats() usecase.ResourceStatsRes {
	stats := g.Stats()
	return usecase.ResourceStatsRes{
		MemUsedBytes:  stats.MemUsedBytes,
		MemTotalBytes: stats.MemTotalBytes,
		InFlight:      stats.InFlight,
		OOMErrors:     stats.OOMErrors,
		RetryAttempts: stats.RetryAttempts,
		Reclaims:      stats.Reclaims,
	}
}

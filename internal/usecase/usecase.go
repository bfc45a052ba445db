package usecase

import "context"

type MatchingUC interface {
	ProcessMatchRequest(ctx context.Context, req *MatchReq) (*MatchVerdict, error)
}

type FeatureUC interface {
	RegisterFeatures(ctx context.Context, req *FeaturesReadyReq) error
}

type ExtractionUC interface {
	IngestAssets(ctx context.Context, req *IngestAssetsReq) ([]string, error)
}

type SearchUC interface {
	Search(ctx context.Context, req *SearchReq) (*SearchRes, error)
	ResourceStats(ctx context.Context) (*ResourceStatsRes, error)
}

package grpc

import (
	"context"

	"github.com/DRSN-tech/match-engine/internal/proto"
	"github.com/DRSN-tech/match-engine/internal/usecase"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

type MatcherService struct {
	proto.UnimplementedMatcherServiceServer
	searchUC usecase.SearchUC
	logger   logger.Logger
}

func NewMatcherService(searchUC usecase.SearchUC, logger logger.Logger) *MatcherService {
	return &MatcherService{searchUC: searchUC, logger: logger}
}

func (g *MatcherService) Search(ctx context.Context, req *proto.SearchRequest) (*proto.SearchResponse, error) {
	const op = "grpc.Search"

	res, err := g.searchUC.Search(ctx, usecase.NewSearchReq(req.ColorVector, req.GrayVector, int(req.TopK)))
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return &proto.SearchResponse{
		Candidates: toArrGRPCCandidate(res.Candidates),
	}, nil
}

func (g *MatcherService) GetResourceStats(ctx context.Context, _ *proto.ResourceStatsRequest) (*proto.ResourceStatsResponse, error) {
	const op = "grpc.GetResourceStats"

	res, err := g.searchUC.ResourceStats(ctx)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return &proto.ResourceStatsResponse{
		MemoryUsedBytes:  res.MemUsedBytes,
		MemoryTotalBytes: res.MemTotalBytes,
		InFlight:         res.InFlight,
		OomErrors:        res.OOMErrors,
		RetryAttempts:    res.RetryAttempts,
		CacheReclaims:    res.Reclaims,
	}, nil
}

func toGRPCCandidate(c *usecase.CandidateRes) *proto.Candidate {
	return &proto.Candidate{
		AssetId:    c.AssetID,
		Similarity: c.Similarity,
	}
}

func toArrGRPCCandidate(cs []usecase.CandidateRes) []*proto.Candidate {
	res := make([]*proto.Candidate, len(cs))
	for i, c := range cs {
		res[i] = toGRPCCandidate(&c)
	}

	return res
}

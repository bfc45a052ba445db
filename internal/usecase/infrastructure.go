package usecase

import "context"

type ExtractorInfra interface {
	ExtractBatch(ctx context.Context, req *ExtractBatchReq) ([]ExtractAssetRes, error)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// Retriever — поиск кандидатов по двум пространствам эмбеддингов со слиянием.
type Retriever interface {
	RetrieveMerged(ctx context.Context, colorQuery, grayQuery []float32, topK int) ([]CandidateRes, error)
}

// ResourceStatsProvider отдаёт живое состояние governor'а экстракции.
type ResourceStatsProvider interface {
	ResourceStats() ResourceStatsRes
}

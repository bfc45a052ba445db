package extractor

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/proto"
	"github.com/DRSN-tech/match-engine/internal/usecase"
	"github.com/DRSN-tech/match-engine/pkg/e"
)

// GRPCModelClient — клиент сервиса извлечения признаков поверх gRPC.
// Помимо извлечения реализует MemorySampler и Reclaimer: состояние памяти
// и очистка кэша живут на той же стороне, что и модель.
type GRPCModelClient struct {
	client proto.FeatureExtractorServiceClient
}

func NewGRPCModelClient(client proto.FeatureExtractorServiceClient) *GRPCModelClient {
	return &GRPCModelClient{client: client}
}

// ExtractFeatures извлекает эмбеддинги и блоб ключевых точек одного ассета.
// ResourceExhausted со стороны модели транслируется в e.ErrResourceExhausted,
// чтобы worker отличал ошибку аллокации от фатальных.
func (c *GRPCModelClient) ExtractFeatures(ctx context.Context, assetID string, kind domain.AssetKind, data []byte) (*usecase.ExtractAssetRes, error) {
	const op = "GRPCModelClient.ExtractFeatures"

	res, err := c.client.ExtractFeatures(ctx, &proto.ExtractRequest{
		AssetId:   assetID,
		Kind:      string(kind),
		ImageData: data,
	})
	if err != nil {
		if status.Code(err) == codes.ResourceExhausted {
			return nil, e.Wrap(op, e.ErrResourceExhausted)
		}
		return nil, e.Wrap(op, err)
	}

	return usecase.NewExtractAssetRes(assetID, res.ColorVector, res.GrayVector, res.KeypointBlob, res.ModelVersion), nil
}

// DeviceMemory возвращает текущее использование памяти ускорителя.
func (c *GRPCModelClient) DeviceMemory(ctx context.Context) (used, total uint64, err error) {
	const op = "GRPCModelClient.DeviceMemory"

	res, err := c.client.GetDeviceStatus(ctx, &proto.DeviceStatusRequest{})
	if err != nil {
		return 0, 0, e.Wrap(op, err)
	}

	return res.MemoryUsedBytes, res.MemoryTotalBytes, nil
}

// ReclaimCache принудительно освобождает кэш аллокатора ускорителя.
func (c *GRPCModelClient) ReclaimCache(ctx context.Context, synchronize bool) error {
	const op = "GRPCModelClient.ReclaimCache"

	if _, err := c.client.ReclaimCache(ctx, &proto.ReclaimCacheRequest{Synchronize: synchronize}); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

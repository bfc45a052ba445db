package extractor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/usecase"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

type fakeModelClient struct {
	mu        sync.Mutex
	calls     map[string]int
	failTimes map[string]int // сколько первых вызовов ассета падает с OOM
	hardFail  map[string]error

	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

func newFakeModelClient() *fakeModelClient {
	return &fakeModelClient{
		calls:     make(map[string]int),
		failTimes: make(map[string]int),
		hardFail:  make(map[string]error),
	}
}

func (c *fakeModelClient) ExtractFeatures(_ context.Context, assetID string, _ domain.AssetKind, _ []byte) (*usecase.ExtractAssetRes, error) {
	cur := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		max := c.maxInFlight.Load()
		if cur <= max || c.maxInFlight.CompareAndSwap(max, cur) {
			break
		}
	}

	c.mu.Lock()
	c.calls[assetID]++
	n := c.calls[assetID]
	oomLeft := c.failTimes[assetID]
	hard := c.hardFail[assetID]
	c.mu.Unlock()

	if hard != nil {
		return nil, hard
	}
	if n <= oomLeft {
		return nil, e.ErrResourceExhausted
	}

	return usecase.NewExtractAssetRes(assetID, []float32{1, 0}, []float32{0, 1}, []byte("kp-"+assetID), "v1"), nil
}

func (c *fakeModelClient) callCount(assetID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[assetID]
}

func testWorker(t *testing.T, client ModelClient, cfg GovernorCfg) (*Worker, *Governor) {
	t.Helper()

	sampler := &fakeSampler{}
	sampler.used.Store(10)
	sampler.total.Store(100)

	g := testGovernor(t, cfg, sampler, &fakeReclaimer{})
	return NewWorker(client, g, logger.NewDiscardLogger()), g
}

// shortSchedule ускоряет расписание повторов на время теста.
func shortSchedule(t *testing.T) {
	t.Helper()
	orig := oomRetrySchedule
	oomRetrySchedule = []time.Duration{time.Millisecond, time.Millisecond}
	t.Cleanup(func() { oomRetrySchedule = orig })
}

func TestWorkerExtractBatch(t *testing.T) {
	client := newFakeModelClient()
	w, _ := testWorker(t, client, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4})

	req := usecase.NewExtractBatchReq([]usecase.ExtractAsset{
		{AssetID: "img-1", Kind: domain.KindProductImage, Data: []byte{1}},
		{AssetID: "frm-1", Kind: domain.KindVideoFrame, Data: []byte{2}},
		{AssetID: "frm-2", Kind: domain.KindVideoFrame, Data: []byte{3}},
	})

	results, err := w.ExtractBatch(context.Background(), req)
	if err != nil {
		t.Fatalf("ExtractBatch() = %v, want nil", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	byID := make(map[string]usecase.ExtractAssetRes, len(results))
	for _, res := range results {
		byID[res.AssetID] = res
	}
	for _, id := range []string{"img-1", "frm-1", "frm-2"} {
		res, ok := byID[id]
		if !ok {
			t.Fatalf("no result for asset %s", id)
		}
		if string(res.KeypointBlob) != "kp-"+id {
			t.Errorf("asset %s keypoint blob = %q", id, res.KeypointBlob)
		}
		if res.ModelVersion != "v1" {
			t.Errorf("asset %s model version = %q, want v1", id, res.ModelVersion)
		}
	}
}

func TestWorkerEmptyBatch(t *testing.T) {
	w, _ := testWorker(t, newFakeModelClient(), GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4})

	results, err := w.ExtractBatch(context.Background(), usecase.NewExtractBatchReq(nil))
	if err != nil {
		t.Fatalf("ExtractBatch(empty) = %v, want nil", err)
	}
	if len(results) != 0 {
		t.Fatalf("len(results) = %d, want 0", len(results))
	}
}

func TestWorkerOOMRetrySucceeds(t *testing.T) {
	shortSchedule(t)

	client := newFakeModelClient()
	client.failTimes["img-1"] = 2 // два OOM, третий вызов успешен

	w, g := testWorker(t, client, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4})

	req := usecase.NewExtractBatchReq([]usecase.ExtractAsset{
		{AssetID: "img-1", Kind: domain.KindProductImage, Data: []byte{1}},
	})

	results, err := w.ExtractBatch(context.Background(), req)
	if err != nil {
		t.Fatalf("ExtractBatch() = %v, want success on third attempt", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if got := client.callCount("img-1"); got != 3 {
		t.Errorf("model calls = %d, want 3", got)
	}

	stats := g.Stats()
	if stats.OOMErrors != 2 {
		t.Errorf("OOMErrors = %d, want 2", stats.OOMErrors)
	}
	if stats.RetryAttempts != 2 {
		t.Errorf("RetryAttempts = %d, want 2", stats.RetryAttempts)
	}
	if stats.Reclaims < 2 {
		t.Errorf("Reclaims = %d, want at least 2 (one per OOM)", stats.Reclaims)
	}
}

func TestWorkerOOMExhaustsSchedule(t *testing.T) {
	shortSchedule(t)

	client := newFakeModelClient()
	client.failTimes["img-1"] = 100 // OOM навсегда

	w, _ := testWorker(t, client, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4})

	req := usecase.NewExtractBatchReq([]usecase.ExtractAsset{
		{AssetID: "img-1", Kind: domain.KindProductImage, Data: []byte{1}},
	})

	results, err := w.ExtractBatch(context.Background(), req)
	if err == nil {
		t.Fatal("ExtractBatch() = nil error, want hard failure after exhausted schedule")
	}
	if !errors.Is(err, e.ErrResourceExhausted) {
		t.Errorf("error = %v, want wrapped ErrResourceExhausted", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
	// Третий подряд сбой фатален: ровно три обращения к модели, не больше.
	if got := client.callCount("img-1"); got != 3 {
		t.Errorf("model calls = %d, want 3", got)
	}
}

func TestWorkerOOMThirdFailureIsHard(t *testing.T) {
	shortSchedule(t)

	client := newFakeModelClient()
	client.failTimes["img-1"] = 3 // три OOM подряд; четвёртого вызова быть не должно

	w, _ := testWorker(t, client, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4})

	req := usecase.NewExtractBatchReq([]usecase.ExtractAsset{
		{AssetID: "img-1", Kind: domain.KindProductImage, Data: []byte{1}},
	})

	results, err := w.ExtractBatch(context.Background(), req)
	if !errors.Is(err, e.ErrResourceExhausted) {
		t.Fatalf("ExtractBatch() = %v, want hard failure after third OOM", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
	if got := client.callCount("img-1"); got != 3 {
		t.Errorf("model calls = %d, want 3 (no fourth attempt)", got)
	}
}

func TestWorkerNonOOMErrorIsNotRetried(t *testing.T) {
	client := newFakeModelClient()
	client.hardFail["img-1"] = errors.New("decode failed")

	w, _ := testWorker(t, client, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4})

	req := usecase.NewExtractBatchReq([]usecase.ExtractAsset{
		{AssetID: "img-1", Kind: domain.KindProductImage, Data: []byte{1}},
	})

	_, err := w.ExtractBatch(context.Background(), req)
	if err == nil {
		t.Fatal("ExtractBatch() = nil error, want failure")
	}
	if got := client.callCount("img-1"); got != 1 {
		t.Errorf("model calls = %d, want 1 (no retries for fatal errors)", got)
	}
}

func TestWorkerPartialFailureKeepsSuccesses(t *testing.T) {
	client := newFakeModelClient()
	client.hardFail["frm-1"] = errors.New("decode failed")

	w, _ := testWorker(t, client, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 4})

	req := usecase.NewExtractBatchReq([]usecase.ExtractAsset{
		{AssetID: "img-1", Kind: domain.KindProductImage, Data: []byte{1}},
		{AssetID: "frm-1", Kind: domain.KindVideoFrame, Data: []byte{2}},
	})

	results, err := w.ExtractBatch(context.Background(), req)
	if err == nil {
		t.Fatal("ExtractBatch() = nil error, want aggregated failure")
	}
	if !strings.Contains(err.Error(), "frm-1") {
		t.Errorf("error %q does not name the failed asset", err)
	}
	if len(results) != 1 || results[0].AssetID != "img-1" {
		t.Fatalf("results = %+v, want the surviving img-1", results)
	}
}

func TestWorkerBatchDoesNotBypassAdmission(t *testing.T) {
	client := newFakeModelClient()
	w, _ := testWorker(t, client, GovernorCfg{MemoryThreshold: 0.85, MinConcurrent: 1, MaxConcurrent: 1})

	assets := make([]usecase.ExtractAsset, 0, 5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		assets = append(assets, usecase.ExtractAsset{AssetID: id, Kind: domain.KindVideoFrame, Data: []byte{1}})
	}

	if _, err := w.ExtractBatch(context.Background(), usecase.NewExtractBatchReq(assets)); err != nil {
		t.Fatalf("ExtractBatch() = %v", err)
	}
	if got := client.maxInFlight.Load(); got != 1 {
		t.Errorf("max concurrent model calls = %d, want 1 (one permit per task)", got)
	}
}

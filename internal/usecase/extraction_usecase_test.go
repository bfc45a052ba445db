package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

type fakeExtractor struct {
	failIDs map[string]bool
}

func (f *fakeExtractor) ExtractBatch(_ context.Context, req *ExtractBatchReq) ([]ExtractAssetRes, error) {
	var results []ExtractAssetRes
	var failures []error
	for _, a := range req.Assets {
		if f.failIDs[a.AssetID] {
			failures = append(failures, fmt.Errorf("asset %s: %w", a.AssetID, e.ErrResourceExhausted))
			continue
		}
		results = append(results, ExtractAssetRes{
			AssetID:      a.AssetID,
			ColorVector:  []float32{1, 0},
			GrayVector:   []float32{0, 1},
			KeypointBlob: []byte("kp-" + a.AssetID),
			ModelVersion: "m1",
		})
	}
	if len(failures) > 0 {
		return results, errors.Join(failures...)
	}
	return results, nil
}

type fakeFeatureUC struct {
	registered map[string]*FeaturesReadyReq
	failIDs    map[string]bool
}

func newFakeFeatureUC() *fakeFeatureUC {
	return &fakeFeatureUC{registered: make(map[string]*FeaturesReadyReq)}
}

func (f *fakeFeatureUC) RegisterFeatures(_ context.Context, req *FeaturesReadyReq) error {
	if f.failIDs[req.AssetID] {
		return e.ErrStorageUnavailable
	}
	f.registered[req.AssetID] = req
	return nil
}

func ingestReq(ids ...string) *IngestAssetsReq {
	assets := make([]IngestAsset, 0, len(ids))
	for _, id := range ids {
		assets = append(assets, IngestAsset{
			AssetID:     id,
			Kind:        domain.KindVideoFrame,
			OwnerID:     42,
			TimestampMs: 1500,
			Data:        []byte("raw-" + id),
		})
	}
	return &IngestAssetsReq{Assets: assets}
}

func TestIngestAssets(t *testing.T) {
	extractorInfra := &fakeExtractor{}
	blobs := newFakeBlobRepo()
	features := newFakeFeatureUC()
	uc := NewExtractionUC(extractorInfra, blobs, features, logger.NewDiscardLogger())

	registered, err := uc.IngestAssets(context.Background(), ingestReq("frm-1", "frm-2"))
	if err != nil {
		t.Fatalf("IngestAssets: %v", err)
	}
	if len(registered) != 2 {
		t.Fatalf("registered %d assets, want 2", len(registered))
	}

	req, ok := features.registered["frm-1"]
	if !ok {
		t.Fatal("frm-1 was not registered")
	}
	if req.OwnerID != 42 || req.TimestampMs != 1500 || req.Kind != domain.KindVideoFrame {
		t.Errorf("metadata not carried over: %+v", req)
	}
	if req.ModelVersion != "m1" {
		t.Errorf("ModelVersion = %q, want m1", req.ModelVersion)
	}

	blob, err := blobs.Get(context.Background(), req.KeypointKey)
	if err != nil {
		t.Fatalf("keypoint blob not stored under %q: %v", req.KeypointKey, err)
	}
	if string(blob) != "kp-frm-1" {
		t.Errorf("stored blob = %q", blob)
	}
}

func TestIngestAssets_PartialExtractionFailure(t *testing.T) {
	extractorInfra := &fakeExtractor{failIDs: map[string]bool{"frm-2": true}}
	features := newFakeFeatureUC()
	uc := NewExtractionUC(extractorInfra, newFakeBlobRepo(), features, logger.NewDiscardLogger())

	registered, err := uc.IngestAssets(context.Background(), ingestReq("frm-1", "frm-2"))
	if err == nil {
		t.Fatal("expected error for failed asset")
	}
	if !errors.Is(err, e.ErrResourceExhausted) {
		t.Errorf("error does not carry cause: %v", err)
	}
	if len(registered) != 1 || registered[0] != "frm-1" {
		t.Errorf("registered = %v, want [frm-1]", registered)
	}
}

func TestIngestAssets_RegistrationFailureIsIsolated(t *testing.T) {
	features := newFakeFeatureUC()
	features.failIDs = map[string]bool{"frm-1": true}
	uc := NewExtractionUC(&fakeExtractor{}, newFakeBlobRepo(), features, logger.NewDiscardLogger())

	registered, err := uc.IngestAssets(context.Background(), ingestReq("frm-1", "frm-2"))
	if err != nil {
		t.Fatalf("IngestAssets: %v", err)
	}
	if len(registered) != 1 || registered[0] != "frm-2" {
		t.Errorf("registered = %v, want [frm-2]", registered)
	}
}

func TestIngestAssets_Validation(t *testing.T) {
	uc := NewExtractionUC(&fakeExtractor{}, newFakeBlobRepo(), newFakeFeatureUC(), logger.NewDiscardLogger())

	cases := []struct {
		name string
		req  *IngestAssetsReq
		want error
	}{
		{"nil request", nil, e.ErrNoAssets},
		{"empty batch", &IngestAssetsReq{}, e.ErrNoAssets},
		{"missing id", &IngestAssetsReq{Assets: []IngestAsset{{Kind: domain.KindVideoFrame, Data: []byte("x")}}}, e.ErrMalformedRequest},
		{"missing data", &IngestAssetsReq{Assets: []IngestAsset{{AssetID: "a", Kind: domain.KindVideoFrame}}}, e.ErrMalformedRequest},
		{"bad kind", &IngestAssetsReq{Assets: []IngestAsset{{AssetID: "a", Kind: "thumbnail", Data: []byte("x")}}}, e.ErrUnsupportedKind},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.IngestAssets(context.Background(), tc.req); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

package matching

import (
	"math/rand"
	"testing"

	"github.com/DRSN-tech/match-engine/internal/domain"
)

func TestBestPairPolicy_EmptyInput(t *testing.T) {
	p := NewBestPairPolicy(0.80)

	best, accepted := p.Aggregate(nil)
	if best != nil || accepted {
		t.Fatalf("empty input must yield (nil, false), got (%v, %v)", best, accepted)
	}
}

func TestBestPairPolicy_SingleWinningPair(t *testing.T) {
	// Продукт с 2 изображениями, видео с 3 кадрами: только (img2, frame3)
	// превышает порог; агрегатор обязан вернуть ровно её.
	f := NewFusion(DefaultWeights(), DefaultAcceptThreshold)
	p := NewBestPairPolicy(DefaultAcceptThreshold)

	var scores []domain.PairScore
	for _, img := range []string{"img1", "img2"} {
		for _, frame := range []string{"frame1", "frame2", "frame3"} {
			ps := domain.PairScore{ImageID: img, FrameID: frame, EmbeddingSim: 0.3, GeometricSim: 0.2, EdgeSim: 0.1}
			if img == "img2" && frame == "frame3" {
				ps.EmbeddingSim, ps.GeometricSim, ps.EdgeSim = 0.9, 0.85, 0.5
			}
			ps.Fused, _ = f.Fuse(ps.EmbeddingSim, ps.GeometricSim, ps.EdgeSim)
			scores = append(scores, ps)
		}
	}

	best, accepted := p.Aggregate(scores)
	if !accepted {
		t.Fatalf("pair above threshold must be accepted")
	}
	if best.ImageID != "img2" || best.FrameID != "frame3" {
		t.Fatalf("best pair = (%s, %s), want (img2, frame3)", best.ImageID, best.FrameID)
	}
	if best.Fused < 0.8974 || best.Fused > 0.8976 {
		t.Fatalf("best fused = %v, want 0.8975", best.Fused)
	}
}

func TestBestPairPolicy_AcceptanceIffThreshold(t *testing.T) {
	p := NewBestPairPolicy(0.80)
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 500; trial++ {
		n := 1 + rng.Intn(12)
		scores := make([]domain.PairScore, n)
		maxFused := 0.0
		for i := range scores {
			scores[i].Fused = rng.Float64()
			if scores[i].Fused > maxFused {
				maxFused = scores[i].Fused
			}
		}

		best, accepted := p.Aggregate(scores)
		if best == nil {
			t.Fatalf("non-empty input must yield best pair")
		}
		if best.Fused != maxFused {
			t.Fatalf("best fused = %v, want max %v", best.Fused, maxFused)
		}
		if accepted != (maxFused >= 0.80) {
			t.Fatalf("accepted = %v for max fused %v", accepted, maxFused)
		}
	}
}

func TestCorroboratingFramesPolicy(t *testing.T) {
	p := NewCorroboratingFramesPolicy(0.80, 0.60, 2)

	t.Run("SingleFrameRejected", func(t *testing.T) {
		scores := []domain.PairScore{
			{ImageID: "img1", FrameID: "frame1", Fused: 0.95},
			{ImageID: "img1", FrameID: "frame2", Fused: 0.10},
		}
		if _, accepted := p.Aggregate(scores); accepted {
			t.Fatalf("single corroborating frame must not be accepted with minFrames=2")
		}
	})

	t.Run("TwoFramesAccepted", func(t *testing.T) {
		scores := []domain.PairScore{
			{ImageID: "img1", FrameID: "frame1", Fused: 0.95},
			{ImageID: "img1", FrameID: "frame2", Fused: 0.65},
		}
		best, accepted := p.Aggregate(scores)
		if !accepted {
			t.Fatalf("two corroborating frames must be accepted")
		}
		if best.FrameID != "frame1" {
			t.Fatalf("best frame = %s, want frame1", best.FrameID)
		}
	})

	t.Run("SameFrameDoesNotCorroborate", func(t *testing.T) {
		// Два изображения на одном кадре — это один кадр, а не два.
		scores := []domain.PairScore{
			{ImageID: "img1", FrameID: "frame1", Fused: 0.95},
			{ImageID: "img2", FrameID: "frame1", Fused: 0.90},
		}
		if _, accepted := p.Aggregate(scores); accepted {
			t.Fatalf("repeated frame must not satisfy minFrames=2")
		}
	})
}

package domain

import (
	"errors"
	"testing"

	"github.com/DRSN-tech/match-engine/pkg/e"
)

func TestKeypointSet_EncodeDecode(t *testing.T) {
	edges := NewEdgeMap(8, 4)
	edges.Set(0, 0)
	edges.Set(7, 3)

	set := &KeypointSet{
		Keypoints: []Keypoint{
			{X: 10.5, Y: 20.25, Descriptor: [DescriptorSize]byte{1, 2, 3}},
			{X: 0, Y: 99, Descriptor: [DescriptorSize]byte{255}},
		},
		Edges: edges,
	}

	blob, err := set.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := DecodeKeypointSet(blob)
	if err != nil {
		t.Fatalf("DecodeKeypointSet: %v", err)
	}

	if len(decoded.Keypoints) != 2 {
		t.Fatalf("keypoints = %d, want 2", len(decoded.Keypoints))
	}
	if decoded.Keypoints[0].X != 10.5 || decoded.Keypoints[0].Y != 20.25 {
		t.Fatalf("keypoint 0 = (%v, %v)", decoded.Keypoints[0].X, decoded.Keypoints[0].Y)
	}
	if decoded.Keypoints[1].Descriptor[0] != 255 {
		t.Fatalf("descriptor lost in roundtrip")
	}
	if !decoded.Edges.At(7, 3) || decoded.Edges.At(1, 1) {
		t.Fatalf("edge map lost in roundtrip")
	}
}

func TestDecodeKeypointSet_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
	}{
		{name: "empty", blob: nil},
		{name: "bad magic", blob: []byte("XXXX\x00\x00\x00\x00")},
		{name: "truncated header", blob: []byte("KPS1\x05")},
		{name: "count exceeds payload", blob: []byte("KPS1\xff\xff\xff\xff")},
		{
			// Размеры карты границ, переполняющие int при перемножении.
			name: "oversized edge map dims",
			blob: []byte("KPS1\x00\x00\x00\x00\xff\xff\xff\xff\xff\xff\xff\xff"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeKeypointSet(tc.blob); !errors.Is(err, e.ErrCorruptKeypointBlob) {
				t.Fatalf("err = %v, want ErrCorruptKeypointBlob", err)
			}
		})
	}
}

func TestKeypoint_HammingDistance(t *testing.T) {
	a := Keypoint{Descriptor: [DescriptorSize]byte{0b00000000}}
	b := Keypoint{Descriptor: [DescriptorSize]byte{0b00001111}}

	if d := a.HammingDistance(&b); d != 4 {
		t.Fatalf("distance = %d, want 4", d)
	}
	if d := a.HammingDistance(&a); d != 0 {
		t.Fatalf("self distance = %d, want 0", d)
	}
}

func TestHomography_Apply(t *testing.T) {
	shift := Homography{1, 0, 5, 0, 1, -3, 0, 0, 1}

	x, y, ok := shift.Apply(10, 10)
	if !ok || x != 15 || y != 7 {
		t.Fatalf("Apply = (%v, %v, %v), want (15, 7, true)", x, y, ok)
	}

	// Строка проекции обнуляет знаменатель — точка уходит в бесконечность.
	degenerate := Homography{1, 0, 0, 0, 1, 0, 0, 0, 0}
	if _, _, ok := degenerate.Apply(0, 0); ok {
		t.Fatalf("degenerate transform must report ok=false")
	}
}

package kafka

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/DRSN-tech/match-engine/pkg/e"
)

func TestParseTimestampMs(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"12", 12000, false},
		{"12.48", 12480, false},
		{"0.001", 1, false},
		// Дробная часть тоньше миллисекунды отбрасывается
		{"1.0005", 1000, false},
		{"not-a-number", 0, true},
	}

	for _, tc := range cases {
		got, err := parseTimestampMs(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseTimestampMs(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTimestampMs(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseTimestampMs(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFeaturesReadyMessageValidation(t *testing.T) {
	v := validator.New()

	valid := featuresReadyMessage{
		AssetID:      "frm-1",
		Kind:         "video-frame",
		OwnerID:      7,
		TimestampSec: "1.5",
		ColorVector:  []float32{1},
		GrayVector:   []float32{1},
		KeypointKey:  "keypoints/frm-1.kps",
		ModelVersion: "m1",
	}
	if err := v.Struct(&valid); err != nil {
		t.Fatalf("valid message rejected: %v", err)
	}

	badKind := valid
	badKind.Kind = "thumbnail"
	if err := v.Struct(&badKind); err == nil {
		t.Error("unknown kind passed validation")
	}

	noVectors := valid
	noVectors.ColorVector = nil
	if err := v.Struct(&noVectors); err == nil {
		t.Error("empty color vector passed validation")
	}
}

func TestMatchRequestMessageValidation(t *testing.T) {
	v := validator.New()

	valid := matchRequestMessage{
		RequestID: "req-1",
		JobID:     "job-1",
		ProductID: 1,
		VideoID:   2,
		ImageIDs:  []string{"img-1"},
	}
	if err := v.Struct(&valid); err != nil {
		t.Fatalf("valid message rejected: %v", err)
	}

	noImages := valid
	noImages.ImageIDs = nil
	if err := v.Struct(&noImages); err == nil {
		t.Error("message without images passed validation")
	}

	blankFrame := valid
	blankFrame.FrameIDs = []string{""}
	if err := v.Struct(&blankFrame); err == nil {
		t.Error("blank frame id passed validation")
	}
}

func TestIsTransient(t *testing.T) {
	// Системные сбои не двигают offset: сообщение перечитывается после
	// восстановления. Ошибки самого сообщения коммитятся и не повторяются.
	cases := []struct {
		err  error
		want bool
	}{
		{e.ErrFeaturesNotReady, true},
		{e.ErrIndexUnavailable, true},
		{e.ErrIndexCorrupted, true},
		{e.ErrStorageUnavailable, true},
		{fmt.Errorf("deferred: %w", e.ErrStorageUnavailable), true},
		{e.ErrCorruptKeypointBlob, false},
		{errors.New("invalid payload"), false},
		{nil, false},
	}

	for _, tc := range cases {
		if got := isTransient(tc.err); got != tc.want {
			t.Errorf("isTransient(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

package http

import (
	"errors"
	"testing"

	"github.com/DRSN-tech/match-engine/pkg/e"
)

func TestParseTimestampToMs(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{"", 0, nil},
		{"12", 12000, nil},
		{"12.48", 12480, nil},
		{"billion", 0, e.ErrInvalidTimestamp},
		{"-1", 0, e.ErrInvalidTimestamp},
		{"1.00001", 0, e.ErrInvalidTimestamp},
	}

	for _, tc := range cases {
		got, err := parseTimestampToMs(tc.in)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("parseTimestampToMs(%q): err = %v, want %v", tc.in, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTimestampToMs(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseTimestampToMs(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAssetIDFromFilename(t *testing.T) {
	cases := map[string]string{
		"frm-1.jpg":      "frm-1",
		"img.2.png":      "img.2",
		"no-extension":   "no-extension",
		".hidden":        ".hidden",
		"frm-1.frame.v2": "frm-1.frame",
	}

	for in, want := range cases {
		if got := assetIDFromFilename(in); got != want {
			t.Errorf("assetIDFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

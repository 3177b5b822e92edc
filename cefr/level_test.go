/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package cefr_test

import (
	"encoding/json"
	"errors"
	"testing"

	"chainguard.dev/cefrassess/cefr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    cefr.Level
		wantErr bool
	}{
		{input: "A1", want: cefr.A1},
		{input: "b2", want: cefr.B2},
		{input: " C1+ ", want: cefr.C1Plus},
		{input: "c2+", want: cefr.C2Plus},
		{input: "", wantErr: true},
		{input: "D1", wantErr: true},
		{input: "B2++", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := cefr.Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, cefr.ErrUnknownLevel) {
					t.Fatalf("Parse(%q) error: got = %v, wanted = %v", tt.input, err, cefr.ErrUnknownLevel)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q): got = %v, wanted = %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestScoreGridBijection(t *testing.T) {
	seen := make(map[float64]cefr.Level, len(cefr.All))
	for _, l := range cefr.All {
		s := l.Score()
		if prev, ok := seen[s]; ok {
			t.Fatalf("score %v shared by %v and %v", s, prev, l)
		}
		seen[s] = l
		if got := cefr.FromScore(s); got != l {
			t.Errorf("FromScore(%v): got = %v, wanted = %v", s, got, l)
		}
	}
	for i := 0; i < 12; i++ {
		v := float64(i) / 2
		if _, ok := seen[v]; !ok {
			t.Errorf("grid point %v has no label", v)
		}
	}
}

func TestFromStandardScore(t *testing.T) {
	tests := []struct {
		v    float64
		want cefr.Level
	}{
		{v: -3, want: cefr.A1},
		{v: 0, want: cefr.A1},
		{v: 0.49, want: cefr.A1},
		{v: 0.5, want: cefr.A2},
		{v: 2.5, want: cefr.B2},
		{v: 4.5, want: cefr.C2},
		{v: 5, want: cefr.C2},
		{v: 9, want: cefr.C2},
	}
	for _, tt := range tests {
		if got := cefr.FromStandardScore(tt.v); got != tt.want {
			t.Errorf("FromStandardScore(%v): got = %v, wanted = %v", tt.v, got, tt.want)
		}
	}
}

func TestFromStandardScoreIdempotent(t *testing.T) {
	for v := -1.0; v <= 6.0; v += 0.25 {
		once := cefr.FromStandardScore(v)
		twice := cefr.FromStandardScore(cefr.Round(cefr.Clamp(v, 0, 5)))
		if once != twice {
			t.Errorf("FromStandardScore(%v) = %v, after clamp/round = %v", v, once, twice)
		}
		if once.IsPlus() {
			t.Errorf("FromStandardScore(%v) = %v, wanted a standard level", v, once)
		}
	}
}

func TestStandardAndPromoted(t *testing.T) {
	tests := []struct {
		in           cefr.Level
		wantStandard cefr.Level
		wantPromoted cefr.Level
	}{
		{in: cefr.A1, wantStandard: cefr.A1, wantPromoted: cefr.A1},
		{in: cefr.A1Plus, wantStandard: cefr.A1, wantPromoted: cefr.A2},
		{in: cefr.B2Plus, wantStandard: cefr.B2, wantPromoted: cefr.C1},
		{in: cefr.C2Plus, wantStandard: cefr.C2, wantPromoted: cefr.C2},
	}
	for _, tt := range tests {
		if got := tt.in.Standard(); got != tt.wantStandard {
			t.Errorf("%v.Standard(): got = %v, wanted = %v", tt.in, got, tt.wantStandard)
		}
		if got := tt.in.Promoted(); got != tt.wantPromoted {
			t.Errorf("%v.Promoted(): got = %v, wanted = %v", tt.in, got, tt.wantPromoted)
		}
	}
}

func TestOrdinal(t *testing.T) {
	for i, l := range cefr.Standard {
		if got, want := l.Ordinal(), i+1; got != want {
			t.Errorf("%v.Ordinal(): got = %d, wanted = %d", l, got, want)
		}
		if got := cefr.FromOrdinal(i + 1); got != l {
			t.Errorf("FromOrdinal(%d): got = %v, wanted = %v", i+1, got, l)
		}
	}
	if got := cefr.B1Plus.Ordinal(); got != 3 {
		t.Errorf("B1+.Ordinal(): got = %d, wanted = 3", got)
	}
	if got := cefr.FromOrdinal(0); got != cefr.A1 {
		t.Errorf("FromOrdinal(0): got = %v, wanted = A1", got)
	}
	if got := cefr.FromOrdinal(9); got != cefr.C2 {
		t.Errorf("FromOrdinal(9): got = %v, wanted = C2", got)
	}
}

func TestRound(t *testing.T) {
	tests := map[float64]float64{
		0.5: 1,
		1.5: 2,
		2.5: 3,
		2.4: 2,
		3.5: 4,
	}
	for in, want := range tests {
		if got := cefr.Round(in); got != want {
			t.Errorf("Round(%v): got = %v, wanted = %v", in, got, want)
		}
	}
}

func TestLevelJSON(t *testing.T) {
	type doc struct {
		Level cefr.Level `json:"cefr_level"`
	}

	b, err := json.Marshal(doc{Level: cefr.B1Plus})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(b), `{"cefr_level":"B1+"}`; got != want {
		t.Errorf("Marshal(): got = %s, wanted = %s", got, want)
	}

	var d doc
	if err := json.Unmarshal([]byte(`{"cefr_level":"c1"}`), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if d.Level != cefr.C1 {
		t.Errorf("Unmarshal(): got = %v, wanted = %v", d.Level, cefr.C1)
	}

	if err := json.Unmarshal([]byte(`{"cefr_level":"expert"}`), &d); !errors.Is(err, cefr.ErrUnknownLevel) {
		t.Errorf("Unmarshal(invalid) error: got = %v, wanted = %v", err, cefr.ErrUnknownLevel)
	}
}

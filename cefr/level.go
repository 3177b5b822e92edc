/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package cefr

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownLevel is returned when a label is not one of the twelve CEFR labels.
var ErrUnknownLevel = errors.New("unknown CEFR level")

// Level is a position on the half-step CEFR grid. Even values are the six
// standard levels and odd values are their "+" variants, so the zero value
// is A1.
type Level int

const (
	A1 Level = iota
	A1Plus
	A2
	A2Plus
	B1
	B1Plus
	B2
	B2Plus
	C1
	C1Plus
	C2
	C2Plus
)

// MinLevel and MaxLevel bound the grid.
const (
	MinLevel = A1
	MaxLevel = C2Plus
)

var labels = [...]string{
	A1: "A1", A1Plus: "A1+",
	A2: "A2", A2Plus: "A2+",
	B1: "B1", B1Plus: "B1+",
	B2: "B2", B2Plus: "B2+",
	C1: "C1", C1Plus: "C1+",
	C2: "C2", C2Plus: "C2+",
}

// Standard lists the six standard levels in ascending order.
var Standard = []Level{A1, A2, B1, B2, C1, C2}

// All lists all twelve levels in ascending order.
var All = []Level{A1, A1Plus, A2, A2Plus, B1, B1Plus, B2, B2Plus, C1, C1Plus, C2, C2Plus}

// Valid reports whether l lies on the grid.
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// String returns the canonical label, e.g. "B1+".
func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return labels[l]
}

// IsPlus reports whether l is a half-step level.
func (l Level) IsPlus() bool {
	return l.Valid() && l%2 == 1
}

// Standard returns the standard level at or below l: B1+ becomes B1.
func (l Level) Standard() Level {
	if l.IsPlus() {
		return l - 1
	}
	return l
}

// Promoted returns the standard level at or above l: B1+ becomes B2.
// C2+ stays at C2 since there is nothing above it.
func (l Level) Promoted() Level {
	if !l.IsPlus() {
		return l
	}
	if l == C2Plus {
		return C2
	}
	return l + 1
}

// Score returns the position of l on the 0.0-5.5 grid.
func (l Level) Score() float64 {
	return float64(l) / 2
}

// Ordinal returns the 1-6 integer score of the standard level at or below l.
func (l Level) Ordinal() int {
	return int(l.Standard())/2 + 1
}

// FromScore maps a value on the 0.0-5.5 grid to its level. The value is
// clamped to the grid and rounded half-up to the nearest half step.
func FromScore(v float64) Level {
	v = Clamp(v, MinLevel.Score(), MaxLevel.Score())
	return Level(Round(v * 2))
}

// FromStandardScore clamps v to [0,5], rounds it half-up to a whole step
// and returns the matching standard level.
func FromStandardScore(v float64) Level {
	v = Clamp(v, A1.Score(), C2.Score())
	return Level(Round(v) * 2)
}

// FromOrdinal maps a 1-6 score back to a standard level, clamping first.
func FromOrdinal(n int) Level {
	n = max(1, min(6, n))
	return Level((n - 1) * 2)
}

// Parse parses a label such as "b2" or " C1+ ".
func Parse(s string) (Level, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	for i, label := range labels {
		if label == norm {
			return Level(i), nil
		}
	}
	return A1, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}
	return []byte(labels[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Round rounds half away from the lower neighbour: Round(2.5) == 3.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

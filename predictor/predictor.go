/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package predictor assigns CEFR levels directly from text with a trained
// probabilistic classifier, without calling a language model.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"chainguard.dev/cefrassess/cefr"
	"chainguard.dev/cefrassess/metrics"
)

const (
	// MinConfidence is the class probability below which a prediction is
	// hedged between the two most likely classes.
	MinConfidence = 0.7
	// TopK is the number of classes averaged by a hedged prediction.
	TopK = 2
	// NumClasses is the size of the classifier's class axis, A1 to C2.
	NumClasses = 6
)

// ErrNoTexts is returned when asked to predict an empty batch.
var ErrNoTexts = errors.New("no texts to predict")

// Classifier returns, per text, the probability of each of the six standard
// levels in order A1 to C2.
type Classifier interface {
	PredictProba(ctx context.Context, texts []string) ([][]float64, error)
}

// Option configures a Model.
type Option func(*Model)

// WithPlusLevels decodes predictions on the 12-level grid, so hedged
// predictions become plus levels. By default predictions are rounded to the
// six standard levels.
func WithPlusLevels() Option {
	return func(m *Model) {
		m.plus = true
	}
}

// WithPlusPromotion makes Standardize round plus levels up to the next
// standard level instead of down.
func WithPlusPromotion(promote bool) Option {
	return func(m *Model) {
		m.promote = promote
	}
}

// Model wraps a Classifier with the confidence-aware decision rule and label
// decoding.
type Model struct {
	classifier Classifier
	plus       bool
	promote    bool
}

// New returns a Model predicting with c.
func New(c Classifier, opts ...Option) (*Model, error) {
	if c == nil {
		return nil, errors.New("classifier cannot be nil")
	}
	m := &Model{classifier: c}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Predict returns the numeric level of each text on the 0.0-5.0 axis and its
// class probabilities keyed by level label.
func (m *Model) Predict(ctx context.Context, texts []string) ([]float64, []map[string]float64, error) {
	if len(texts) == 0 {
		return nil, nil, ErrNoTexts
	}
	probas, err := m.classifier.PredictProba(ctx, texts)
	if err != nil {
		return nil, nil, fmt.Errorf("classifying texts: %w", err)
	}
	if len(probas) != len(texts) {
		return nil, nil, fmt.Errorf("classifier returned %d rows for %d texts", len(probas), len(texts))
	}

	values := make([]float64, 0, len(probas))
	maps := make([]map[string]float64, 0, len(probas))
	for i, p := range probas {
		if len(p) != NumClasses {
			return nil, nil, fmt.Errorf("classifier returned %d classes for text %d, want %d", len(p), i, NumClasses)
		}
		values = append(values, Decide(p))
		maps = append(maps, labelProbabilities(p))
	}
	return values, maps, nil
}

// PredictDecode is Predict followed by Decode.
func (m *Model) PredictDecode(ctx context.Context, texts []string) ([]cefr.Level, []map[string]float64, error) {
	values, maps, err := m.Predict(ctx, texts)
	if err != nil {
		return nil, nil, err
	}
	levels := make([]cefr.Level, 0, len(values))
	for _, v := range values {
		l := m.Decode(v)
		metrics.RecordLevel("predictor", l.String())
		levels = append(levels, l)
	}
	return levels, maps, nil
}

// Decode maps a numeric level to its label. In plus mode v is mapped on the
// 0.0-5.5 half-step grid; otherwise it is clamped to [0,5] and rounded to a
// standard level. Out of range values are clamped, so Decode always returns
// a valid level.
func (m *Model) Decode(v float64) cefr.Level {
	if m.plus {
		return cefr.FromScore(v)
	}
	return cefr.FromStandardScore(v)
}

// Standardize converts a plus level to a standard level. Plus levels round
// down unless the model was built WithPlusPromotion(true).
func (m *Model) Standardize(l cefr.Level) cefr.Level {
	if m.promote {
		return l.Promoted()
	}
	return l.Standard()
}

// Decide applies the decision rule to one probability vector: the index of
// the most likely class when its probability reaches MinConfidence, and the
// mean index of the TopK most likely classes otherwise.
func Decide(p []float64) float64 {
	if len(p) == 0 {
		return 0
	}
	order := make([]int, len(p))
	for i := range order {
		order[i] = i
	}
	// Ascending and stable, so ties rank the higher index as more likely.
	sort.SliceStable(order, func(a, b int) bool { return p[order[a]] < p[order[b]] })

	best := order[len(order)-1]
	if p[best] >= MinConfidence {
		return float64(best)
	}

	k := min(TopK, len(order))
	var sum float64
	for _, i := range order[len(order)-k:] {
		sum += float64(i)
	}
	return sum / float64(k)
}

func labelProbabilities(p []float64) map[string]float64 {
	out := make(map[string]float64, len(p))
	for i, l := range cefr.Standard {
		out[l.String()] = p[i]
	}
	return out
}

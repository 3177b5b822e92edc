/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Softmax is a multinomial logistic regression over ExtractFeatures. It is
// the exported form of a classifier trained offline.
type Softmax struct {
	// Features names the model inputs in column order.
	Features []string `json:"features" yaml:"features"`
	// Weights has one row per class (A1 to C2) and one column per feature.
	Weights [][]float64 `json:"weights" yaml:"weights"`
	// Biases has one entry per class.
	Biases []float64 `json:"biases" yaml:"biases"`
	// Means and Scales standardize features before weighting. Both are
	// optional but must be given together.
	Means  []float64 `json:"means,omitempty" yaml:"means,omitempty"`
	Scales []float64 `json:"scales,omitempty" yaml:"scales,omitempty"`
}

var _ Classifier = (*Softmax)(nil)

// LoadSoftmax reads a model artifact. Files ending in .json are decoded as
// JSON and anything else as YAML.
func LoadSoftmax(path string) (*Softmax, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading classifier: %w", err)
	}

	var s Softmax
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(b, &s)
	} else {
		err = yaml.Unmarshal(b, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding classifier %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("classifier %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks the artifact dimensions and feature names.
func (s *Softmax) Validate() error {
	if len(s.Features) == 0 {
		return errors.New("no features")
	}
	for _, name := range s.Features {
		if !slices.Contains(FeatureNames, name) {
			return fmt.Errorf("unknown feature %q", name)
		}
	}
	if len(s.Weights) != NumClasses {
		return fmt.Errorf("got %d weight rows, want %d", len(s.Weights), NumClasses)
	}
	for i, row := range s.Weights {
		if len(row) != len(s.Features) {
			return fmt.Errorf("weight row %d has %d columns, want %d", i, len(row), len(s.Features))
		}
	}
	if len(s.Biases) != NumClasses {
		return fmt.Errorf("got %d biases, want %d", len(s.Biases), NumClasses)
	}
	if (s.Means == nil) != (s.Scales == nil) {
		return errors.New("means and scales must be given together")
	}
	if s.Means != nil && (len(s.Means) != len(s.Features) || len(s.Scales) != len(s.Features)) {
		return errors.New("means and scales must have one entry per feature")
	}
	return nil
}

// PredictProba implements Classifier.
func (s *Softmax) PredictProba(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, s.proba(s.vector(ExtractFeatures(text))))
	}
	return out, nil
}

func (s *Softmax) vector(features map[string]float64) []float64 {
	x := make([]float64, len(s.Features))
	for i, name := range s.Features {
		x[i] = features[name]
		if s.Means != nil {
			scale := s.Scales[i]
			if scale == 0 {
				scale = 1
			}
			x[i] = (x[i] - s.Means[i]) / scale
		}
	}
	return x
}

func (s *Softmax) proba(x []float64) []float64 {
	logits := make([]float64, NumClasses)
	for c := range logits {
		z := s.Biases[c]
		for i, w := range s.Weights[c] {
			z += w * x[i]
		}
		logits[c] = z
	}

	peak := slices.Max(logits)
	var sum float64
	for c, z := range logits {
		logits[c] = math.Exp(z - peak)
		sum += logits[c]
	}
	for c := range logits {
		logits[c] /= sum
	}
	return logits
}

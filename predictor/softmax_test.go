/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package predictor

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"chainguard.dev/cefrassess/cefr"
)

func TestExtractFeatures(t *testing.T) {
	got := ExtractFeatures("The cat sat. It was happy!")
	want := map[string]float64{
		FeatureWords:              6,
		FeatureSentences:          2,
		FeatureMeanWordLength:     19.0 / 6,
		FeatureMeanSentenceLength: 3,
		FeatureTypeTokenRatio:     1,
		FeatureLongWordRatio:      0,
		FeatureSyllablesPerWord:   7.0 / 6,
	}
	for name, w := range want {
		if math.Abs(got[name]-w) > 1e-9 {
			t.Errorf("%s: got = %v, wanted = %v", name, got[name], w)
		}
	}

	empty := ExtractFeatures("  ... ")
	for _, name := range FeatureNames {
		if empty[name] != 0 {
			t.Errorf("empty text %s: got = %v, wanted = 0", name, empty[name])
		}
	}
}

const yamlModel = `features: [words, type_token_ratio]
weights:
  - [0, 0]
  - [0, 0]
  - [0, 0]
  - [0, 0]
  - [0, 0]
  - [0, 0]
biases: [0, 0, 0, 0, 10, 0]
`

const jsonModel = `{
  "features": ["mean_sentence_length"],
  "weights": [[-1], [0], [0], [0], [0], [1]],
  "biases": [0, 0, 0, 0, 0, 0],
  "means": [10],
  "scales": [0.5]
}`

func writeModel(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSoftmaxYAML(t *testing.T) {
	s, err := LoadSoftmax(writeModel(t, "model.yaml", yamlModel))
	if err != nil {
		t.Fatalf("LoadSoftmax() = %v", err)
	}
	m, err := New(s)
	if err != nil {
		t.Fatal(err)
	}
	levels, probas, err := m.PredictDecode(context.Background(), []string{"Any text at all."})
	if err != nil {
		t.Fatalf("PredictDecode() = %v", err)
	}
	if levels[0] != cefr.C1 {
		t.Errorf("level: got = %v, wanted = C1", levels[0])
	}
	var sum float64
	for _, p := range probas[0] {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("probabilities sum to %v, wanted 1", sum)
	}
}

func TestLoadSoftmaxJSON(t *testing.T) {
	s, err := LoadSoftmax(writeModel(t, "model.json", jsonModel))
	if err != nil {
		t.Fatalf("LoadSoftmax() = %v", err)
	}

	short := "Yes. No. Maybe."
	long := "I think that the museum we visited last summer was one of the most interesting places I have ever seen in my whole life."
	probas, err := s.PredictProba(context.Background(), []string{short, long})
	if err != nil {
		t.Fatalf("PredictProba() = %v", err)
	}
	if Decide(probas[0]) != 0 {
		t.Errorf("short sentences: got = %v, wanted A1", probas[0])
	}
	if Decide(probas[1]) != 5 {
		t.Errorf("long sentence: got = %v, wanted C2", probas[1])
	}
}

func TestLoadSoftmaxInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown feature": `{"features": ["vibes"], "weights": [[0],[0],[0],[0],[0],[0]], "biases": [0,0,0,0,0,0]}`,
		"short weights":   `{"features": ["words"], "weights": [[0]], "biases": [0,0,0,0,0,0]}`,
		"ragged weights":  `{"features": ["words"], "weights": [[0],[0],[0],[0],[0],[0, 1]], "biases": [0,0,0,0,0,0]}`,
		"missing scales":  `{"features": ["words"], "weights": [[0],[0],[0],[0],[0],[0]], "biases": [0,0,0,0,0,0], "means": [1]}`,
		"not json":        `features: [words]`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadSoftmax(writeModel(t, "model.json", content)); err == nil {
				t.Error("LoadSoftmax(): wanted error")
			}
		})
	}
}

func TestPredictProbaCanceled(t *testing.T) {
	s, err := LoadSoftmax(writeModel(t, "model.yml", yamlModel))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.PredictProba(ctx, []string{"text"}); err == nil {
		t.Error("PredictProba(canceled): wanted error")
	}
}

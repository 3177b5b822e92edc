/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/cefrassess/cefr"
	"chainguard.dev/cefrassess/predictor"
	"chainguard.dev/cefrassess/report"
)

// Output files of Predictions.
const (
	ScoresFile  = "cefr_scores.json"
	SummaryFile = "cefr_summary.txt"
)

const summaryHeader = "CEFR Level Predictions Summary\n===========================\n\n"

// Prediction is the predicted level of one participant.
type Prediction struct {
	FileName      string             `json:"file_name"`
	Level         cefr.Level         `json:"cefr_level"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
}

// Participant returns the participant id of a transcript file name: the part
// before the first "-".
func Participant(name string) string {
	id, _, _ := strings.Cut(filepath.Base(name), "-")
	return id
}

// Predictions predicts a level for every *_transcript_USER.txt in inDir with
// model and writes cefr_scores.json and cefr_summary.txt to outDir.
// Predictions are keyed by participant; when a participant has several
// transcripts the last one in name order wins.
func Predictions(ctx context.Context, model *predictor.Model, inDir, outDir string) (map[string]Prediction, error) {
	paths, err := list(inDir, UserTranscriptSuffix)
	if err != nil {
		return nil, fmt.Errorf("listing transcripts: %w", err)
	}

	var (
		names []string
		texts []string
	)
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			clog.FromContext(ctx).With("file", filepath.Base(path)).With("error", err.Error()).
				Warn("Skipping unreadable transcript")
			continue
		}
		names = append(names, filepath.Base(path))
		texts = append(texts, string(b))
	}

	levels, probas, err := model.PredictDecode(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("predicting levels: %w", err)
	}

	predictions := make(map[string]Prediction, len(names))
	for i, name := range names {
		id := Participant(name)
		if prev, ok := predictions[id]; ok {
			clog.FromContext(ctx).With("participant", id).With("file", name).
				Warnf("Replacing prediction from %s", prev.FileName)
		}
		predictions[id] = Prediction{FileName: name, Level: levels[i], Probabilities: probas[i]}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := writeJSON(filepath.Join(outDir, ScoresFile), predictions, "    "); err != nil {
		return nil, fmt.Errorf("saving scores: %w", err)
	}

	var buf bytes.Buffer
	if err := Summary(&buf, predictions); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(outDir, SummaryFile), buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("saving summary: %w", err)
	}
	return predictions, nil
}

// Summary writes a human readable table of predictions sorted by
// participant.
func Summary(w io.Writer, predictions map[string]Prediction) error {
	ids := make([]string, 0, len(predictions))
	for id := range predictions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		p := predictions[id]
		rows = append(rows, []string{id, p.Level.String(), p.FileName})
	}

	if _, err := io.WriteString(w, summaryHeader); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	if err := report.Write(w, []string{"Participant", "CEFR Level", "File"}, rows); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

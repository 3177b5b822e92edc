/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"chainguard.dev/cefrassess/cefr"
	"chainguard.dev/cefrassess/evaluator"
	"chainguard.dev/cefrassess/speech"
)

// FluencyResultsFile is the name Fluency output is conventionally saved as.
const FluencyResultsFile = "fluency_evaluation_results.json"

// FluencyEntry is one recording's speech metrics with the fluency verdict.
type FluencyEntry struct {
	File             string     `json:"file"`
	PauseFrequency   float64    `json:"pause_frequency"`
	AvgPauseDuration float64    `json:"avg_pause_duration"`
	WordsPerMinute   float64    `json:"words_per_minute"`
	Level            cefr.Level `json:"cefr_level"`
	Reasoning        string     `json:"reasoning"`
	FluencyFeatures  []string   `json:"fluency_features"`
	Summary          string     `json:"summary"`
	Error            string     `json:"error,omitempty"`
}

// Base returns the stem shared with the transcript and result files.
func (e FluencyEntry) Base() string {
	return speech.Record{File: e.File}.Base()
}

// Fluency evaluates the fluency of every recording of the assessed speaker
// in records, reading each transcript from <base>_transcript.txt in
// transcriptDir, and writes the entries to outPath. Records whose analysis
// failed or whose transcript is missing or empty are skipped.
func Fluency(ctx context.Context, ev *evaluator.Fluency, records []speech.Record, transcriptDir, outPath string, opts ...Option) ([]FluencyEntry, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	slots := make([]*FluencyEntry, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, r := range records {
		if !r.IsUser() {
			continue
		}
		g.Go(func() error {
			slots[i] = fluency(ctx, ev, r, transcriptDir)
			return nil
		})
	}
	// Skipped records leave their slot nil, so Wait never fails.
	_ = g.Wait()

	entries := make([]FluencyEntry, 0, len(slots))
	for _, e := range slots {
		if e != nil {
			entries = append(entries, *e)
		}
	}

	unlock := lockPath(outPath)
	defer unlock()
	if err := writeJSON(outPath, entries, "  "); err != nil {
		return entries, fmt.Errorf("saving fluency results: %w", err)
	}
	clog.FromContext(ctx).With("count", len(entries)).Info("Saved fluency results")
	return entries, nil
}

func fluency(ctx context.Context, ev *evaluator.Fluency, r speech.Record, transcriptDir string) *FluencyEntry {
	log := clog.FromContext(ctx).With("file", r.File)
	if r.Error != "" {
		log.With("error", r.Error).Warn("Skipping recording with failed speech analysis")
		return nil
	}

	path := filepath.Join(transcriptDir, r.Base()+TranscriptSuffix)
	b, err := os.ReadFile(path)
	if err != nil {
		log.With("error", err.Error()).Warn("Skipping recording without transcript")
		return nil
	}

	res, err := evaluator.Evaluate[evaluator.FluencyResult](ctx, ev, evaluator.Input{ID: r.Base(), Text: string(b), Speech: &r})
	if err != nil {
		log.With("error", err.Error()).Warn("Skipping recording")
		return nil
	}
	return &FluencyEntry{
		File:             r.File,
		PauseFrequency:   r.PauseFrequency,
		AvgPauseDuration: r.AvgPauseDuration,
		WordsPerMinute:   r.WordsPerMinute,
		Level:            res.Level,
		Reasoning:        res.Reasoning,
		FluencyFeatures:  res.FluencyFeatures,
		Summary:          res.Summary,
		Error:            res.Error,
	}
}

// fluencySection is the "fluency" member merged into a result file.
type fluencySection struct {
	Level            cefr.Level `json:"cefr_level"`
	PauseFrequency   float64    `json:"pause_frequency"`
	AvgPauseDuration float64    `json:"avg_pause_duration"`
	WordsPerMinute   float64    `json:"words_per_minute"`
	Reasoning        string     `json:"reasoning"`
	FluencyFeatures  []string   `json:"fluency_features"`
}

// LoadFluency reads entries saved by Fluency.
func LoadFluency(path string) ([]FluencyEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fluency results: %w", err)
	}
	var entries []FluencyEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("decoding fluency results %s: %w", path, err)
	}
	return entries, nil
}

// MergeFluency adds a "fluency" member to <base>_result.json in resultsDir
// for each successful entry. Result files that are missing or already hold a
// fluency result are left alone. The rest of each file is preserved as is.
func MergeFluency(ctx context.Context, resultsDir string, entries []FluencyEntry) []Outcome {
	outcomes := make([]Outcome, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(resultsDir, e.Base()+ResultSuffix)
		o := Outcome{File: filepath.Base(path)}
		log := clog.FromContext(ctx).With("file", o.File)

		switch merged, err := merge(path, e); {
		case e.Error != "":
			o.Status = Skipped
		case errors.Is(err, os.ErrNotExist):
			log.Warn("No result file to merge fluency into")
			o.Status = Skipped
		case err != nil:
			log.With("error", err.Error()).Error("Failed to merge fluency result")
			o.Status, o.Err = Failed, err
		case merged:
			o.Status = Written
		default:
			o.Status = Skipped
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// merge reports whether it added e to the result file at path.
func merge(path string, e FluencyEntry) (bool, error) {
	if e.Error != "" {
		return false, nil
	}

	unlock := lockPath(path)
	defer unlock()

	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return false, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	if _, ok := doc["fluency"]; ok {
		return false, nil
	}
	if doc == nil {
		doc = make(map[string]json.RawMessage, 1)
	}

	section, err := json.Marshal(fluencySection{
		Level:            e.Level,
		PauseFrequency:   e.PauseFrequency,
		AvgPauseDuration: e.AvgPauseDuration,
		WordsPerMinute:   e.WordsPerMinute,
		Reasoning:        e.Reasoning,
		FluencyFeatures:  e.FluencyFeatures,
	})
	if err != nil {
		return false, err
	}
	doc["fluency"] = section
	return true, writeJSON(path, doc, "  ")
}

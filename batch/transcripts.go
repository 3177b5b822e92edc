/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"chainguard.dev/cefrassess/cefr"
	"chainguard.dev/cefrassess/evaluator"
	"chainguard.dev/cefrassess/speech"
)

// FailedReasoning is the reasoning of an entry for a criterion that could
// not be evaluated at all.
const FailedReasoning = "Evaluation failed"

// ErrorEntry stands in for the result of a criterion that failed with an
// input error.
type ErrorEntry struct {
	Error     string     `json:"error"`
	Level     cefr.Level `json:"cefr_level"`
	Reasoning string     `json:"reasoning"`
}

// Transcripts evaluates every *_transcript.txt in inDir with suite and
// writes <base>_result.json to outDir. Transcripts that already have a result
// in outDir are skipped. When speech metrics are given, the record whose base
// name matches a transcript is passed along so fluency is evaluated too.
//
// A result file is not written when every criterion failed, so the
// transcript is retried on the next run.
func Transcripts(ctx context.Context, suite *evaluator.Suite, inDir, outDir string, records []speech.Record, opts ...Option) ([]Outcome, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	paths, err := list(inDir, TranscriptSuffix)
	if err != nil {
		return nil, fmt.Errorf("listing transcripts: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	bySpeech := make(map[string]speech.Record, len(records))
	for _, r := range records {
		if r.IsUser() && r.Error == "" {
			bySpeech[r.Base()] = r
		}
	}

	outcomes := make([]Outcome, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			outcomes[i] = transcript(ctx, suite, path, outDir, bySpeech)
			return nil
		})
	}
	// Each file records its own failure, so Wait never fails.
	_ = g.Wait()
	return outcomes, nil
}

func transcript(ctx context.Context, suite *evaluator.Suite, path, outDir string, bySpeech map[string]speech.Record) Outcome {
	name := filepath.Base(path)
	base := strings.TrimSuffix(name, TranscriptSuffix)
	log := clog.FromContext(ctx).With("file", name)

	out := filepath.Join(outDir, base+ResultSuffix)
	if exists(out) || exists(filepath.Join(outDir, base+legacyResultSuffix)) {
		log.Debug("Skipping already processed transcript")
		return Outcome{File: name, Status: Skipped}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		log.With("error", err.Error()).Warn("Failed to read transcript")
		return Outcome{File: name, Status: Failed, Err: err}
	}

	in := evaluator.Input{ID: base, Text: string(b)}
	if r, ok := bySpeech[base]; ok {
		in.Speech = &r
	}

	results, err := suite.Run(ctx, in)
	if results.AllFailed() {
		log.Warn("All criteria failed, not saving results")
		if err == nil {
			err = fmt.Errorf("all criteria failed for %s", name)
		}
		return Outcome{File: name, Status: Failed, Err: err}
	}

	doc := make(map[string]any, len(results))
	for criterion, r := range results {
		doc[criterion] = r
	}
	for criterion, cerr := range evaluator.CriterionErrors(err) {
		doc[criterion] = ErrorEntry{Error: cerr.Error(), Level: cefr.A1, Reasoning: FailedReasoning}
	}

	unlock := lockPath(out)
	defer unlock()
	if err := writeJSON(out, doc, "  "); err != nil {
		log.With("error", err.Error()).Error("Failed to write results")
		return Outcome{File: name, Status: Failed, Err: err}
	}
	log.Info("Saved results")
	return Outcome{File: name, Status: Written}
}

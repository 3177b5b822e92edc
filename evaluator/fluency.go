/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"context"

	"chainguard.dev/cefrassess/cefr"
	"chainguard.dev/cefrassess/llm"
	"chainguard.dev/cefrassess/prompts"
)

// FluencyResult is the fluency criterion result.
type FluencyResult struct {
	prompts.FluencyResponse
	Outcome
}

// CEFRLevel implements Result.
func (r FluencyResult) CEFRLevel() cefr.Level { return r.Level }

// Fluency judges fluency from the transcript together with the pause and
// speaking rate measured on the recording.
type Fluency struct {
	base
}

var _ Interface[FluencyResult] = (*Fluency)(nil)

// NewFluency returns a fluency evaluator that calls client.
func NewFluency(client llm.Client, opts ...Option) *Fluency {
	return &Fluency{base: newBase(string(prompts.Fluency), prompts.Fluency, client, opts)}
}

// Accepts reports whether in carries the speech metrics fluency needs.
func (f *Fluency) Accepts(in Input) bool {
	return in.Speech != nil
}

func (f *Fluency) PreProcess(_ context.Context, in Input) (string, error) {
	if in.Speech == nil {
		return "", ErrNoSpeechMetrics
	}
	return f.registry.BuildPrompt(in.Text, f.evalType, map[string]any{
		"pause_frequency":    in.Speech.PauseFrequency,
		"avg_pause_duration": in.Speech.AvgPauseDuration,
		"speaking_rate":      in.Speech.WordsPerMinute,
	})
}

func (f *Fluency) PostProcess(_ context.Context, text string) (FluencyResult, error) {
	doc, raw, err := decode[prompts.FluencyResponse](text)
	if err != nil {
		return FluencyResult{}, err
	}
	doc.FluencyFeatures = nonNil(doc.FluencyFeatures)
	return FluencyResult{FluencyResponse: doc, Outcome: Outcome{RawOutput: raw}}, nil
}

func (f *Fluency) Degraded(raw string, cause error) FluencyResult {
	return FluencyResult{
		FluencyResponse: prompts.FluencyResponse{
			Level:           cefr.A1,
			Reasoning:       DegradedReasoning,
			FluencyFeatures: []string{},
			Summary:         DegradedReasoning,
		},
		Outcome: degraded(raw, cause),
	}
}

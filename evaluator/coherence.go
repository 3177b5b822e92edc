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

// CoherenceResult is the coherence criterion result.
type CoherenceResult struct {
	prompts.CoherenceResponse
	Outcome
}

// CEFRLevel implements Result.
func (r CoherenceResult) CEFRLevel() cefr.Level { return r.Level }

// Coherence judges completeness, relevance and logical flow.
type Coherence struct {
	base
}

var _ Interface[CoherenceResult] = (*Coherence)(nil)

// NewCoherence returns a coherence evaluator that calls client.
func NewCoherence(client llm.Client, opts ...Option) *Coherence {
	return &Coherence{base: newBase(string(prompts.Coherence), prompts.Coherence, client, opts)}
}

func (c *Coherence) PostProcess(_ context.Context, text string) (CoherenceResult, error) {
	doc, raw, err := decode[prompts.CoherenceResponse](text)
	if err != nil {
		return CoherenceResult{}, err
	}
	return CoherenceResult{CoherenceResponse: doc, Outcome: Outcome{RawOutput: raw}}, nil
}

func (c *Coherence) Degraded(raw string, cause error) CoherenceResult {
	return CoherenceResult{
		CoherenceResponse: prompts.CoherenceResponse{
			Level:     cefr.A1,
			Reasoning: DegradedReasoning,
			CriterionReasoning: prompts.CoherenceReasoning{
				Completeness: DegradedReasoning,
				Relevance:    DegradedReasoning,
				LogicalFlow:  DegradedReasoning,
			},
			Summary: DegradedReasoning,
		},
		Outcome: degraded(raw, cause),
	}
}

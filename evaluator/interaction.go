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

// InteractionResult is the interaction criterion result.
type InteractionResult struct {
	prompts.InteractionResponse
	Outcome
}

// CEFRLevel implements Result.
func (r InteractionResult) CEFRLevel() cefr.Level { return r.Level }

// Interaction judges turn taking and conversational management.
type Interaction struct {
	base
}

var _ Interface[InteractionResult] = (*Interaction)(nil)

// NewInteraction returns an interaction evaluator that calls client.
func NewInteraction(client llm.Client, opts ...Option) *Interaction {
	return &Interaction{base: newBase(string(prompts.Interaction), prompts.Interaction, client, opts)}
}

func (i *Interaction) PostProcess(_ context.Context, text string) (InteractionResult, error) {
	doc, raw, err := decode[prompts.InteractionResponse](text)
	if err != nil {
		return InteractionResult{}, err
	}
	doc.KeyFeatures = nonNil(doc.KeyFeatures)
	return InteractionResult{InteractionResponse: doc, Outcome: Outcome{RawOutput: raw}}, nil
}

func (i *Interaction) Degraded(raw string, cause error) InteractionResult {
	return InteractionResult{
		InteractionResponse: prompts.InteractionResponse{
			Level:       cefr.A1,
			Reasoning:   DegradedReasoning,
			KeyFeatures: []string{},
			Summary:     DegradedReasoning,
		},
		Outcome: degraded(raw, cause),
	}
}

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

// VocabularyResult is the vocabulary range criterion result.
type VocabularyResult struct {
	prompts.VocabularyResponse
	Outcome
}

// CEFRLevel implements Result.
func (r VocabularyResult) CEFRLevel() cefr.Level { return r.Level }

// Vocabulary judges the breadth and precision of the vocabulary used. Its
// results are stored under the "range" key.
type Vocabulary struct {
	base
}

var _ Interface[VocabularyResult] = (*Vocabulary)(nil)

// NewVocabulary returns a vocabulary range evaluator that calls client.
func NewVocabulary(client llm.Client, opts ...Option) *Vocabulary {
	return &Vocabulary{base: newBase(string(prompts.Range), prompts.Range, client, opts)}
}

func (v *Vocabulary) PostProcess(_ context.Context, text string) (VocabularyResult, error) {
	doc, raw, err := decode[prompts.VocabularyResponse](text)
	if err != nil {
		return VocabularyResult{}, err
	}
	doc.Features.AdvancedWords = nonNil(doc.Features.AdvancedWords)
	doc.Features.RepeatedWords = nonNil(doc.Features.RepeatedWords)
	return VocabularyResult{VocabularyResponse: doc, Outcome: Outcome{RawOutput: raw}}, nil
}

func (v *Vocabulary) Degraded(raw string, cause error) VocabularyResult {
	return VocabularyResult{
		VocabularyResponse: prompts.VocabularyResponse{
			Level:     cefr.A1,
			Reasoning: DegradedReasoning,
			CriterionReasoning: prompts.VocabularyReasoning{
				WordVariety:   DegradedReasoning,
				WordLevel:     DegradedReasoning,
				WordChoice:    DegradedReasoning,
				Collocations:  DegradedReasoning,
				AcademicVocab: DegradedReasoning,
			},
			Features: prompts.VocabularyFeatures{
				AdvancedWords: []string{},
				RepeatedWords: []string{},
			},
			Summary: DegradedReasoning,
		},
		Outcome: degraded(raw, cause),
	}
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"context"
	"fmt"

	"chainguard.dev/cefrassess/cefr"
	"chainguard.dev/cefrassess/llm"
	"chainguard.dev/cefrassess/prompts"
)

// GrammarResult is the grammar criterion result.
type GrammarResult struct {
	prompts.GrammarResponse
	// NumErrors is len(Errors), or -1 when degraded.
	NumErrors int `json:"num_errors"`
	Outcome
}

// CEFRLevel implements Result.
func (r GrammarResult) CEFRLevel() cefr.Level { return r.Level }

// Grammar counts grammatical errors with the model and bands the count into
// a CEFR level. A reply without an "errors" array is a schema error and
// yields the degraded result; it is never read as zero errors.
type Grammar struct {
	base
}

var _ Interface[GrammarResult] = (*Grammar)(nil)

// NewGrammar returns a grammar evaluator that calls client.
func NewGrammar(client llm.Client, opts ...Option) *Grammar {
	return &Grammar{base: newBase(string(prompts.Grammar), prompts.Grammar, client, opts)}
}

// grammarDocument is the part of the reply the level is derived from. The
// model's own cefr_level is ignored.
type grammarDocument struct {
	Errors *[]prompts.GrammarError `json:"errors"`
}

func (g *Grammar) PostProcess(_ context.Context, text string) (GrammarResult, error) {
	doc, raw, err := decode[grammarDocument](text)
	if err != nil {
		return GrammarResult{}, err
	}
	if doc.Errors == nil {
		return GrammarResult{}, fmt.Errorf("%w: missing errors array", ErrSchema)
	}

	errs := nonNil(*doc.Errors)
	level := GrammarLevel(len(errs))
	return GrammarResult{
		GrammarResponse: prompts.GrammarResponse{
			Errors:    errs,
			Level:     level,
			Reasoning: GrammarReasoning(level),
		},
		NumErrors: len(errs),
		Outcome:   Outcome{RawOutput: raw},
	}, nil
}

func (g *Grammar) Degraded(raw string, cause error) GrammarResult {
	return GrammarResult{
		GrammarResponse: prompts.GrammarResponse{
			Errors:    []prompts.GrammarError{},
			Level:     cefr.A1,
			Reasoning: DegradedReasoning,
		},
		NumErrors: -1,
		Outcome:   degraded(raw, cause),
	}
}

// GrammarLevel bands an error count into a CEFR level.
func GrammarLevel(numErrors int) cefr.Level {
	switch {
	case numErrors <= 0:
		return cefr.C2
	case numErrors <= 2:
		return cefr.C1
	case numErrors <= 5:
		return cefr.B2
	case numErrors <= 10:
		return cefr.B1
	case numErrors <= 15:
		return cefr.A2
	default:
		return cefr.A1
	}
}

var grammarReasoning = map[cefr.Level]string{
	cefr.C2: "Maintains consistent grammatical control of complex language, even while attention is otherwise engaged (e.g. in forward planning, in monitoring others' reactions).",
	cefr.C1: "Consistently maintains a high degree of grammatical accuracy; errors are rare, difficult to spot and generally corrected when they do occur.",
	cefr.B2: "Shows a relatively high degree of grammatical control. Does not make errors which cause misunderstanding, and can correct most of his/her mistakes.",
	cefr.B1: "Uses reasonably accurately a repertoire of frequently used 'routines' and patterns associated with more predictable situations.",
	cefr.A2: "Uses some simple structures correctly, but still systematically makes basic mistakes.",
	cefr.A1: "Shows only limited control of a few simple grammatical structures and sentence patterns in a memorised repertoire.",
}

// GrammarReasoning returns the CEFR grammatical accuracy descriptor for l.
// Plus levels use the descriptor of their base level.
func GrammarReasoning(l cefr.Level) string {
	return grammarReasoning[l.Standard()]
}

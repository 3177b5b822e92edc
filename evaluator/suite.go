/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"chainguard.dev/cefrassess/llm"
)

// Criterion is an evaluator with its result type erased, so evaluators of
// different criteria can be run together.
type Criterion interface {
	Name() string
	Evaluate(ctx context.Context, in Input) (Result, error)
}

// acceptor is implemented by evaluators that only apply to some inputs.
type acceptor interface {
	Accepts(in Input) bool
}

type criterion[R Result] struct {
	e Interface[R]
}

// Erase wraps e as a Criterion.
func Erase[R Result](e Interface[R]) Criterion {
	return criterion[R]{e: e}
}

func (c criterion[R]) Name() string { return c.e.Name() }

func (c criterion[R]) Evaluate(ctx context.Context, in Input) (Result, error) {
	r, err := Evaluate(ctx, c.e, in)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (c criterion[R]) accepts(in Input) bool {
	if a, ok := c.e.(acceptor); ok {
		return a.Accepts(in)
	}
	return true
}

// CriterionError is the input error of one criterion in a Suite run. Err
// already names the criterion.
type CriterionError struct {
	Criterion string
	Err       error
}

func (e *CriterionError) Error() string { return e.Err.Error() }

func (e *CriterionError) Unwrap() error { return e.Err }

// CriterionErrors splits an error returned by Suite.Run by criterion name.
func CriterionErrors(err error) map[string]error {
	out := make(map[string]error)
	if err == nil {
		return out
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var ce *CriterionError
		if errors.As(e, &ce) {
			out[ce.Criterion] = ce.Err
		}
	}
	return out
}

// Results maps criterion names to results.
type Results map[string]Result

// AllFailed reports whether no result in r is usable.
func (r Results) AllFailed() bool {
	for _, res := range r {
		if !res.Failed() {
			return false
		}
	}
	return true
}

// Suite runs a fixed set of criteria over one transcript.
type Suite struct {
	criteria []Criterion
}

// NewSuite returns a suite running the given criteria.
func NewSuite(criteria ...Criterion) *Suite {
	return &Suite{criteria: criteria}
}

// Default returns the suite of all five criteria: grammar, coherence, range,
// interaction and fluency.
func Default(client llm.Client, opts ...Option) *Suite {
	return NewSuite(
		Erase[GrammarResult](NewGrammar(client, opts...)),
		Erase[CoherenceResult](NewCoherence(client, opts...)),
		Erase[VocabularyResult](NewVocabulary(client, opts...)),
		Erase[InteractionResult](NewInteraction(client, opts...)),
		Erase[FluencyResult](NewFluency(client, opts...)),
	)
}

// Names lists the criteria of s in order.
func (s *Suite) Names() []string {
	names := make([]string, 0, len(s.criteria))
	for _, c := range s.criteria {
		names = append(names, c.Name())
	}
	return names
}

// Applicable lists the criteria of s that apply to in.
func (s *Suite) Applicable(in Input) []string {
	var names []string
	for _, c := range s.criteria {
		if applies(c, in) {
			names = append(names, c.Name())
		}
	}
	return names
}

func applies(c Criterion, in Input) bool {
	switch c := c.(type) {
	case interface{ accepts(Input) bool }:
		return c.accepts(in)
	case acceptor:
		return c.Accepts(in)
	default:
		return true
	}
}

// Run evaluates every applicable criterion concurrently. Criteria that do not
// apply to in, such as fluency without speech metrics, are skipped. Criteria
// that fail with an input error are left out of the results and their errors
// are joined into the returned error as *CriterionError values; the other
// results are still returned.
func (s *Suite) Run(ctx context.Context, in Input) (Results, error) {
	var (
		mu      sync.Mutex
		results = make(Results, len(s.criteria))
		errs    []error
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, c := range s.criteria {
		if !applies(c, in) {
			continue
		}
		g.Go(func() error {
			r, err := c.Evaluate(ctx, in)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, &CriterionError{Criterion: c.Name(), Err: err})
				return nil
			}
			results[c.Name()] = r
			return nil
		})
	}
	// Goroutines report failures through errs, so Wait never fails.
	_ = g.Wait()

	return results, errors.Join(errs...)
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"context"

	"chainguard.dev/cefrassess/llm"
	"chainguard.dev/cefrassess/prompts"
)

// Option configures an evaluator.
type Option func(*base)

// WithRegistry builds prompts from r instead of prompts.Default().
func WithRegistry(r *prompts.Registry) Option {
	return func(b *base) {
		b.registry = r
	}
}

// base holds what every evaluator shares: the prompt type, the model client
// and the registry.
type base struct {
	name     string
	evalType prompts.EvalType
	client   llm.Client
	registry *prompts.Registry
}

func newBase(name string, evalType prompts.EvalType, client llm.Client, opts []Option) base {
	b := base{
		name:     name,
		evalType: evalType,
		client:   client,
	}
	for _, opt := range opts {
		opt(&b)
	}
	if b.registry == nil {
		b.registry = prompts.Default()
	}
	return b
}

func (b *base) Name() string { return b.name }

func (b *base) PreProcess(_ context.Context, in Input) (string, error) {
	return b.registry.BuildPrompt(in.Text, b.evalType, nil)
}

func (b *base) CallModel(ctx context.Context, prompt string) (string, error) {
	return b.client.Generate(ctx, prompt)
}

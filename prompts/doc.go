/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package prompts holds the evaluation prompt templates and the response
// documents they ask for.
//
// # Templates
//
// A [Template] is text with {{name}} placeholders. Binding is immutable and
// single pass: bound values are inserted verbatim and never rescanned, so a
// transcript that happens to contain "{{x}}" cannot inject a placeholder.
// Single braces pass through, which keeps JSON examples intact.
//
//	t, err := prompts.Parse("Evaluate: {{text}}")
//	t, err = t.Bind("text", transcript)
//	prompt, err := t.Build()
//
// Build refuses to emit a prompt with an unresolved placeholder and returns
// [ErrMissingTemplateParameter] naming every one left.
//
// # Registry
//
// The [Registry] maps each [EvalType] to a template, criteria reference text
// and formatter. Formatters list the expected fields, embed the JSON schema
// reflected from the response type (for example [GrammarResponse]) and show
// one worked example, so the example always matches the schema.
//
//	prompt, err := prompts.Default().BuildPrompt(transcript, prompts.Fluency, map[string]any{
//		"pause_frequency":    12.4,
//		"avg_pause_duration": 0.8,
//		"speaking_rate":      96.0,
//	})
//
// [Range] is an alias of [Vocabulary]: results stored under the "range" key
// use the vocabulary response shape.
package prompts

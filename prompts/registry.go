/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"chainguard.dev/cefrassess/schema"
)

var (
	// ErrUnknownEvalType is returned for an evaluation type with no definition.
	ErrUnknownEvalType = errors.New("unknown evaluation type")

	// ErrEmptyScript is returned when the text to evaluate is blank.
	ErrEmptyScript = errors.New("empty script")
)

// EvalType names an evaluation type.
type EvalType string

const (
	Grammar     EvalType = "grammar"
	Coherence   EvalType = "coherence"
	Vocabulary  EvalType = "vocabulary"
	Interaction EvalType = "interaction"
	Fluency     EvalType = "fluency"

	// Range is the name vocabulary results are stored under. It resolves to
	// the vocabulary definition so both names share one response shape.
	Range EvalType = "range"
)

// Standard placeholders bound by BuildPrompt.
const (
	TextParam      = "text"
	CriteriaParam  = "criteria"
	FormatterParam = "formatter"
)

var reserved = []string{TextParam, CriteriaParam, FormatterParam}

// ParseEvalType parses an evaluation type name.
func ParseEvalType(s string) (EvalType, error) {
	t := EvalType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case Grammar, Coherence, Vocabulary, Interaction, Fluency, Range:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvalType, s)
}

// Definition is the immutable triple behind one evaluation type.
type Definition struct {
	Template  *Template
	Criteria  string
	Formatter string
}

// Extras returns the placeholders a caller must supply beyond text,
// criteria and formatter.
func (d Definition) Extras() []string {
	var out []string
	for _, name := range d.Template.Placeholders() {
		if !slices.Contains(reserved, name) {
			out = append(out, name)
		}
	}
	return out
}

// Registry resolves evaluation types to their definitions.
type Registry struct {
	defs    map[EvalType]Definition
	aliases map[EvalType]EvalType
}

var defaultRegistry = sync.OnceValues(NewRegistry)

// Default returns the shared registry of built-in definitions. The registry
// is read-only, so sharing it is safe.
func Default() *Registry {
	r, err := defaultRegistry()
	if err != nil {
		panic(fmt.Sprintf("building default prompt registry: %v", err))
	}
	return r
}

// NewRegistry builds a registry holding the built-in definitions.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		defs:    make(map[EvalType]Definition, 5),
		aliases: map[EvalType]EvalType{Range: Vocabulary},
	}

	grammar, err := formatter(grammarFields, grammarExample)
	if err != nil {
		return nil, err
	}
	coherence, err := formatter(coherenceFields, coherenceExample)
	if err != nil {
		return nil, err
	}
	vocabulary, err := formatter(vocabularyFields, vocabularyExample)
	if err != nil {
		return nil, err
	}
	interaction, err := formatter(interactionFields, interactionExample)
	if err != nil {
		return nil, err
	}
	fluency, err := formatter(fluencyFields, fluencyExample)
	if err != nil {
		return nil, err
	}

	for _, d := range []struct {
		t         EvalType
		tmpl      string
		criteria  string
		formatter string
	}{
		{Grammar, grammarTemplate, grammarCriteria, grammar},
		{Coherence, coherenceTemplate, coherenceCriteria, coherence},
		{Vocabulary, vocabularyTemplate, vocabularyCriteria, vocabulary},
		{Interaction, interactionTemplate, interactionCriteria, interaction},
		{Fluency, fluencyTemplate, fluencyCriteria, fluency},
	} {
		tmpl, err := Parse(d.tmpl)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", d.t, err)
		}
		r.defs[d.t] = Definition{Template: tmpl, Criteria: d.criteria, Formatter: d.formatter}
	}
	return r, nil
}

// formatter renders the response-format instructions for T: the field list,
// the reflected JSON schema and one worked example.
func formatter[T any](fields string, example T) (string, error) {
	s, err := schema.Describe[T]()
	if err != nil {
		return "", err
	}
	ex, err := json.Marshal(example)
	if err != nil {
		return "", fmt.Errorf("marshaling example: %w", err)
	}

	var b strings.Builder
	b.WriteString("Respond ONLY with a JSON object containing:\n")
	b.WriteString(fields)
	b.WriteString("\nThe object must validate against this JSON schema:\n```json\n")
	b.WriteString(s)
	b.WriteString("\n```\nExample:\n```json\n")
	b.Write(ex)
	b.WriteString("\n```")
	return b.String(), nil
}

// Lookup returns the definition for t, following aliases.
func (r *Registry) Lookup(t EvalType) (Definition, error) {
	if target, ok := r.aliases[t]; ok {
		t = target
	}
	d, ok := r.defs[t]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownEvalType, t)
	}
	return d, nil
}

// BuildPrompt composes the prompt for evalType. It substitutes script for
// {{text}}, the definition's criteria and formatter, and any placeholder
// named in extra. Entries of extra that the template does not use are
// ignored. A placeholder left without a value fails the build with
// ErrMissingTemplateParameter.
func (r *Registry) BuildPrompt(script string, evalType EvalType, extra map[string]any) (string, error) {
	if strings.TrimSpace(script) == "" {
		return "", ErrEmptyScript
	}
	d, err := r.Lookup(evalType)
	if err != nil {
		return "", err
	}

	tmpl := d.Template
	for name, val := range map[string]string{
		TextParam:      script,
		CriteriaParam:  d.Criteria,
		FormatterParam: d.Formatter,
	} {
		if !tmpl.Has(name) {
			continue
		}
		if tmpl, err = tmpl.Bind(name, val); err != nil {
			return "", err
		}
	}

	for name, val := range extra {
		if slices.Contains(reserved, name) {
			return "", fmt.Errorf("parameter %q is reserved", name)
		}
		if !tmpl.Has(name) {
			continue
		}
		if tmpl, err = tmpl.Bind(name, formatValue(val)); err != nil {
			return "", err
		}
	}

	out, err := tmpl.Build()
	if err != nil {
		return "", fmt.Errorf("building %s prompt: %w", evalType, err)
	}
	return out, nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

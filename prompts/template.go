/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrMissingTemplateParameter is returned by Build when a placeholder has no value.
var ErrMissingTemplateParameter = errors.New("missing template parameter")

// Template is a prompt with named {{placeholders}}. Templates are immutable:
// every Bind returns a new Template and leaves the receiver untouched.
type Template struct {
	text  string
	names []string
	// values holds the bound placeholders only.
	values map[string]string
}

// Parse parses a template and records its placeholders.
func Parse(text string) (*Template, error) {
	var names []string
	normalized, err := walkTemplate(text, func(name string) (string, error) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
		return "{{" + name + "}}", nil
	})
	if err != nil {
		return nil, err
	}
	return &Template{text: normalized, names: names, values: map[string]string{}}, nil
}

// Placeholders returns the placeholder names in order of first appearance.
func (t *Template) Placeholders() []string {
	return slices.Clone(t.names)
}

// Unbound returns the placeholders that still need a value, in order of
// first appearance.
func (t *Template) Unbound() []string {
	var out []string
	for _, name := range t.names {
		if _, ok := t.values[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// Has reports whether the template contains the named placeholder.
func (t *Template) Has(name string) bool {
	return slices.Contains(t.names, name)
}

// Bind sets the value of a placeholder. Binding a name the template does not
// contain, or one that is already bound, is an error.
func (t *Template) Bind(name, value string) (*Template, error) {
	if !t.Has(name) {
		return nil, fmt.Errorf("placeholder %q not found in template", name)
	}
	if _, bound := t.values[name]; bound {
		return nil, fmt.Errorf("placeholder %q already bound", name)
	}
	next := &Template{text: t.text, names: t.names, values: maps.Clone(t.values)}
	next.values[name] = value
	return next, nil
}

// Build substitutes every placeholder and returns the prompt. Bound values
// are inserted verbatim and never rescanned, so a value containing "{{x}}"
// is emitted literally. Build fails with ErrMissingTemplateParameter naming
// every placeholder that has no value.
func (t *Template) Build() (string, error) {
	if missing := t.Unbound(); len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingTemplateParameter, strings.Join(missing, ", "))
	}
	return walkTemplate(t.text, func(name string) (string, error) {
		return t.values[name], nil
	})
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts_test

import (
	"errors"
	"strings"
	"testing"

	"chainguard.dev/cefrassess/prompts"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
		wantErr  bool
	}{{
		name:     "no placeholders",
		template: "This is a simple prompt",
		want:     nil,
	}, {
		name:     "order of first appearance",
		template: "{{text}} then {{criteria}} then {{text}} and {{formatter}}",
		want:     []string{"text", "criteria", "formatter"},
	}, {
		name:     "whitespace inside braces",
		template: "Value: {{ pause_frequency }}",
		want:     []string{"pause_frequency"},
	}, {
		name:     "single braces are literal",
		template: `Example: {"errors": [{"category": "x"}]} for {{text}}`,
		want:     []string{"text"},
	}, {
		name:     "unclosed placeholder",
		template: "Hello {{name",
		wantErr:  true,
	}, {
		name:     "invalid identifier",
		template: "Hello {{1name}}",
		wantErr:  true,
	}, {
		name:     "empty placeholder",
		template: "Hello {{}}",
		wantErr:  true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := prompts.Parse(tt.template)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, tmpl.Placeholders()); diff != "" {
				t.Errorf("Placeholders() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func mustParse(t *testing.T, text string) *prompts.Template {
	t.Helper()
	tmpl, err := prompts.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tmpl
}

func TestBindIsImmutable(t *testing.T) {
	base := mustParse(t, "A={{a}} B={{b}}")

	withA, err := base.Bind("a", "1")
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if got, want := len(base.Unbound()), 2; got != want {
		t.Errorf("base unbound: got = %d, wanted = %d", got, want)
	}
	if diff := cmp.Diff([]string{"b"}, withA.Unbound()); diff != "" {
		t.Errorf("Unbound() mismatch (-want +got):\n%s", diff)
	}

	if _, err := withA.Bind("a", "2"); err == nil {
		t.Error("Bind(already bound) error: got = nil, wanted = error")
	}
	if _, err := base.Bind("c", "3"); err == nil {
		t.Error("Bind(unknown) error: got = nil, wanted = error")
	}
}

func TestBuild(t *testing.T) {
	t.Run("all bound", func(t *testing.T) {
		tmpl := mustParse(t, "Text: {{text}}\nAgain: {{text}}")
		tmpl, err := tmpl.Bind("text", "hello")
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		got, err := tmpl.Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if want := "Text: hello\nAgain: hello"; got != want {
			t.Errorf("Build(): got = %q, wanted = %q", got, want)
		}
	})

	t.Run("missing parameters are all named", func(t *testing.T) {
		tmpl := mustParse(t, "{{text}} {{speaking_rate}} {{pause_frequency}}")
		tmpl, err := tmpl.Bind("text", "hi")
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		if diff := cmp.Diff([]string{"speaking_rate", "pause_frequency"}, tmpl.Unbound()); diff != "" {
			t.Errorf("Unbound() mismatch (-want +got):\n%s", diff)
		}
		_, err = tmpl.Build()
		if !errors.Is(err, prompts.ErrMissingTemplateParameter) {
			t.Fatalf("Build() error: got = %v, wanted = %v", err, prompts.ErrMissingTemplateParameter)
		}
		if !strings.Contains(err.Error(), "speaking_rate, pause_frequency") {
			t.Errorf("Build() error %q does not name speaking_rate and pause_frequency", err)
		}
	})

	t.Run("values are not rescanned", func(t *testing.T) {
		tmpl := mustParse(t, "{{text}} / {{criteria}}")
		tmpl, err := tmpl.Bind("text", "User: I like {{criteria}} and {{evil}}")
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		tmpl, err = tmpl.Bind("criteria", "C")
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		got, err := tmpl.Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if want := "User: I like {{criteria}} and {{evil}} / C"; got != want {
			t.Errorf("Build(): got = %q, wanted = %q", got, want)
		}
	})

	t.Run("empty value counts as bound", func(t *testing.T) {
		tmpl := mustParse(t, "[{{text}}]")
		tmpl, err := tmpl.Bind("text", "")
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		got, err := tmpl.Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if want := "[]"; got != want {
			t.Errorf("Build(): got = %q, wanted = %q", got, want)
		}
	})
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{{
		name:     "bare object",
		input:    `{"cefr_level": "B2"}`,
		expected: `{"cefr_level": "B2"}`,
	}, {
		name:     "fenced block",
		input:    "```json\n{\"cefr_level\": \"B2\"}\n```",
		expected: `{"cefr_level": "B2"}`,
	}, {
		name: "fenced block with prose around it",
		input: "Here is my assessment.\n\n```json\n" +
			"{\n  \"cefr_level\": \"C1\",\n  \"reasoning\": \"clear\"\n}\n" +
			"```\n\nLet me know if you need more.",
		expected: "{\n  \"cefr_level\": \"C1\",\n  \"reasoning\": \"clear\"\n}",
	}, {
		name:     "indented fences",
		input:    "  ```json  \n{\"a\": 1}\n  ```  ",
		expected: `{"a": 1}`,
	}, {
		name:     "single line fence",
		input:    "```json {\"a\": 1} ```",
		expected: `{"a": 1}`,
	}, {
		name:     "plain fence without language",
		input:    "```\n{\"a\": 1}\n```",
		expected: `{"a": 1}`,
	}, {
		name:     "unclosed fence",
		input:    "```json\n{\"a\": 1}",
		expected: `{"a": 1}`,
	}, {
		name:     "empty fenced block",
		input:    "```json\n```",
		expected: "",
	}, {
		name:     "whitespace only",
		input:    " \n\t ",
		expected: "",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.expected {
				t.Errorf("ExtractJSON(): got = %q, wanted = %q", got, tt.expected)
			}
		})
	}
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "object", input: "```json\n{\"a\": 1}\n```"},
		{name: "array", input: `[1, 2]`, wantErr: true},
		{name: "null", input: `null`, wantErr: true},
		{name: "truncated", input: `{"a": `, wantErr: true},
		{name: "empty", input: ``, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractObject() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != `{"a": 1}` {
				t.Errorf("ExtractObject(): got = %s, wanted = %s", got, `{"a": 1}`)
			}
		})
	}
}

func TestExtractObjectFencedMatchesBare(t *testing.T) {
	bare := `{"cefr_level": "B1", "key_features": ["turn-taking"]}`
	a, err := ExtractObject(bare)
	if err != nil {
		t.Fatalf("ExtractObject(bare) error = %v", err)
	}
	b, err := ExtractObject("Sure:\n```json\n" + bare + "\n```")
	if err != nil {
		t.Fatalf("ExtractObject(fenced) error = %v", err)
	}
	if diff := cmp.Diff(string(a), string(b)); diff != "" {
		t.Errorf("ExtractObject() mismatch (-bare +fenced):\n%s", diff)
	}
}

func TestExtractObjectEmpty(t *testing.T) {
	if _, err := ExtractObject("```json\n```"); !errors.Is(err, ErrNoJSON) {
		t.Errorf("ExtractObject() error: got = %v, wanted = %v", err, ErrNoJSON)
	}
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainguard.dev/cefrassess/aggregate"
	"chainguard.dev/cefrassess/cefr"
	"chainguard.dev/cefrassess/evaluator"
	"chainguard.dev/cefrassess/llm"
	"chainguard.dev/cefrassess/speech"
)

type routed map[string]string

func (r routed) Generate(_ context.Context, prompt string) (string, error) {
	for prefix, reply := range r {
		if strings.HasPrefix(prompt, prefix) {
			return reply, nil
		}
	}
	return "", llm.ErrUnavailable
}

type failing struct{}

func (failing) Generate(context.Context, string) (string, error) {
	return "", llm.ErrUnavailable
}

var replies = routed{
	"Evaluate grammatical errors": `{"errors": [], "cefr_level": "C2", "reasoning": "none"}`,
	"Evaluate the coherence":      "```json\n" + `{"cefr_level": "B2", "reasoning": "r", "overall_score": 0.7, "criterion_scores": {"completeness": true, "relevance": true, "logical_flow": true}, "criterion_reasoning": {"completeness": "", "relevance": "", "logical_flow": ""}, "summary": "s"}` + "\n```",
	"Evaluate the vocabulary":     `{"cefr_level": "B1", "reasoning": "r", "overall_score": 0.5, "vocabulary_features": {"unique_words": 10, "total_words": 20}}`,
	"Evaluate the interaction":    `{"cefr_level": "B2", "confidence_score": 0.8, "reasoning": "r", "key_features": [], "summary": "s"}`,
	"Evaluate the fluency":        `{"cefr_level": "A2", "reasoning": "slow", "fluency_features": ["long pauses"], "summary": "hesitant"}`,
}

const transcriptText = "User: I has been to London last year.\nNPC: What did you do there?\nUser: We visit the museums."

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) = %v", path, err)
	}
}

func readJSON(t *testing.T, path string) map[string]json.RawMessage {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &doc))
	return doc
}

func statuses(outcomes []Outcome) map[string]Status {
	out := make(map[string]Status, len(outcomes))
	for _, o := range outcomes {
		out[o.File] = o.Status
	}
	return out
}

func TestTranscripts(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	write(t, filepath.Join(in, "A"+TranscriptSuffix), transcriptText)
	write(t, filepath.Join(in, "B"+TranscriptSuffix), transcriptText)
	write(t, filepath.Join(in, "C"+TranscriptSuffix), "   ")
	write(t, filepath.Join(in, "notes.txt"), transcriptText)
	write(t, filepath.Join(out, "B"+ResultSuffix), `{"grammar": {"cefr_level": "B1"}}`)

	records := []speech.Record{
		{File: "A_USER.wav", PauseFrequency: 12, AvgPauseDuration: 0.9, WordsPerMinute: 80},
		{File: "A_NPC.wav", PauseFrequency: 1},
	}

	outcomes, err := Transcripts(context.Background(), evaluator.Default(replies), in, out, records, WithConcurrency(2))
	require.NoError(t, err)
	assert.Equal(t, map[string]Status{
		"A" + TranscriptSuffix: Written,
		"B" + TranscriptSuffix: Skipped,
		"C" + TranscriptSuffix: Failed,
	}, statuses(outcomes))

	doc := readJSON(t, filepath.Join(out, "A"+ResultSuffix))
	assert.ElementsMatch(t, []string{"grammar", "coherence", "range", "interaction", "fluency"}, keys(doc))
	assert.NoFileExists(t, filepath.Join(out, "C"+ResultSuffix))

	// The skipped result is untouched.
	b, err := os.ReadFile(filepath.Join(out, "B"+ResultSuffix))
	require.NoError(t, err)
	assert.JSONEq(t, `{"grammar": {"cefr_level": "B1"}}`, string(b))

	// C2 + B2 + B1 + B2 + A2 averages to 3.8, which rounds to B2.
	overall, err := aggregate.EvaluateFile(context.Background(), filepath.Join(out, "A"+ResultSuffix))
	require.NoError(t, err)
	assert.InDelta(t, 3.8, overall.WeightedScore, 1e-9)
	assert.Equal(t, cefr.B2, overall.Level)
}

func keys(doc map[string]json.RawMessage) []string {
	out := make([]string, 0, len(doc))
	for k := range doc {
		out = append(out, k)
	}
	return out
}

func TestTranscriptsWithoutSpeech(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	write(t, filepath.Join(in, "A"+TranscriptSuffix), transcriptText)

	_, err := Transcripts(context.Background(), evaluator.Default(replies), in, out, nil)
	require.NoError(t, err)

	doc := readJSON(t, filepath.Join(out, "A"+ResultSuffix))
	assert.NotContains(t, doc, "fluency")
	assert.Len(t, doc, 4)
}

func TestTranscriptsAllDegraded(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	write(t, filepath.Join(in, "A"+TranscriptSuffix), transcriptText)

	outcomes, err := Transcripts(context.Background(), evaluator.Default(failing{}), in, out, nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, Failed, outcomes[0].Status)
	assert.Error(t, outcomes[0].Err)
	assert.NoFileExists(t, filepath.Join(out, "A"+ResultSuffix))
}

// broken is a criterion that always fails with an input error.
type broken struct{}

func (broken) Name() string { return "broken" }

func (broken) Evaluate(context.Context, evaluator.Input) (evaluator.Result, error) {
	return nil, errors.New("broken: no input")
}

func TestTranscriptsErrorEntry(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	write(t, filepath.Join(in, "A"+TranscriptSuffix), transcriptText)

	suite := evaluator.NewSuite(evaluator.Erase[evaluator.GrammarResult](evaluator.NewGrammar(replies)), broken{})
	outcomes, err := Transcripts(context.Background(), suite, in, out, nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, Written, outcomes[0].Status)

	doc := readJSON(t, filepath.Join(out, "A"+ResultSuffix))
	assert.JSONEq(t, `{"error": "broken: no input", "cefr_level": "A1", "reasoning": "Evaluation failed"}`, string(doc["broken"]))
}

func TestTranscriptsMissingDirectory(t *testing.T) {
	_, err := Transcripts(context.Background(), evaluator.Default(replies), filepath.Join(t.TempDir(), "missing"), t.TempDir(), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithConcurrency(t *testing.T) {
	_, err := Transcripts(context.Background(), evaluator.Default(replies), t.TempDir(), t.TempDir(), nil, WithConcurrency(0))
	assert.Error(t, err)
}

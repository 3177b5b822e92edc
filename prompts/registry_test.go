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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fluencyMetrics = map[string]any{
	"pause_frequency":    12.5,
	"avg_pause_duration": 0.8,
	"speaking_rate":      96.3,
}

func TestBuildPromptEveryType(t *testing.T) {
	reg, err := prompts.NewRegistry()
	require.NoError(t, err)

	script := "User: I am go to school yesterday.\nNPC: Oh, how was it?"
	for _, et := range []prompts.EvalType{
		prompts.Grammar,
		prompts.Coherence,
		prompts.Vocabulary,
		prompts.Range,
		prompts.Interaction,
		prompts.Fluency,
	} {
		t.Run(string(et), func(t *testing.T) {
			got, err := reg.BuildPrompt(script, et, fluencyMetrics)
			require.NoError(t, err)

			def, err := reg.Lookup(et)
			require.NoError(t, err)

			assert.Contains(t, got, script)
			assert.Contains(t, got, def.Criteria)
			assert.Contains(t, got, def.Formatter)
			assert.Contains(t, got, "Respond ONLY with a JSON object")
			assert.Contains(t, got, `"cefr_level"`)
			assert.NotContains(t, got, "{{")
		})
	}
}

func TestBuildPromptFluencyParams(t *testing.T) {
	reg := prompts.Default()

	got, err := reg.BuildPrompt("User: well... I think so", prompts.Fluency, fluencyMetrics)
	require.NoError(t, err)
	assert.Contains(t, got, "- Pause frequency: 12.5")
	assert.Contains(t, got, "- Average pause duration: 0.8")
	assert.Contains(t, got, "- Speaking rate: 96.3")

	_, err = reg.BuildPrompt("User: hi", prompts.Fluency, map[string]any{
		"pause_frequency": 1.0,
	})
	require.ErrorIs(t, err, prompts.ErrMissingTemplateParameter)
	assert.Contains(t, err.Error(), "avg_pause_duration")
}

func TestBuildPromptErrors(t *testing.T) {
	reg := prompts.Default()

	_, err := reg.BuildPrompt("  \n", prompts.Grammar, nil)
	assert.ErrorIs(t, err, prompts.ErrEmptyScript)

	_, err = reg.BuildPrompt("User: hi", prompts.EvalType("pronunciation"), nil)
	assert.ErrorIs(t, err, prompts.ErrUnknownEvalType)

	_, err = reg.BuildPrompt("User: hi", prompts.Grammar, map[string]any{"text": "other"})
	assert.Error(t, err)
}

func TestBuildPromptIgnoresUnusedExtras(t *testing.T) {
	reg := prompts.Default()

	with, err := reg.BuildPrompt("User: hi", prompts.Grammar, fluencyMetrics)
	require.NoError(t, err)
	without, err := reg.BuildPrompt("User: hi", prompts.Grammar, nil)
	require.NoError(t, err)
	assert.Equal(t, without, with)
}

func TestRangeAliasesVocabulary(t *testing.T) {
	reg := prompts.Default()

	r, err := reg.BuildPrompt("User: hi", prompts.Range, nil)
	require.NoError(t, err)
	v, err := reg.BuildPrompt("User: hi", prompts.Vocabulary, nil)
	require.NoError(t, err)
	assert.Equal(t, v, r)
	assert.Contains(t, r, "vocabulary_features")
}

func TestDefinitionExtras(t *testing.T) {
	reg := prompts.Default()

	fluency, err := reg.Lookup(prompts.Fluency)
	require.NoError(t, err)
	assert.Equal(t, []string{"pause_frequency", "avg_pause_duration", "speaking_rate"}, fluency.Extras())

	grammar, err := reg.Lookup(prompts.Grammar)
	require.NoError(t, err)
	assert.Empty(t, grammar.Extras())
}

func TestParseEvalType(t *testing.T) {
	got, err := prompts.ParseEvalType(" Range ")
	require.NoError(t, err)
	assert.Equal(t, prompts.Range, got)

	_, err = prompts.ParseEvalType("spelling")
	assert.True(t, errors.Is(err, prompts.ErrUnknownEvalType))
}

func TestFormatterIncludesWorkedExample(t *testing.T) {
	reg := prompts.Default()

	def, err := reg.Lookup(prompts.Grammar)
	require.NoError(t, err)
	assert.Contains(t, def.Formatter, `"category":"1. Subject-Verb Agreement"`)
	assert.Equal(t, 2, strings.Count(def.Formatter, "```json"))
}

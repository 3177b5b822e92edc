/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompts

import "chainguard.dev/cefrassess/cefr"

// The types below are the JSON documents a model is instructed to return for
// each evaluation type. The registry reflects them into the schema shown in
// each formatter, and evaluators decode responses into them.

// GrammarError is one grammatical error found in a transcript.
type GrammarError struct {
	Category    string `json:"category" jsonschema:"required,description=The error category number and name"`
	Location    string `json:"location" jsonschema:"required,description=The specific text segment containing the error"`
	Correction  string `json:"correction" jsonschema:"required,description=The corrected version"`
	Explanation string `json:"explanation" jsonschema:"required,description=Brief explanation of the error"`
}

// GrammarResponse is the grammar evaluation document.
type GrammarResponse struct {
	Errors    []GrammarError `json:"errors" jsonschema:"required,description=Every grammatical error found"`
	Level     cefr.Level     `json:"cefr_level" jsonschema:"description=The assessed CEFR level"`
	Reasoning string         `json:"reasoning" jsonschema:"description=Why this CEFR level was chosen"`
}

// CoherenceScores holds the pass/fail coherence sub-criteria.
type CoherenceScores struct {
	Completeness bool `json:"completeness" jsonschema:"required,description=The response addresses the whole task"`
	Relevance    bool `json:"relevance" jsonschema:"required,description=The response stays on topic"`
	LogicalFlow  bool `json:"logical_flow" jsonschema:"required,description=Ideas are linked in a logical order"`
}

// CoherenceReasoning explains each coherence sub-criterion.
type CoherenceReasoning struct {
	Completeness string `json:"completeness" jsonschema:"required"`
	Relevance    string `json:"relevance" jsonschema:"required"`
	LogicalFlow  string `json:"logical_flow" jsonschema:"required"`
}

// CoherenceResponse is the coherence evaluation document.
type CoherenceResponse struct {
	Level              cefr.Level         `json:"cefr_level" jsonschema:"required,description=The assessed CEFR level"`
	Reasoning          string             `json:"reasoning" jsonschema:"required,description=Why this CEFR level was chosen with a focus on coherence features"`
	OverallScore       float64            `json:"overall_score" jsonschema:"required,minimum=0,maximum=1,description=Overall coherence quality between 0 and 1"`
	CriterionScores    CoherenceScores    `json:"criterion_scores" jsonschema:"required"`
	CriterionReasoning CoherenceReasoning `json:"criterion_reasoning" jsonschema:"required"`
	Summary            string             `json:"summary" jsonschema:"description=Brief summary of the coherence assessment"`
}

// VocabularyScores holds the 0-1 vocabulary sub-criterion scores.
type VocabularyScores struct {
	WordVariety   float64 `json:"word_variety" jsonschema:"required,minimum=0,maximum=1"`
	WordLevel     float64 `json:"word_level" jsonschema:"required,minimum=0,maximum=1"`
	WordChoice    float64 `json:"word_choice" jsonschema:"required,minimum=0,maximum=1"`
	Collocations  float64 `json:"collocations" jsonschema:"required,minimum=0,maximum=1"`
	AcademicVocab float64 `json:"academic_vocab" jsonschema:"required,minimum=0,maximum=1"`
}

// VocabularyReasoning explains each vocabulary sub-criterion score.
type VocabularyReasoning struct {
	WordVariety   string `json:"word_variety" jsonschema:"required"`
	WordLevel     string `json:"word_level" jsonschema:"required"`
	WordChoice    string `json:"word_choice" jsonschema:"required"`
	Collocations  string `json:"collocations" jsonschema:"required"`
	AcademicVocab string `json:"academic_vocab" jsonschema:"required"`
}

// VocabularyFeatures are counts and word lists extracted from the transcript.
type VocabularyFeatures struct {
	UniqueWords   float64  `json:"unique_words" jsonschema:"required,minimum=0"`
	TotalWords    float64  `json:"total_words" jsonschema:"required,minimum=0"`
	AdvancedWords []string `json:"advanced_words" jsonschema:"required,description=Advanced or sophisticated words used"`
	RepeatedWords []string `json:"repeated_words" jsonschema:"required,description=Words that might be overused"`
}

// VocabularyResponse is the vocabulary range evaluation document.
type VocabularyResponse struct {
	Level              cefr.Level          `json:"cefr_level" jsonschema:"required,description=The assessed CEFR level"`
	Reasoning          string              `json:"reasoning" jsonschema:"required,description=Why this CEFR level was chosen"`
	OverallScore       float64             `json:"overall_score" jsonschema:"required,minimum=0,maximum=1,description=Overall vocabulary quality between 0 and 1"`
	CriterionScores    VocabularyScores    `json:"criterion_scores" jsonschema:"required"`
	CriterionReasoning VocabularyReasoning `json:"criterion_reasoning" jsonschema:"required"`
	Features           VocabularyFeatures  `json:"vocabulary_features" jsonschema:"required"`
	Summary            string              `json:"summary" jsonschema:"description=Overall assessment of the vocabulary"`
}

// InteractionResponse is the interaction evaluation document.
type InteractionResponse struct {
	Level           cefr.Level `json:"cefr_level" jsonschema:"required,description=The assessed CEFR level"`
	ConfidenceScore float64    `json:"confidence_score" jsonschema:"required,minimum=0,maximum=1,description=Confidence in the assessment"`
	Reasoning       string     `json:"reasoning" jsonschema:"required,description=Why this CEFR level was chosen"`
	KeyFeatures     []string   `json:"key_features" jsonschema:"required,description=Interaction features observed that support this level"`
	Summary         string     `json:"summary" jsonschema:"description=Brief summary of the interaction assessment"`
}

// FluencyResponse is the fluency evaluation document.
type FluencyResponse struct {
	Level           cefr.Level `json:"cefr_level" jsonschema:"required,description=The assessed CEFR level"`
	Reasoning       string     `json:"reasoning" jsonschema:"required,description=Why this CEFR level was chosen"`
	FluencyFeatures []string   `json:"fluency_features" jsonschema:"required,description=Fluency features observed that support this level"`
	Summary         string     `json:"summary" jsonschema:"description=Brief summary of the fluency assessment"`
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package speech holds the audio-derived fluency signals produced by the
// upstream speech analysis step.
package speech

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UserSuffix marks recordings of the assessed speaker.
const UserSuffix = "_USER.wav"

// Record is one entry of speech_metrics.json.
type Record struct {
	// File is the base name of the analysed recording.
	File string `json:"file"`
	// PauseFrequency is pauses per minute.
	PauseFrequency float64 `json:"pause_frequency"`
	// AvgPauseDuration is in seconds.
	AvgPauseDuration float64 `json:"avg_pause_duration"`
	// WordsPerMinute is the speaking rate.
	WordsPerMinute float64 `json:"words_per_minute"`
	// Error is set when analysis of the recording failed.
	Error string `json:"error,omitempty"`
}

// IsUser reports whether r describes a recording of the assessed speaker.
func (r Record) IsUser() bool {
	return strings.HasSuffix(r.File, UserSuffix)
}

// Base returns the recording name without the speaker suffix, the stem shared
// with the transcript and result files.
func (r Record) Base() string {
	return strings.TrimSuffix(filepath.Base(r.File), UserSuffix)
}

// Load reads a speech_metrics.json array.
func Load(path string) ([]Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading speech metrics: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("decoding speech metrics %s: %w", path, err)
	}
	return records, nil
}

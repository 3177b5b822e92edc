/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package batch runs the assessment over directories of transcripts and
// persists the results as JSON files next to them.
//
// The drivers share a file layout keyed by a recording's base name:
//
//	<base>_transcript.txt   transcript of one recording
//	<base>_USER.wav         the assessed speaker's audio (named in speech_metrics.json)
//	<base>_result.json      criterion results, written by Transcripts
//
// Files are processed concurrently and one file's failure never stops the
// others. Result files are only written through this package, which
// serializes writers per path.
package batch

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package evaluator scores transcripts against one CEFR criterion at a time
// using a language model as the judge.
//
// Every evaluator implements Interface: PreProcess turns the input into a
// prompt, CallModel sends it to the model and PostProcess decodes the reply
// into a typed result. Evaluate drives the three stages once per call:
//
//	NotStarted -> PreProcessed -> ModelInvoked -> Parsed
//	                          \-> Failed        \-> Failed
//
// PreProcess errors mean the caller passed bad input and are returned.
// Failures of CallModel or PostProcess are environmental: Evaluate logs them,
// distinguishing transport from schema failures, and returns the evaluator's
// degraded result at level A1 instead of an error.
//
// Grammar levels are derived from the number of errors the model reports
// using fixed CEFR bands (see GrammarLevel). The vocabulary evaluator runs
// under the "range" key with a single response shape.
//
// Suite runs every criterion for one transcript concurrently.
package evaluator

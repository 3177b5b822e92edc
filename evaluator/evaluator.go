/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"chainguard.dev/cefrassess/cefr"
	"chainguard.dev/cefrassess/metrics"
	"chainguard.dev/cefrassess/result"
	"chainguard.dev/cefrassess/speech"
)

// DegradedReasoning is the reasoning carried by every degraded result.
const DegradedReasoning = "Error processing response"

var (
	// ErrSchema marks a model reply that is not the JSON document the
	// prompt asked for.
	ErrSchema = errors.New("response does not match the expected schema")

	// ErrNoSpeechMetrics is returned by the fluency evaluator when the input
	// carries no speech metrics.
	ErrNoSpeechMetrics = errors.New("fluency evaluation requires speech metrics")
)

// Input is what an evaluator assesses.
type Input struct {
	// ID identifies the transcript in logs and traces, usually its file name.
	ID string
	// Text is the transcript, plain or multi-turn ("User: ...\nNPC: ...").
	Text string
	// Speech holds the audio-derived metrics. Only fluency requires it.
	Speech *speech.Record
}

// Result is implemented by every criterion result.
type Result interface {
	// CEFRLevel is the level assigned for the criterion.
	CEFRLevel() cefr.Level
	// Failed reports whether this is a degraded result.
	Failed() bool
}

// Interface is the contract each criterion evaluator implements.
type Interface[R Result] interface {
	// Name is the criterion key results are stored under.
	Name() string
	// PreProcess builds the prompt for in.
	PreProcess(ctx context.Context, in Input) (string, error)
	// CallModel sends the prompt and returns the raw reply.
	CallModel(ctx context.Context, prompt string) (string, error)
	// PostProcess decodes a raw reply. Errors should wrap ErrSchema.
	PostProcess(ctx context.Context, text string) (R, error)
	// Degraded returns the result used when the model call or decoding
	// fails. raw is the model reply, empty when none was received.
	Degraded(raw string, cause error) R
}

// State is the progress of one evaluation.
type State int

const (
	NotStarted State = iota
	PreProcessed
	ModelInvoked
	Parsed
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case PreProcessed:
		return "pre_processed"
	case ModelInvoked:
		return "model_invoked"
	case Parsed:
		return "parsed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Evaluate runs e once over in. It returns an error only when PreProcess
// fails; model and decoding failures yield e.Degraded.
func Evaluate[R Result](ctx context.Context, e Interface[R], in Input) (R, error) {
	name := e.Name()
	tr := otel.Tracer("chainguard.dev/cefrassess/evaluator",
		oteltrace.WithInstrumentationVersion("1.0.0"))
	ctx, span := tr.Start(ctx, "cefr.evaluate", oteltrace.WithAttributes(
		attribute.String("cefr.criterion", name),
		attribute.String("cefr.transcript", in.ID),
	))

	state := NotStarted
	defer func() {
		span.SetAttributes(attribute.String("cefr.state", state.String()))
		span.End()
	}()

	log := clog.FromContext(ctx).With("criterion", name)
	if in.ID != "" {
		log = log.With("transcript", in.ID)
	}
	observer := metrics.NewEvaluationObserver(name)
	start := time.Now()

	prompt, err := e.PreProcess(ctx, in)
	if err != nil {
		state = Failed
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var zero R
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	state = PreProcessed

	text, err := e.CallModel(ctx, prompt)
	if err != nil {
		state = Failed
		observer.Observe(metrics.OutcomeTransport, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.With("failure", "transport").With("error", err.Error()).
			Error("Model call failed, returning degraded result")
		return e.Degraded("", err), nil
	}
	state = ModelInvoked

	r, err := e.PostProcess(ctx, text)
	if err != nil {
		state = Failed
		observer.Observe(metrics.OutcomeSchema, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.With("failure", "schema").With("error", err.Error()).
			Error(DegradedReasoning)
		return e.Degraded(text, err), nil
	}
	state = Parsed

	level := r.CEFRLevel().String()
	observer.Observe(metrics.OutcomeParsed, time.Since(start))
	metrics.RecordLevel(name, level)
	span.SetAttributes(attribute.String("cefr.level", level))
	span.SetStatus(codes.Ok, "")
	log.With("level", level).Debug("Evaluation parsed")
	return r, nil
}

// Outcome holds the audit fields shared by every criterion result.
type Outcome struct {
	// RawOutput is the parsed reply document, or the cleaned reply text as
	// a JSON string when the result is degraded.
	RawOutput json.RawMessage `json:"raw_output"`
	// Error describes why the result is degraded.
	Error string `json:"error,omitempty"`
}

// Failed implements Result.
func (o Outcome) Failed() bool { return o.Error != "" }

// degraded builds the Outcome of a degraded result.
func degraded(raw string, cause error) Outcome {
	// Marshaling a string cannot fail.
	b, _ := json.Marshal(result.ExtractJSON(raw))
	msg := DegradedReasoning
	if cause != nil {
		msg = cause.Error()
	}
	return Outcome{RawOutput: b, Error: msg}
}

// decode extracts the JSON object from text and decodes it into T, returning
// the object as well.
func decode[T any](text string) (T, json.RawMessage, error) {
	var out T
	raw, err := result.ExtractObject(text)
	if err != nil {
		return out, nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, nil, fmt.Errorf("%w: decoding response: %w", ErrSchema, err)
	}
	return out, raw, nil
}

// nonNil returns s, or an empty slice when s is nil, so lists always encode
// as JSON arrays.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

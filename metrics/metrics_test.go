/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/attribute"
)

func TestEvaluationObserver(t *testing.T) {
	obs := NewEvaluationObserver("grammar_test")

	before := testutil.ToFloat64(evaluationCounter.WithLabelValues("grammar_test", OutcomeSchema))
	obs.Observe(OutcomeSchema, 50*time.Millisecond)
	obs.Observe(OutcomeParsed, time.Second)

	if got, want := testutil.ToFloat64(evaluationCounter.WithLabelValues("grammar_test", OutcomeSchema)), before+1; got != want {
		t.Errorf("schema_error count: got = %v, wanted = %v", got, want)
	}
	if got := testutil.ToFloat64(evaluationCounter.WithLabelValues("grammar_test", OutcomeParsed)); got < 1 {
		t.Errorf("parsed count: got = %v, wanted >= 1", got)
	}
}

func TestEvaluationDuration(t *testing.T) {
	NewEvaluationObserver("duration_test").Observe(OutcomeParsed, 2*time.Second)

	var m dto.Metric
	if err := evaluationDuration.WithLabelValues("duration_test").(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	if got, wanted := m.GetHistogram().GetSampleCount(), uint64(1); got != wanted {
		t.Errorf("sample count: got = %v, wanted = %v", got, wanted)
	}
	if got, wanted := m.GetHistogram().GetSampleSum(), 2.0; got != wanted {
		t.Errorf("sample sum: got = %v, wanted = %v", got, wanted)
	}
}

func TestRecordLevel(t *testing.T) {
	before := testutil.ToFloat64(levelCounter.WithLabelValues("overall_test", "B2"))
	RecordLevel("overall_test", "B2")
	if got, want := testutil.ToFloat64(levelCounter.WithLabelValues("overall_test", "B2")), before+1; got != want {
		t.Errorf("level count: got = %v, wanted = %v", got, want)
	}
}

func TestGenAIDoesNotPanicWithoutProvider(t *testing.T) {
	m := NewGenAI(MeterName)
	var enriched bool
	m.SetAttributeEnricher(func(_ context.Context, base []attribute.KeyValue) []attribute.KeyValue {
		enriched = true
		return append(base, attribute.String("transcript", "p01"))
	})

	ctx := context.Background()
	m.RecordTokens(ctx, "openai", "gpt-4o", 120, 40)
	m.RecordRequest(ctx, "openai", "gpt-4o", "ok")

	if !enriched {
		t.Error("enricher: got = not called, wanted = called")
	}
}

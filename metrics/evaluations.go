/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Evaluation outcomes.
const (
	OutcomeParsed    = "parsed"
	OutcomeTransport = "transport_error"
	OutcomeSchema    = "schema_error"
)

var (
	evaluationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cefr_evaluations_total",
			Help: "Total number of criterion evaluations by outcome",
		},
		[]string{"criterion", "outcome"},
	)

	evaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cefr_evaluation_duration_seconds",
			Help:    "Wall time of one criterion evaluation including the model call",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"criterion"},
	)

	levelCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cefr_assigned_levels_total",
			Help: "CEFR levels assigned, by source (criterion name, overall or predictor)",
		},
		[]string{"source", "level"},
	)
)

// EvaluationObserver records the outcome of evaluations for one criterion.
type EvaluationObserver struct {
	criterion string
	duration  prometheus.Observer
}

// NewEvaluationObserver returns an observer for the named criterion.
func NewEvaluationObserver(criterion string) *EvaluationObserver {
	return &EvaluationObserver{
		criterion: criterion,
		duration:  evaluationDuration.With(prometheus.Labels{"criterion": criterion}),
	}
}

// Observe records one finished evaluation.
func (o *EvaluationObserver) Observe(outcome string, elapsed time.Duration) {
	evaluationCounter.With(prometheus.Labels{
		"criterion": o.criterion,
		"outcome":   outcome,
	}).Inc()
	o.duration.Observe(elapsed.Seconds())
}

// RecordLevel counts a level assigned by source.
func RecordLevel(source, level string) {
	levelCounter.With(prometheus.Labels{"source": source, "level": level}).Inc()
}

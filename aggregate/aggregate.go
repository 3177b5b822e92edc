/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package aggregate combines per-criterion CEFR levels into one overall
// level using a weighted mean.
package aggregate

import (
	"context"
	"math"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/cefrassess/cefr"
	"chainguard.dev/cefrassess/evaluator"
	"chainguard.dev/cefrassess/metrics"
)

// Criteria lists the criteria that contribute to the overall level, in
// reporting order.
var Criteria = []string{"grammar", "coherence", "range", "interaction", "fluency"}

// Weights holds the weight of each criterion. They sum to 1.
var Weights = map[string]float64{
	"grammar":     0.2,
	"coherence":   0.2,
	"range":       0.2,
	"interaction": 0.2,
	"fluency":     0.2,
}

// Criterion is the part of a criterion result the aggregate reads.
type Criterion struct {
	Level string `json:"cefr_level"`
}

// Overall is the aggregated result for one transcript.
type Overall struct {
	// WeightedScore is the weighted mean of the 1-6 criterion scores,
	// rounded to two decimals, or 0 when no criterion was usable.
	WeightedScore float64    `json:"weighted_score"`
	Level         cefr.Level `json:"overall_cefr_level"`
}

// FromResults adapts evaluator results for Evaluate.
func FromResults(results evaluator.Results) map[string]Criterion {
	out := make(map[string]Criterion, len(results))
	for name, r := range results {
		out[name] = Criterion{Level: r.CEFRLevel().String()}
	}
	return out
}

// Evaluate computes the overall level. Only criteria listed in Weights that
// carry a non-empty level count; a missing criterion is left out of both the
// weighted sum and the total weight. Plus levels count as their base level.
// Labels that are not CEFR levels are logged and left out.
func Evaluate(ctx context.Context, criteria map[string]Criterion) Overall {
	var weightedSum, totalWeight float64
	for _, name := range Criteria {
		c, ok := criteria[name]
		if !ok || c.Level == "" {
			continue
		}
		l, err := cefr.Parse(c.Level)
		if err != nil {
			clog.FromContext(ctx).With("criterion", name).With("cefr_level", c.Level).
				Warn("Ignoring unrecognised CEFR level")
			continue
		}
		weight := Weights[name]
		weightedSum += float64(l.Ordinal()) * weight
		totalWeight += weight
	}

	var score float64
	if totalWeight > 0 {
		score = weightedSum / totalWeight
	}
	// The level is read from the reported score so float noise such as
	// 3.4999999999999996 cannot move it across a half step.
	reported := math.Round(score*100) / 100
	overall := Overall{
		WeightedScore: reported,
		Level:         cefr.FromOrdinal(int(cefr.Round(reported))),
	}
	metrics.RecordLevel("overall", overall.Level.String())
	return overall
}

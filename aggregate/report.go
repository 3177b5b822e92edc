/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package aggregate

import (
	"fmt"
	"io"

	"chainguard.dev/cefrassess/report"
)

// Report writes outcomes as a markdown table.
func Report(w io.Writer, outcomes []FileOutcome) error {
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		row := []string{o.File, "", "", o.Error}
		if o.Overall != nil {
			row[1] = fmt.Sprintf("%.2f", o.WeightedScore)
			row[2] = o.Level.String()
		}
		rows = append(rows, row)
	}
	return report.Write(w, []string{"File", "Weighted Score", "Overall Level", "Error"}, rows)
}

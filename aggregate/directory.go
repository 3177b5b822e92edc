/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

// ErrNotDirectory is returned by EvaluateDirectory when dir does not name a
// readable directory.
var ErrNotDirectory = errors.New("not a directory")

// ResultSuffix is the file name suffix of per-transcript result files.
const ResultSuffix = "_result.json"

// FileOutcome is the aggregate of one result file, or why it failed.
type FileOutcome struct {
	File string `json:"file"`
	*Overall
	Error string `json:"error,omitempty"`
}

// EvaluateFile reads a result file holding criterion results keyed by name
// and aggregates them. Keys other than the names in Criteria are ignored, so
// a file may also carry the transcript or other metadata. A criterion entry
// that is not an object is logged and left out.
func EvaluateFile(ctx context.Context, path string) (Overall, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Overall{}, fmt.Errorf("reading results: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return Overall{}, fmt.Errorf("decoding results: %w", err)
	}

	criteria := make(map[string]Criterion, len(Criteria))
	for _, name := range Criteria {
		raw, ok := doc[name]
		if !ok {
			continue
		}
		var c Criterion
		if err := json.Unmarshal(raw, &c); err != nil {
			clog.FromContext(ctx).With("file", filepath.Base(path)).With("criterion", name).
				With("error", err.Error()).Warn("Ignoring malformed criterion result")
			continue
		}
		criteria[name] = c
	}
	return Evaluate(ctx, criteria), nil
}

// EvaluateDirectory aggregates every result file in dir. A file that cannot
// be read or decoded gets an outcome with Error set; it never stops the
// others. Outcomes are sorted by file name.
func EvaluateDirectory(ctx context.Context, dir string) ([]FileOutcome, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotDirectory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*"+ResultSuffix))
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	sort.Strings(paths)

	outcomes := make([]FileOutcome, len(paths))
	var g errgroup.Group
	g.SetLimit(8)
	for i, path := range paths {
		g.Go(func() error {
			name := filepath.Base(path)
			overall, err := EvaluateFile(ctx, path)
			if err != nil {
				clog.FromContext(ctx).With("file", name).With("error", err.Error()).
					Warn("Skipping unreadable result file")
				outcomes[i] = FileOutcome{File: name, Error: fmt.Sprintf("Error processing evaluation: %v", err)}
				return nil
			}
			outcomes[i] = FileOutcome{File: name, Overall: &overall}
			return nil
		})
	}
	// Each file records its own failure, so Wait never fails.
	_ = g.Wait()
	return outcomes, nil
}

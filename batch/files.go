/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// File name suffixes shared by the drivers.
const (
	TranscriptSuffix     = "_transcript.txt"
	UserTranscriptSuffix = "_transcript_USER.txt"
	ResultSuffix         = "_result.json"
	legacyResultSuffix   = "_result.txt"
)

// defaultConcurrency bounds how many files are assessed at once.
const defaultConcurrency = 4

// Option configures a batch driver.
type Option func(*options) error

type options struct {
	concurrency int
}

// WithConcurrency bounds how many files are processed at once.
func WithConcurrency(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("concurrency must be positive, got %d", n)
		}
		o.concurrency = n
		return nil
	}
}

func newOptions(opts []Option) (options, error) {
	o := options{concurrency: defaultConcurrency}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return options{}, err
		}
	}
	return o, nil
}

// Status is what a driver did with one file.
type Status string

const (
	// Written means the output file was created or updated.
	Written Status = "written"
	// Skipped means the file was already processed or had nothing to add.
	Skipped Status = "skipped"
	// Failed means the file could not be processed.
	Failed Status = "failed"
)

// Outcome reports what happened to one input file.
type Outcome struct {
	File   string
	Status Status
	Err    error
}

// pathLocks holds a mutex per cleaned output path.
var pathLocks sync.Map

func lockPath(path string) func() {
	v, _ := pathLocks.LoadOrStore(filepath.Clean(path), &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// list returns the sorted paths in dir whose names end in suffix.
func list(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeJSON replaces path with the indented encoding of v. The document is
// written to a temporary file first so readers never see a partial file.
func writeJSON(path string, v any, indent string) (err error) {
	b, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	b = append(b, '\n')

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(f.Name()))
		}
	}()
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

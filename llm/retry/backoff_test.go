/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"fmt"
	"testing"
	"time"
)

func TestBackoffDoubles(t *testing.T) {
	cfg := Config{BaseBackoff: time.Second, MaxBackoff: 30 * time.Second}
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
	}
	for _, tt := range tests {
		if got := backoff(cfg, tt.attempt); got != tt.want {
			t.Errorf("backoff(%d): got = %v, wanted = %v", tt.attempt, got, tt.want)
		}
	}
}

func TestBackoffLargeAttempts(t *testing.T) {
	cfg := Default()
	for _, attempt := range []int{30, 34, 35, 40, 62, 63, 64, 100, 1000} {
		t.Run(fmt.Sprint(attempt), func(t *testing.T) {
			got := backoff(cfg, attempt)
			if got < cfg.MaxBackoff || got > cfg.MaxBackoff+cfg.MaxJitter {
				t.Errorf("backoff(%d): got = %v, wanted within [%v, %v]", attempt, got, cfg.MaxBackoff, cfg.MaxBackoff+cfg.MaxJitter)
			}
		})
	}
}

func TestBackoffHugeMax(t *testing.T) {
	cfg := Config{BaseBackoff: time.Second, MaxBackoff: time.Duration(1<<63 - 1)}
	for _, attempt := range []int{40, 63, 64, 200} {
		if got := backoff(cfg, attempt); got <= 0 {
			t.Errorf("backoff(%d): got = %v, wanted a positive wait", attempt, got)
		}
	}
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/genai"
)

var (
	// ErrConfig marks a client configuration that cannot work, such as a
	// missing model or credential. It is returned by New and never at call time.
	ErrConfig = errors.New("invalid model client configuration")

	// ErrUnavailable marks a call that failed in transport: network errors,
	// timeouts and non-2xx responses other than authentication failures.
	ErrUnavailable = errors.New("model backend unavailable")

	// ErrAuth marks a call rejected with 401 or 403.
	ErrAuth = errors.New("model backend rejected credentials")
)

// StatusError is a non-2xx reply from the generic HTTP backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// statusCode extracts the HTTP status carried by a backend error, or 0.
func statusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	var oe *openai.Error
	if errors.As(err, &oe) {
		return oe.StatusCode
	}
	var ae *anthropic.Error
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	var ge genai.APIError
	if errors.As(err, &ge) {
		return ge.Code
	}
	var gp *genai.APIError
	if errors.As(err, &gp) {
		return gp.Code
	}
	return 0
}

// classify tags a backend error with ErrAuth or ErrUnavailable.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrAuth) || errors.Is(err, ErrUnavailable) {
		return err
	}
	switch statusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrAuth, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

// isTransient reports whether retrying err may succeed: rate limits, server
// errors, timeouts and network failures. Authentication failures and other
// 4xx replies are permanent.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch code := statusCode(err); {
	case code == http.StatusTooManyRequests:
		return true
	case code >= 500:
		return true
	case code != 0:
		return false
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// outcome names the failure class of err for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

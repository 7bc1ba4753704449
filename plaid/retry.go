// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package plaid

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// retryStatuses are the responses the transport treats as transient.
var retryStatuses = map[int]struct{}{
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// parseRetryAfter returns a server-specified delay indicated by the Retry-After header.
// It supports both seconds and HTTP-date formats. Returns 0 when absent/invalid or when
// the computed delay would be negative.
func parseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	ra := strings.TrimSpace(h.Get("Retry-After"))
	if ra == "" {
		return 0
	}
	// Seconds form
	if n, err := strconv.Atoi(ra); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(ra); err == nil {
		now := time.Now()
		if t.After(now) {
			return t.Sub(now)
		}
	}
	return 0
}

// BackoffDuration computes the delay before retry number retry (1-based).
// The first retry is immediate; later ones wait base * 2^(retry-1), capped at max.
func BackoffDuration(retry int, base, max time.Duration) time.Duration {
	if retry <= 1 || base <= 0 {
		return 0
	}
	if max < base {
		max = base
	}
	d := base
	for i := 1; i < retry; i++ {
		if d > max/2 {
			// avoid overflow; cap early
			return max
		}
		d *= 2
	}
	if d > max {
		d = max
	}
	return d
}

// isContextError reports if err indicates context cancellation or deadline exceeded.
func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ShouldRetry classifies whether a request should be retried for given status/err.
// Policy:
//   - Never retry context cancellation/deadline errors (caller controls lifetime).
//   - Retry on 429, 500, 502, 503 and 504.
//   - Transport errors are retried only for timeouts, truncated responses and
//     connection reset/aborted/broken pipe. DNS failures are not retried.
func ShouldRetry(status int, err error) bool {
	if isContextError(err) {
		return false
	}
	if _, ok := retryStatuses[status]; ok && err == nil {
		return true
	}
	if err == nil {
		return false
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	return false
}

// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package plaid

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestShouldRetry(t *testing.T) {
	for _, tt := range []struct {
		name   string
		status int
		err    error
		want   bool
	}{
		{"429", http.StatusTooManyRequests, nil, true},
		{"500", http.StatusInternalServerError, nil, true},
		{"502", http.StatusBadGateway, nil, true},
		{"503", http.StatusServiceUnavailable, nil, true},
		{"504", http.StatusGatewayTimeout, nil, true},
		{"501 not listed", http.StatusNotImplemented, nil, false},
		{"400", http.StatusBadRequest, nil, false},
		{"200", http.StatusOK, nil, false},
		{"canceled", 0, context.Canceled, false},
		{"deadline", http.StatusServiceUnavailable, context.DeadlineExceeded, false},
		{"timeout", 0, timeoutErr{}, true},
		{"unexpected eof", 0, io.ErrUnexpectedEOF, true},
		{"reset", 0, syscall.ECONNRESET, true},
		{"dns", 0, &net.DNSError{Err: "no such host", Name: "sandbox.plaid.invalid"}, false},
		{"other", 0, errors.New("boom"), false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRetry(tt.status, tt.err))
		})
	}
}

func TestBackoffDuration(t *testing.T) {
	base := 10 * time.Second
	max := 120 * time.Second
	assert.Equal(t, time.Duration(0), BackoffDuration(1, base, max), "first retry is immediate")
	assert.Equal(t, 20*time.Second, BackoffDuration(2, base, max))
	assert.Equal(t, 40*time.Second, BackoffDuration(3, base, max))
	assert.Equal(t, 80*time.Second, BackoffDuration(4, base, max))
	assert.Equal(t, max, BackoffDuration(5, base, max))
	assert.Equal(t, max, BackoffDuration(60, base, max), "large attempts stay capped")
	assert.Equal(t, time.Duration(0), BackoffDuration(3, 0, max))
}

func Test_parseRetryAfter(t *testing.T) {
	assert.Equal(t, time.Duration(0), parseRetryAfter(nil))
	assert.Equal(t, 3*time.Second, parseRetryAfter(http.Header{"Retry-After": []string{"3"}}))
	assert.Equal(t, time.Duration(0), parseRetryAfter(http.Header{"Retry-After": []string{"soon"}}))

	future := time.Now().Add(90 * time.Second).UTC().Format(http.TimeFormat)
	d := parseRetryAfter(http.Header{"Retry-After": []string{future}})
	assert.Greater(t, d, 80*time.Second)
	assert.LessOrEqual(t, d, 90*time.Second)

	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	assert.Equal(t, time.Duration(0), parseRetryAfter(http.Header{"Retry-After": []string{past}}))
}

func Test_backoff_prefers_retry_after(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{"Retry-After": []string{"2"}}}
	assert.Equal(t, 2*time.Second, backoff(time.Second, time.Minute, 3, resp))

	resp = &http.Response{StatusCode: http.StatusBadGateway, Header: http.Header{"Retry-After": []string{"2"}}}
	assert.Equal(t, 4*time.Second, backoff(time.Second, time.Minute, 2, resp), "Retry-After only applies to 429/503")
	assert.Equal(t, time.Duration(0), backoff(time.Second, time.Minute, 0, nil))
}

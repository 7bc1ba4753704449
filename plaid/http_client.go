// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package plaid

import (
	"context"
	"net/http"
	"time"

	"github.com/devops-wiz/plaid-adapter/config"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// buildHTTPClient constructs the HTTP client with the retry/backoff policy.
// Requests whose method is not in cfg.RetryMethods bypass the retry client.
func buildHTTPClient(cfg config.Config, log *zap.Logger) *http.Client {
	base := otelhttp.NewTransport(
		cleanhttp.DefaultPooledTransport(),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "plaid " + r.URL.Path
		}),
	)

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Transport: base}
	rc.RetryMax = cfg.RetryMaxAttempts
	rc.RetryWaitMin = cfg.RetryBackoffBase
	rc.RetryWaitMax = cfg.RetryMaxBackoff
	rc.CheckRetry = checkRetry
	rc.Backoff = backoff
	// hand the final response back so status mapping still applies
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = zapLeveledLogger{s: log.Named("retry").Sugar()}

	gate := &retryGate{
		retrying: &retryablehttp.RoundTripper{Client: rc},
		direct:   base,
		allowed: func(method string) bool {
			return cfg.RetryMaxAttempts > 0 && cfg.RetriesMethod(method)
		},
	}
	return &http.Client{Transport: gate, Timeout: cfg.HTTPTimeout}
}

// retryGate sends requests through the retrying transport only when their
// method is allowed to be retried.
type retryGate struct {
	retrying http.RoundTripper
	direct   http.RoundTripper
	allowed  func(method string) bool
}

func (g *retryGate) RoundTrip(req *http.Request) (*http.Response, error) {
	if g.allowed(req.Method) {
		return g.retrying.RoundTrip(req)
	}
	return g.direct.RoundTrip(req)
}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	return ShouldRetry(status, err), nil
}

// backoff honors Retry-After on 429/503 and otherwise grows exponentially
// from min. retryablehttp passes a 0-based retry index.
func backoff(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if resp != nil && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable) {
		if d := parseRetryAfter(resp.Header); d > 0 {
			return d
		}
	}
	return BackoffDuration(attemptNum+1, min, max)
}

// zapLeveledLogger bridges retryablehttp logging onto zap.
type zapLeveledLogger struct {
	s *zap.SugaredLogger
}

var _ retryablehttp.LeveledLogger = zapLeveledLogger{}

func (l zapLeveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

func (l zapLeveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l zapLeveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l zapLeveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}

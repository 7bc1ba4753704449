// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/devops-wiz/plaid-adapter/config"
	"github.com/devops-wiz/plaid-adapter/internal/logger"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Adapter issues Plaid API calls with a fixed configuration. It holds no
// per-call state and is safe for concurrent use.
type Adapter struct {
	cfg       config.Config
	http      *http.Client
	log       *zap.Logger
	metrics   *metrics
	limiter   *rate.Limiter
	requestID func() string
}

type options struct {
	log        *zap.Logger
	httpClient *http.Client
	registerer prometheus.Registerer
	requestID  func() string
}

// Option customizes an Adapter.
type Option func(*options)

// WithLogger sets the logger. The adapter logs under the "plaid" name.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithHTTPClient replaces the retrying client built from the configuration.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithRegisterer registers the adapter's Prometheus collectors on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithRequestIDFunc overrides the X-Request-Id generator.
func WithRequestIDFunc(f func() string) Option {
	return func(o *options) { o.requestID = f }
}

// New fills unset optional settings with their defaults, validates cfg and
// returns a ready adapter. Any validation failure yields a KindConfiguration
// error and no adapter. The adapter keeps its own copy of cfg.
func New(cfg config.Config, opts ...Option) (*Adapter, error) {
	cfg = cfg.WithDefaults()
	if verrs := cfg.Validate(); len(verrs) > 0 {
		parts := make([]string, 0, len(verrs))
		for _, v := range verrs {
			parts = append(parts, v.Error())
		}
		return nil, newError(KindConfiguration, strings.Join(parts, "; "))
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.requestID == nil {
		o.requestID = uuid.NewString
	}
	log := o.log.Named("plaid")

	m, err := newMetrics(o.registerer)
	if err != nil {
		e := newError(KindConfiguration, "register metrics")
		e.Err = err
		return nil, e
	}

	a := &Adapter{
		cfg:       cfg,
		http:      o.httpClient,
		log:       log,
		metrics:   m,
		requestID: o.requestID,
	}
	if a.http == nil {
		a.http = buildHTTPClient(cfg, log)
	}
	if cfg.RateLimitPerMinute > 0 {
		a.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimitPerMinute)), cfg.RateLimitPerMinute)
	}

	if cfg.RetryMaxAttempts > 0 && !cfg.RetriesMethod(http.MethodPost) {
		log.Info("transport retries do not cover POST; Plaid calls will not be retried", zap.Strings("retry_methods", cfg.RetryMethods))
	}
	log.Debug("plaid adapter configured", cfg.LogFields()...)
	return a, nil
}

// NewFromEnv loads configuration from the environment (and a .env file when
// present) and builds an adapter. When PLAID_LOG_LEVEL is set and no logger
// option is given, a zap logger is built for the configured environment.
func NewFromEnv(opts ...Option) (*Adapter, error) {
	cfg, err := config.Load()
	if err != nil {
		e := newError(KindConfiguration, "load configuration")
		e.Err = err
		return nil, e
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil && cfg.LogLevel != "" && len(cfg.Validate()) == 0 {
		l, err := logger.New(cfg.Environment, cfg.LogLevel)
		if err != nil {
			e := newError(KindConfiguration, "build logger")
			e.Err = err
			return nil, e
		}
		opts = append(opts, WithLogger(l))
	}
	return New(cfg, opts...)
}

// Config returns a copy of the adapter's configuration.
func (a *Adapter) Config() config.Config { return a.cfg.Clone() }

// operation describes one Plaid endpoint.
type operation struct {
	name string
	path string
	kind Kind
}

var (
	opCreateLinkToken        = operation{name: "create_link_token", path: "/link/token/create", kind: KindCreateLinkToken}
	opExchangePublicToken    = operation{name: "exchange_public_token", path: "/item/public_token/exchange", kind: KindExchangePublicToken}
	opAuth                   = operation{name: "auth", path: "/auth/get", kind: KindAuth}
	opIdentity               = operation{name: "identity", path: "/identity/get", kind: KindIdentity}
	opSyncBankTransferEvents = operation{name: "sync_bank_transfer_event", path: "/bank_transfer/event/sync", kind: KindBankTransferSyncEvent}
)

// post sends payload to the operation's endpoint and maps the outcome:
// 200 returns the decoded body, 500 is KindAPIInternalServer and any other
// status is the operation's own kind. Error details carry the raw body.
func (a *Adapter) post(ctx context.Context, op operation, payload any) (any, error) {
	reqID := a.requestID()
	log := a.log.With(zap.String("operation", op.name), zap.String("request_id", reqID))
	start := time.Now()
	status := 0
	defer func() { a.metrics.observe(op.name, status, time.Since(start)) }()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, a.fail(log, op.kind, status, "", fmt.Errorf("encode request: %w", err))
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, a.fail(log, op.kind, status, "", fmt.Errorf("rate limit: %w", err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+op.path, bytes.NewReader(body))
	if err != nil {
		return nil, a.fail(log, op.kind, status, "", fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, a.fail(log, op.kind, status, "", err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, a.fail(log, op.kind, status, "", fmt.Errorf("read response: %w", err))
	}

	switch status {
	case http.StatusOK:
	case http.StatusInternalServerError:
		return nil, a.fail(log, KindAPIInternalServer, status, string(raw), nil)
	default:
		return nil, a.fail(log, op.kind, status, string(raw), nil)
	}

	out, err := decodeJSON(raw)
	if err != nil {
		return nil, a.fail(log, op.kind, status, string(raw), fmt.Errorf("decode response: %w", err))
	}
	log.Debug("plaid call succeeded", zap.Int("status", status), zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

// fail logs a redacted view of the failure and returns the typed error with
// the body kept verbatim.
func (a *Adapter) fail(log *zap.Logger, kind Kind, status int, body string, cause error) *Error {
	e := newError(kind, body)
	e.StatusCode = status
	e.Err = cause
	fields := []zap.Field{zap.Stringer("kind", kind), zap.Int("status", status)}
	if body != "" {
		fields = append(fields, zap.String("body", bodySnippet([]byte(body), defaultMaxLogBodyBytes)))
	}
	if cause != nil {
		fields = append(fields, zap.String("cause", RedactSecrets(cause.Error())))
	}
	log.Warn("plaid call failed", fields...)
	return e
}

// decodeJSON parses a body without converting numbers to float64, so the
// result re-encodes to the same JSON.
func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

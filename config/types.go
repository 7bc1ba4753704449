// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package config

import "time"

// ValidationError captures a configuration validation error and the env var it refers to.
type ValidationError struct {
	Field   string // empty for general error
	Summary string
	Detail  string
}

func (e ValidationError) Error() string {
	if e.Detail == "" {
		return e.Summary
	}
	return e.Summary + " " + e.Detail
}

// Config is the normalized adapter configuration. It is populated once and
// treated as read-only afterwards.
type Config struct {
	ClientID    string
	Secret      string
	BaseURL     string
	Environment string
	PublicKey   string

	ClientName      string
	CountryCodes    []string
	Language        string
	Products        []string
	AccountSubtypes []string

	HTTPTimeout      time.Duration
	RetryMaxAttempts int
	RetryBackoffBase time.Duration
	RetryMaxBackoff  time.Duration
	// RetryMethods lists the HTTP methods the transport may retry. Every
	// adapter call is a POST, so calls are only retried when POST is listed.
	RetryMethods       []string
	RateLimitPerMinute int
	LogLevel           string

	parseErrs []ValidationError
}

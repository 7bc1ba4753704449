// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package config

// Environment variable names read by the loader.
const (
	EnvClientID           = "PLAID_CLIENT_ID"
	EnvPublicKey          = "PLAID_PUBLIC_KEY"
	EnvSecret             = "PLAID_SECRET"
	EnvEnvironment        = "PLAID_ENV"
	EnvBaseURL            = "PLAID_BASE_URL"
	EnvClientName         = "PLAID_CLIENT_NAME"
	EnvCountryCodes       = "PLAID_COUNTRY_CODES"
	EnvLanguage           = "PLAID_LANGUAGE"
	EnvProducts           = "PLAID_PRODUCTS"
	EnvAccountSubtypes    = "PLAID_ACCOUNT_SUBTYPES"
	EnvHTTPTimeoutSeconds = "PLAID_HTTP_TIMEOUT_SECONDS"
	EnvRetryMaxAttempts   = "PLAID_RETRY_MAX_ATTEMPTS"
	EnvRetryBackoffBaseMs = "PLAID_RETRY_BACKOFF_BASE_MS"
	EnvRetryMaxBackoffMs  = "PLAID_RETRY_MAX_BACKOFF_MS"
	EnvRetryMethods       = "PLAID_RETRY_METHODS"
	EnvRateLimitPerMinute = "PLAID_RATE_LIMIT_PER_MINUTE"
	EnvLogLevel           = "PLAID_LOG_LEVEL"
)

// Centralized defaults
const (
	DefaultClientName         = "None"
	DefaultLanguage           = "en"
	DefaultHTTPTimeoutSeconds = 0
	DefaultRetryMaxAttempts   = 5
	DefaultRetryBackoffBaseMs = 10000
	DefaultRetryMaxBackoffMs  = 120000
	DefaultRateLimitPerMinute = 0
	defaultDotenvFile         = ".env"
)

// List defaults are functions so callers can never mutate a shared slice.

// DefaultCountryCodes returns the country codes used when PLAID_COUNTRY_CODES is unset.
func DefaultCountryCodes() []string { return []string{"US"} }

// DefaultProducts returns the products requested on first-link flows.
func DefaultProducts() []string { return []string{"auth"} }

// DefaultAccountSubtypes returns the depository subtypes offered on first-link flows.
func DefaultAccountSubtypes() []string { return []string{"checking", "savings"} }

// DefaultRetryMethods mirrors the stock idempotent-method allow list. POST is
// intentionally absent; see RetryMethods on Config.
func DefaultRetryMethods() []string {
	return []string{"HEAD", "GET", "PUT", "DELETE", "OPTIONS", "TRACE"}
}

var knownMethods = map[string]struct{}{
	"HEAD": {}, "GET": {}, "PUT": {}, "DELETE": {}, "OPTIONS": {}, "TRACE": {}, "POST": {}, "PATCH": {},
}

var knownLogLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {},
}

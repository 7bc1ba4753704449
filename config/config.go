// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// FromLookup derives a Config from the given lookup, applying defaults for
// every optional setting. It never fails; call Validate for the verdict.
func FromLookup(lookup LookupFunc) Config {
	r := &envReader{lookup: lookup}

	cfg := Config{
		// Base
		ClientID:    r.readString(EnvClientID),
		Secret:      r.readString(EnvSecret),
		BaseURL:     strings.TrimRight(r.readString(EnvBaseURL), "/"),
		Environment: r.readString(EnvEnvironment),
		PublicKey:   r.readString(EnvPublicKey),

		// Link defaults
		ClientName:      r.readStringDefault(EnvClientName, DefaultClientName),
		CountryCodes:    r.readListDefault(EnvCountryCodes, DefaultCountryCodes()),
		Language:        r.readStringDefault(EnvLanguage, DefaultLanguage),
		Products:        r.readListDefault(EnvProducts, DefaultProducts()),
		AccountSubtypes: r.readListDefault(EnvAccountSubtypes, DefaultAccountSubtypes()),

		// HTTP
		HTTPTimeout: time.Duration(r.readIntDefault(EnvHTTPTimeoutSeconds, DefaultHTTPTimeoutSeconds)) * time.Second,

		// Retry
		RetryMaxAttempts: r.readIntDefault(EnvRetryMaxAttempts, DefaultRetryMaxAttempts),
		RetryBackoffBase: time.Duration(r.readIntDefault(EnvRetryBackoffBaseMs, DefaultRetryBackoffBaseMs)) * time.Millisecond,
		RetryMaxBackoff:  time.Duration(r.readIntDefault(EnvRetryMaxBackoffMs, DefaultRetryMaxBackoffMs)) * time.Millisecond,
		RetryMethods:     upper(r.readListDefault(EnvRetryMethods, DefaultRetryMethods())),

		RateLimitPerMinute: r.readIntDefault(EnvRateLimitPerMinute, DefaultRateLimitPerMinute),
		LogLevel:           strings.ToLower(r.readString(EnvLogLevel)),
	}
	cfg.parseErrs = r.errs
	return cfg
}

// FromEnv derives a Config from the process environment.
func FromEnv() Config {
	return FromLookup(os.LookupEnv)
}

// Load reads the given dotenv files (".env" when none are given) and derives
// a Config with process environment values taking precedence. The process
// environment is not modified. A missing default file is not an error.
func Load(files ...string) (Config, error) {
	explicit := len(files) > 0
	if !explicit {
		files = []string{defaultDotenvFile}
	}
	values, err := godotenv.Read(files...)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read dotenv %v: %w", files, err)
		}
		values = nil
	}
	return FromLookup(chainLookup(os.LookupEnv, mapLookup(values))), nil
}

// validation per-section
func validateBase(c Config) []ValidationError {
	required := []struct {
		env   string
		value string
	}{
		{EnvClientID, c.ClientID},
		{EnvPublicKey, c.PublicKey},
		{EnvSecret, c.Secret},
		{EnvEnvironment, c.Environment},
		{EnvBaseURL, c.BaseURL},
	}
	var errs []ValidationError
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, ValidationError{Field: r.env, Summary: "Missing Plaid Configuration!", Detail: fmt.Sprintf("Set the %s environment variable.", r.env)})
		}
	}
	return errs
}

func validateLink(c Config) []ValidationError {
	var errs []ValidationError
	if len(c.CountryCodes) == 0 {
		errs = append(errs, ValidationError{Field: EnvCountryCodes, Summary: "Invalid Country Codes Configuration.", Detail: "At least one country code is required."})
	}
	if len(c.Products) == 0 {
		errs = append(errs, ValidationError{Field: EnvProducts, Summary: "Invalid Products Configuration.", Detail: "At least one product is required."})
	}
	return errs
}

func validateHTTP(c Config) []ValidationError {
	if c.HTTPTimeout < 0 || c.HTTPTimeout > 600*time.Second {
		return []ValidationError{{Field: EnvHTTPTimeoutSeconds, Summary: "Invalid HTTP Timeout Configuration.", Detail: fmt.Sprintf("%s must be between 0 and 600 seconds; got %s", EnvHTTPTimeoutSeconds, c.HTTPTimeout)}}
	}
	return nil
}

func validateRetry(c Config) []ValidationError {
	var errs []ValidationError
	if c.RetryMaxAttempts < 0 || c.RetryMaxAttempts > 10 {
		errs = append(errs, ValidationError{Field: EnvRetryMaxAttempts, Summary: "Invalid Retry Attempts Configuration.", Detail: fmt.Sprintf("%s must be between 0 and 10; got %d", EnvRetryMaxAttempts, c.RetryMaxAttempts)})
	}
	if c.RetryBackoffBase < 0 || c.RetryBackoffBase > 600*time.Second {
		errs = append(errs, ValidationError{Field: EnvRetryBackoffBaseMs, Summary: "Invalid Retry Backoff Configuration.", Detail: fmt.Sprintf("%s must be between 0 and 600000 milliseconds; got %d", EnvRetryBackoffBaseMs, c.RetryBackoffBase.Milliseconds())})
	}
	if c.RetryMaxBackoff < 0 || c.RetryMaxBackoff > 600*time.Second {
		errs = append(errs, ValidationError{Field: EnvRetryMaxBackoffMs, Summary: "Invalid Retry Backoff Configuration.", Detail: fmt.Sprintf("%s must be between 0 and 600000 milliseconds; got %d", EnvRetryMaxBackoffMs, c.RetryMaxBackoff.Milliseconds())})
	}
	if c.RetryBackoffBase > c.RetryMaxBackoff {
		errs = append(errs, ValidationError{Field: EnvRetryBackoffBaseMs, Summary: "Invalid Retry Backoff Configuration.", Detail: fmt.Sprintf("%s must be less than or equal to %s.", EnvRetryBackoffBaseMs, EnvRetryMaxBackoffMs)})
	}
	for _, m := range c.RetryMethods {
		if _, ok := knownMethods[m]; !ok {
			errs = append(errs, ValidationError{Field: EnvRetryMethods, Summary: "Invalid Retry Methods Configuration.", Detail: fmt.Sprintf("unknown HTTP method %q", m)})
		}
	}
	return errs
}

func validateMisc(c Config) []ValidationError {
	var errs []ValidationError
	if c.RateLimitPerMinute < 0 || c.RateLimitPerMinute > 100000 {
		errs = append(errs, ValidationError{Field: EnvRateLimitPerMinute, Summary: "Invalid Rate Limit Configuration.", Detail: fmt.Sprintf("%s must be between 0 and 100000; got %d", EnvRateLimitPerMinute, c.RateLimitPerMinute)})
	}
	if c.LogLevel != "" {
		if _, ok := knownLogLevels[c.LogLevel]; !ok {
			errs = append(errs, ValidationError{Field: EnvLogLevel, Summary: "Invalid Log Level Configuration.", Detail: fmt.Sprintf("%s must be one of debug, info, warn, error; got %q", EnvLogLevel, c.LogLevel)})
		}
	}
	return errs
}

// Validate reports every problem with the configuration. Required settings
// are checked first; if any is missing the remaining sections are skipped.
func (c Config) Validate() []ValidationError {
	all := validateBase(c)
	if len(all) == 0 { // if base fails, skip noisy follow-ups
		all = append(all, c.parseErrs...)
		all = append(all, validateLink(c)...)
		all = append(all, validateHTTP(c)...)
		all = append(all, validateRetry(c)...)
		all = append(all, validateMisc(c)...)
	}

	for i := range all {
		all[i] = sanitizeValidationError(all[i], c)
	}
	return all
}

// WithDefaults returns a copy of c with unset optional settings filled in,
// matching what FromLookup applies for absent variables. Retry settings are
// only defaulted when none of them was set, so an explicit
// RetryMaxAttempts of 0 keeps retries disabled.
func (c Config) WithDefaults() Config {
	c = c.Clone()
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.ClientName == "" {
		c.ClientName = DefaultClientName
	}
	if len(c.CountryCodes) == 0 {
		c.CountryCodes = DefaultCountryCodes()
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if len(c.Products) == 0 {
		c.Products = DefaultProducts()
	}
	if len(c.AccountSubtypes) == 0 {
		c.AccountSubtypes = DefaultAccountSubtypes()
	}
	if c.RetryMaxAttempts == 0 && c.RetryBackoffBase == 0 && c.RetryMaxBackoff == 0 && c.RetryMethods == nil {
		c.RetryMaxAttempts = DefaultRetryMaxAttempts
		c.RetryBackoffBase = DefaultRetryBackoffBaseMs * time.Millisecond
		c.RetryMaxBackoff = DefaultRetryMaxBackoffMs * time.Millisecond
	}
	if c.RetryMethods == nil {
		c.RetryMethods = DefaultRetryMethods()
	}
	c.RetryMethods = upper(c.RetryMethods)
	c.LogLevel = strings.ToLower(c.LogLevel)
	return c
}

// Clone returns a copy of c that shares no slices with it.
func (c Config) Clone() Config {
	c.CountryCodes = slices.Clone(c.CountryCodes)
	c.Products = slices.Clone(c.Products)
	c.AccountSubtypes = slices.Clone(c.AccountSubtypes)
	c.RetryMethods = slices.Clone(c.RetryMethods)
	c.parseErrs = slices.Clone(c.parseErrs)
	return c
}

// RetriesMethod reports whether the transport may retry requests using method.
func (c Config) RetriesMethod(method string) bool {
	method = strings.ToUpper(method)
	for _, m := range c.RetryMethods {
		if m == method {
			return true
		}
	}
	return false
}

// LogFields returns a redacted view of the configuration for structured logs.
func (c Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Environment),
		zap.String("base_url", c.BaseURL),
		zap.String("client_id", redactSecretValue(c.ClientID)),
		zap.String("secret", redactSecretValue(c.Secret)),
		zap.String("public_key", redactSecretValue(c.PublicKey)),
		zap.Strings("country_codes", c.CountryCodes),
		zap.Strings("products", c.Products),
		zap.Duration("http_timeout", c.HTTPTimeout),
		zap.Int("retry_max_attempts", c.RetryMaxAttempts),
		zap.Strings("retry_methods", c.RetryMethods),
		zap.Int("rate_limit_per_minute", c.RateLimitPerMinute),
	}
}

func upper(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}

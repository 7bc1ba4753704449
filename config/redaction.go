// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package config

import "strings"

// minRedactLen is the shortest credential value scrubbed from validation
// messages. Shorter values would match ordinary words.
const minRedactLen = 6

// redactSecretValue replaces a sensitive value with a stable token.
// If the value is empty, it returns the empty string to avoid adding tokens where not needed.
func redactSecretValue(v string) string {
	if v == "" {
		return ""
	}
	return "[REDACTED]"
}

// sanitizeValidationError returns a copy of the given validation error with secrets redacted.
func sanitizeValidationError(e ValidationError, c Config) ValidationError {
	replacements := map[string]string{}
	for _, secret := range []string{c.Secret, c.PublicKey, c.ClientID} {
		if len(secret) >= minRedactLen {
			replacements[secret] = redactSecretValue(secret)
		}
	}

	summary := e.Summary
	detail := e.Detail
	for raw, red := range replacements {
		if summary != "" {
			summary = strings.ReplaceAll(summary, raw, red)
		}
		if detail != "" {
			detail = strings.ReplaceAll(detail, raw, red)
		}
	}

	e.Summary = summary
	e.Detail = detail
	return e
}

// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package testhelpers

const (
	// ClientID is the fixture value for PLAID_CLIENT_ID.
	ClientID = "test-client-id"
	// Secret is the fixture value for PLAID_SECRET.
	Secret = "test-secret-value"
	// PublicKey is the fixture value for PLAID_PUBLIC_KEY.
	PublicKey = "test-public-key"
	// Environment is the fixture value for PLAID_ENV.
	Environment = "sandbox"
	// DefaultBaseURL is used when a test does not run a fake server.
	DefaultBaseURL = "https://sandbox.plaid.invalid"

	// OKBody is the default reply body of FakePlaid.
	OKBody = `{"ok": true}`
)

// RequiredEnvKeys lists the required variables in a stable order.
var RequiredEnvKeys = []string{
	"PLAID_CLIENT_ID",
	"PLAID_PUBLIC_KEY",
	"PLAID_SECRET",
	"PLAID_ENV",
	"PLAID_BASE_URL",
}

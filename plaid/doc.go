// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

// Package plaid is a thin HTTP adapter for the Plaid API.
//
// An Adapter is built from a validated config.Config and exposes one method
// per supported endpoint: link token creation, public token exchange, auth,
// identity and bank transfer event sync. Each call POSTs a JSON body and
// returns the decoded response verbatim.
//
// Failures are *Error values tagged with a Kind. HTTP 500 maps to
// KindAPIInternalServer for every endpoint; any other non-200 status maps to
// the endpoint's own kind. Detail always holds the upstream body unchanged:
//
//	res, err := a.GetAuth(ctx, plaid.AccountParams{AccessToken: tok})
//	if errors.Is(err, plaid.ErrAPIInternalServer) {
//		// upstream outage
//	}
//
// The transport retries 429 and 5xx responses only for methods listed in
// PLAID_RETRY_METHODS. The default list leaves out POST, so adapter calls are
// not retried unless POST is added.
package plaid

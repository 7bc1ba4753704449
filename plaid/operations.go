// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package plaid

import "context"

// CreateLinkToken calls /link/token/create. Without an access token the
// request asks for the configured products and depository account subtypes;
// with one it starts the update flow for an existing item instead.
func (a *Adapter) CreateLinkToken(ctx context.Context, p LinkTokenParams) (any, error) {
	return a.post(ctx, opCreateLinkToken, buildLinkTokenCreate(a.cfg, p))
}

// ExchangePublicToken calls /item/public_token/exchange. An empty token fails
// before any request is made.
func (a *Adapter) ExchangePublicToken(ctx context.Context, publicToken string) (any, error) {
	if publicToken == "" {
		return nil, newError(KindExchangePublicToken, "Missing mandatory public token!")
	}
	return a.post(ctx, opExchangePublicToken, buildPublicTokenExchange(a.cfg, publicToken))
}

// GetAuth calls /auth/get.
func (a *Adapter) GetAuth(ctx context.Context, p AccountParams) (any, error) {
	return a.post(ctx, opAuth, buildAccountData(a.cfg, p))
}

// GetIdentity calls /identity/get.
func (a *Adapter) GetIdentity(ctx context.Context, p AccountParams) (any, error) {
	return a.post(ctx, opIdentity, buildAccountData(a.cfg, p))
}

// SyncBankTransferEvents calls /bank_transfer/event/sync.
func (a *Adapter) SyncBankTransferEvents(ctx context.Context, p BankTransferEventSyncParams) (any, error) {
	return a.post(ctx, opSyncBankTransferEvents, buildBankTransferEventSync(a.cfg, p))
}

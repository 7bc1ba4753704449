// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package plaid

import "github.com/devops-wiz/plaid-adapter/config"

// LinkTokenParams are the caller-supplied inputs to CreateLinkToken.
// A non-empty AccessToken selects the update (re-authentication) flow.
type LinkTokenParams struct {
	UserID      string
	AccessToken string
}

// AccountParams are the inputs to GetAuth and GetIdentity. AccountIDs, when
// non-empty, restricts the response to those accounts.
type AccountParams struct {
	AccessToken string
	AccountIDs  []string
}

// BankTransferEventSyncParams are the optional paging inputs to
// SyncBankTransferEvents. A nil field is left out of the request entirely.
type BankTransferEventSyncParams struct {
	AfterID *int
	Count   *int
}

// Int returns a pointer to v, for the optional paging fields.
func Int(v int) *int { return &v }

// credentials is embedded in every request body.
type credentials struct {
	ClientID string `json:"client_id"`
	Secret   string `json:"secret"`
}

type linkTokenUser struct {
	ClientUserID string `json:"client_user_id"`
}

type depositoryFilter struct {
	AccountSubtypes []string `json:"account_subtypes"`
}

type accountFilters struct {
	Depository depositoryFilter `json:"depository"`
}

type linkTokenCreateRequest struct {
	credentials
	ClientName   string        `json:"client_name"`
	CountryCodes []string      `json:"country_codes"`
	Language     string        `json:"language"`
	User         linkTokenUser `json:"user"`

	// update flow
	AccessToken string `json:"access_token,omitempty"`

	// first-link flow
	Products       []string        `json:"products,omitempty"`
	AccountFilters *accountFilters `json:"account_filters,omitempty"`
}

type publicTokenExchangeRequest struct {
	credentials
	PublicToken string `json:"public_token"`
}

type accountOptions struct {
	AccountIDs []string `json:"account_ids"`
}

type accountDataRequest struct {
	credentials
	AccessToken string          `json:"access_token"`
	Options     *accountOptions `json:"options,omitempty"`
}

type bankTransferEventSyncRequest struct {
	credentials
	AfterID *int `json:"after_id,omitempty"`
	Count   *int `json:"count,omitempty"`
}

func newCredentials(cfg config.Config) credentials {
	return credentials{ClientID: cfg.ClientID, Secret: cfg.Secret}
}

func buildLinkTokenCreate(cfg config.Config, p LinkTokenParams) linkTokenCreateRequest {
	req := linkTokenCreateRequest{
		credentials:  newCredentials(cfg),
		ClientName:   cfg.ClientName,
		CountryCodes: cfg.CountryCodes,
		Language:     cfg.Language,
		User:         linkTokenUser{ClientUserID: p.UserID},
	}
	if p.AccessToken != "" {
		req.AccessToken = p.AccessToken
		return req
	}
	req.Products = cfg.Products
	req.AccountFilters = &accountFilters{Depository: depositoryFilter{AccountSubtypes: cfg.AccountSubtypes}}
	return req
}

func buildPublicTokenExchange(cfg config.Config, publicToken string) publicTokenExchangeRequest {
	return publicTokenExchangeRequest{credentials: newCredentials(cfg), PublicToken: publicToken}
}

func buildAccountData(cfg config.Config, p AccountParams) accountDataRequest {
	req := accountDataRequest{credentials: newCredentials(cfg), AccessToken: p.AccessToken}
	if len(p.AccountIDs) > 0 {
		req.Options = &accountOptions{AccountIDs: p.AccountIDs}
	}
	return req
}

func buildBankTransferEventSync(cfg config.Config, p BankTransferEventSyncParams) bankTransferEventSyncRequest {
	return bankTransferEventSyncRequest{credentials: newCredentials(cfg), AfterID: p.AfterID, Count: p.Count}
}

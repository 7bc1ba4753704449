// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package plaid

import (
	"errors"
	"fmt"
)

// Kind classifies an adapter failure.
type Kind int

const (
	// KindAdapter is the catch-all kind; matching against ErrAdapter accepts
	// every kind except KindConfiguration.
	KindAdapter Kind = iota
	KindConfiguration
	KindAPIInternalServer
	KindCreateLinkToken
	KindExchangePublicToken
	KindAuth
	KindIdentity
	KindBankTransferSyncEvent
)

var kindNames = map[Kind]string{
	KindAdapter:               "adapter",
	KindConfiguration:         "configuration",
	KindAPIInternalServer:     "api_internal_server",
	KindCreateLinkToken:       "create_link_token",
	KindExchangePublicToken:   "exchange_public_token",
	KindAuth:                  "auth",
	KindIdentity:              "identity",
	KindBankTransferSyncEvent: "bank_transfer_sync_event",
}

var defaultMessages = map[Kind]string{
	KindAdapter:               "Plaid Exception!",
	KindConfiguration:         "Plaid Configuration missing!",
	KindAPIInternalServer:     "Plaid Api Internal Error occurred!",
	KindCreateLinkToken:       "Plaid Exception while creating link token!",
	KindExchangePublicToken:   "Plaid Exception while exchanging public token for an access token!",
	KindAuth:                  "Plaid Exception while fetching authentication details!",
	KindIdentity:              "Plaid Exception while fetching user identity details!",
	KindBankTransferSyncEvent: "Plaid Exception while syncing bank transfer events!",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// DefaultMessage returns the fixed human readable message for the kind.
func (k Kind) DefaultMessage() string {
	if m, ok := defaultMessages[k]; ok {
		return m
	}
	return defaultMessages[KindAdapter]
}

// Error is the single error type returned by the adapter.
//
// Detail carries the upstream response body verbatim, or a literal message
// for client-side failures. StatusCode is 0 when no response was received.
type Error struct {
	Kind       Kind
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

// Sentinels for errors.Is matching by kind.
var (
	ErrAdapter               = &Error{Kind: KindAdapter}
	ErrConfiguration         = &Error{Kind: KindConfiguration}
	ErrAPIInternalServer     = &Error{Kind: KindAPIInternalServer}
	ErrCreateLinkToken       = &Error{Kind: KindCreateLinkToken}
	ErrExchangePublicToken   = &Error{Kind: KindExchangePublicToken}
	ErrAuth                  = &Error{Kind: KindAuth}
	ErrIdentity              = &Error{Kind: KindIdentity}
	ErrBankTransferSyncEvent = &Error{Kind: KindBankTransferSyncEvent}
)

func newError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Message: kind.DefaultMessage(), Detail: detail}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.DefaultMessage()
	}
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s %s: %v", msg, e.Detail, e.Err)
	case e.Detail != "":
		return msg + " " + e.Detail
	case e.Err != nil:
		return fmt.Sprintf("%s %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches by kind. A target of kind KindAdapter matches any adapter
// failure other than a configuration failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	if t.Kind == KindAdapter {
		return e.Kind != KindConfiguration
	}
	return e.Kind == t.Kind
}

// KindOf returns the kind of err, or false when err is not an adapter error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

// Package config loads the Plaid adapter configuration.
//
// Values come from the process environment, optionally backed by a dotenv
// file. Required credentials are all-or-nothing: Validate reports every
// missing one and the adapter refuses to start until all are present.
// Optional link defaults and transport settings fall back to the constants
// in this package.
package config

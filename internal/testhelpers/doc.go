// Package testhelpers provides shared testing utilities for the adapter and
// config packages.
//
// Intended use:
//   - Env fixtures: the full set of required PLAID_* variables, either as a
//     lookup func or applied with t.Setenv.
//   - FakePlaid: an httptest server that records every request body and
//     replays canned replies per path, including reply sequences for retry
//     tests.
//
// Conventions:
//   - Keep dependencies minimal and avoid importing production packages so
//     internal tests of those packages can use these helpers.
//   - Fixture credentials are obviously fake and never real secrets.
//
// This package is for test code and is not part of the adapter's public API.
package testhelpers

// Package directory talks to the remote, read-only people directory.
//
// # Overview
//
// The package provides:
//  1. The Person record and the fixed field projection requested from the
//     service (see Fields).
//  2. A transport-agnostic contract (see Fetcher) used by the directory view
//     controller to load one page of people.
//  3. An HTTP implementation (see HTTPClient) issuing
//     GET {base}?limit=..&skip=..&select=.. and decoding the "users" array.
//
// # Error Handling
//
// Every failure (transport, non-2xx status, malformed or incomplete JSON) is
// wrapped so that errors.Is(err, common.ErrFetchFailed) holds. Context
// cancellation is still visible through errors.Is(err, context.Canceled).
//
// # Metrics
//
// HTTPClient records fetch outcomes and latency with Prometheus collectors
// (see NewMetrics). A nil *Metrics disables recording.
package directory

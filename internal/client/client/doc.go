// Package client contains the client-side remote and bootstrap pieces.
//
// # Overview
//
//  1. Client is the transport-agnostic contract for the ideas API: listing
//     and creating ideas, saving profiles, presigned image uploads, the
//     signup form submission and a health Ping.
//  2. HTTPClient implements it with JSON over HTTP (go-cleanhttp transport)
//     and probes liveness through the gRPC health service.
//  3. InitDatabase and RunMigrations open the local SQLite store and apply
//     the embedded goose migrations.
//
// # Error Handling
//
// Transport failures, and an unconfigured endpoint, surface as
// ErrUnavailable. A reachable remote that rejects a request yields a
// *StatusError carrying the status code. Callers decide which of the two
// means "fall back to local".
package client

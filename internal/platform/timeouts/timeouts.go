// Package timeouts defines shared timeout constants used across the app.
// Centralizing these values prevents drift between boundaries and makes
// the durations discoverable.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Request caps the time allowed for a single request against the store
// and the identity provider combined.
const Request = 5 * time.Second

// Introspection caps the wait time for one session introspection call.
const Introspection = 2 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

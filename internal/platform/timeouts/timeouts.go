// Package timeouts defines shared timeout constants for the HTTP services.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// SessionSweep is the minimum interval between idle-session sweeps.
const SessionSweep = time.Minute

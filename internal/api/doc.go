// Package api implements the HTTP transport for the Dymo API: request
// construction, the resilience layer (retry, backoff, fallback, rate-limit
// tracking) and typed endpoint calls. The public SDK package wraps it with
// parameter validation and response types.
package api

// Package otel reserves the OpenTelemetry observer for scopes and channels.
// Until a tracer-backed implementation lands it offers Nop, which satisfies
// both observer interfaces and records nothing.
package otel

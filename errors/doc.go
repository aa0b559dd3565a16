// Package errors provides the structured error type shared by scopekit
// packages. Every failure carries a machine-readable code so callers can
// branch on the kind of failure (no provider, type mismatch, ...) without
// parsing messages.
package errors

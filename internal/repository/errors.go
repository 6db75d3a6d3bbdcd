// Package repository defines error types that are reused across the
// booking store. Handlers and services use these sentinels to tell a
// missing row apart from a broken connection.
package repository

import "errors"

// ErrNotFound is returned when no booking exists with the requested ID.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("booking not found")

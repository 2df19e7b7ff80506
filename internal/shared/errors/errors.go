package errors

import "errors"

// Domain errors
var (
	// Input errors
	ErrEmptyTarget = errors.New("target cannot be empty")
	ErrEmptyDomain = errors.New("domain cannot be empty")

	// Certificate-transparency errors
	ErrSourceUnavailable = errors.New("certificate transparency source unavailable")
	ErrMalformedPayload  = errors.New("malformed certificate transparency payload")
	ErrPayloadTooLarge   = errors.New("certificate transparency payload too large")

	// Probe errors
	ErrNotResolvable = errors.New("host does not resolve")
	ErrNotAlive      = errors.New("host did not answer http or https")
	ErrFetchFailed   = errors.New("fetch_failed")

	// Signature errors
	ErrInvalidSignature = errors.New("invalid signature table")

	// Output errors
	ErrPathEscape = errors.New("path escapes output directory")
)

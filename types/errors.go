package types

import "cosmossdk.io/errors"

var (
	// ErrDecode indicates a payload that could not be decoded for its type URL or path.
	ErrDecode = errors.Register(ModuleName, 2, "payload decode failed")
	// ErrValidation indicates a field length, format, or uniqueness violation.
	ErrValidation = errors.Register(ModuleName, 3, "validation failed")
	// ErrUnauthorized indicates a sender/issuer/owner mismatch.
	ErrUnauthorized = errors.Register(ModuleName, 4, "unauthorized")
	// ErrNotFound indicates a reference to a nonexistent denom, class, or token.
	ErrNotFound = errors.Register(ModuleName, 5, "not found")
	// ErrUnknownMessageType indicates an execute envelope with an unroutable type URL.
	ErrUnknownMessageType = errors.Register(ModuleName, 6, "unknown message type")
	// ErrUnexpectedQuery indicates a query path no module answers.
	ErrUnexpectedQuery = errors.Register(ModuleName, 7, "unexpected stargate query")
)

package domain

import "errors"

var (
	// ErrInvalidPostalCode means the input is not exactly six ASCII digits.
	// Callers should prompt for re-entry.
	ErrInvalidPostalCode = errors.New("invalid postal code")

	// ErrUnknownPrefix means the postal code is well formed but its first two
	// digits are not in the prefix table. Callers fall back to manual selection.
	ErrUnknownPrefix = errors.New("unknown postal code prefix")

	// ErrUnknownCode means a region or district code is absent from its catalog.
	ErrUnknownCode = errors.New("unknown location code")

	// ErrNoProfileID means a profile message carried neither an id nor a key.
	ErrNoProfileID = errors.New("profile id missing")

	// ErrProfileNotFound means no stored profile has the requested id.
	ErrProfileNotFound = errors.New("profile not found")
)

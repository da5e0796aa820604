package apperrors

import (
	"errors"
)

var (
	ErrIdentifierEmpty        = errors.New("identifier is empty")
	ErrIdentifierHasDelimiter = errors.New("identifier contains field delimiter '|'")
	ErrIdentifierTooLong      = errors.New("identifier is too long")
	ErrIdentifierPrefix       = errors.New("identifier has no required prefix")

	ErrInvalidDate     = errors.New("start date is not a valid YYYY-MM-DD date")
	ErrInvalidDuration = errors.New("duration must be a positive number of days")

	ErrMalformedEncoding = errors.New("token is not valid base64 text")
	ErrShortBuffer       = errors.New("destination buffer is too small")
	ErrPayloadTooLarge   = errors.New("token payload is too large")

	ErrMissingDelimiter = errors.New("missing field delimiter, tampered or malformed token")
	ErrInvalidTimestamp = errors.New("expiry timestamp is not a decimal integer")

	ErrExpired          = errors.New("license is expired")
	ErrClockUnavailable = errors.New("current time is unavailable")

	ErrEmptyKey = errors.New("obfuscation key must not be empty")
)

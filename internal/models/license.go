package models

import (
	"time"
)

// Record is the structured content of a license token
type Record struct {
	Identifier string
	Expiry     int64 // seconds since the Unix epoch
}

// ExpiresAt returns expiry as time in local timezone
func (r Record) ExpiresAt() time.Time {
	return time.Unix(r.Expiry, 0)
}

// License issued by the generator
type IssuedLicense struct {
	Token  string
	Record Record
}

type Status int

const (
	StatusValid Status = iota
	StatusExpired
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "VALID"
	case StatusExpired:
		return "EXPIRED"
	default:
		return "INVALID"
	}
}

// Process exit code the validator tool reports for the status
func (s Status) ExitCode() int {
	return int(s)
}

// Result of token validation.
// Valid is meaningful only if Parsed is true.
type Result struct {
	Parsed bool
	Record Record
	Valid  bool

	// Moment the validity was checked at, zero if the clock failed
	CheckedAt time.Time

	// Diagnostic reason of the failure, nil for valid licenses.
	// Callers must not need it to interpret the result.
	Err error
}

func (r Result) Status() Status {
	switch {
	case !r.Parsed:
		return StatusInvalid
	case r.Valid:
		return StatusValid
	default:
		return StatusExpired
	}
}

package expiry

import (
	"fmt"
	"math"
	"time"

	"github.com/nkiryanov/offlicense/internal/apperrors"
)

const (
	DateLayout = "2006-01-02"

	MaxDurationDays = math.MaxInt32

	secondsPerDay = 24 * 60 * 60
)

// Check s is exactly YYYY-MM-DD: 10 characters, digits and hyphens at fixed positions.
// Calendar validity is not checked here.
func IsDateFormat(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}

	for i := 0; i < len(s); i++ {
		switch i {
		case 4, 7:
			if s[i] != '-' {
				return false
			}
		default:
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}
	}

	return true
}

// ParseStartDate returns midnight of the date in loc (time.Local if nil).
// Daylight saving offset is the one in effect for that date.
func ParseStartDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	if !IsDateFormat(s) {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, s)
	}

	start, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidDate, err)
	}

	return start, nil
}

// Compute expiry timestamp: start date midnight plus whole days of 86400 seconds
func Compute(startDate string, durationDays int, loc *time.Location) (int64, error) {
	if durationDays <= 0 || durationDays > MaxDurationDays {
		return 0, fmt.Errorf("%w: got %d", apperrors.ErrInvalidDuration, durationDays)
	}

	start, err := ParseStartDate(startDate, loc)
	if err != nil {
		return 0, err
	}

	return start.Unix() + int64(durationDays)*secondsPerDay, nil
}

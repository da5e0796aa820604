package testutil

import (
	"errors"
	"time"

	"github.com/nkiryanov/offlicense/internal/service/codec"
	"github.com/nkiryanov/offlicense/internal/service/obfuscate"
)

var ErrClockBroken = errors.New("clock is broken")

// Clock that always returns the same time (or error if set)
type FixedClock struct {
	Time time.Time
	Err  error
}

func (c FixedClock) Now() (time.Time, error) {
	return c.Time, c.Err
}

// Clock that can't tell the time
func BrokenClock() FixedClock {
	return FixedClock{Err: ErrClockBroken}
}

func MustParseTime(value string) time.Time {
	dt, err := time.Parse("2006-01-02 15:04:05Z07:00", value)
	if err != nil {
		panic(err)
	}
	return dt
}

// Build token from arbitrary payload the way the generator does.
// Useful to craft structurally broken payloads that the generator refuses to produce.
func Token(payload string, key obfuscate.Key) string {
	return codec.StdEncoding.EncodeToString(obfuscate.Transform([]byte(payload), key))
}

package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/offlicense/internal/apperrors"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone %s not available: %v", name, err)
	}
	return loc
}

func TestExpiry_IsDateFormat(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"2024-01-01", true},
		{"2024-13-01", true}, // format only
		{"2024-1-01", false},
		{"24-01-01", false},
		{"2024/01/01", false},
		{"2024-01-01 ", false},
		{"2024-01-0a", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			require.Equal(t, tt.expected, IsDateFormat(tt.value))
		})
	}
}

func TestExpiry_ParseStartDate(t *testing.T) {
	t.Run("local midnight", func(t *testing.T) {
		got, err := ParseStartDate("2024-01-01", time.UTC)

		require.NoError(t, err)
		require.Equal(t, int64(1704067200), got.Unix())
	})

	t.Run("nil location is local", func(t *testing.T) {
		got, err := ParseStartDate("2024-01-01", nil)

		require.NoError(t, err)
		require.Equal(t, time.Local, got.Location())
		require.Equal(t, 0, got.Hour())
	})

	t.Run("daylight saving resolved for the date", func(t *testing.T) {
		loc := mustLoadLocation(t, "Europe/Berlin")

		winter, err := ParseStartDate("2024-01-15", loc)
		require.NoError(t, err)
		summer, err := ParseStartDate("2024-07-15", loc)
		require.NoError(t, err)

		_, winterOffset := winter.Zone()
		_, summerOffset := summer.Zone()
		require.Equal(t, 3600, winterOffset)
		require.Equal(t, 7200, summerOffset)
	})

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name  string
			value string
		}{
			{"invalid month", "2024-13-01"},
			{"invalid day", "2024-01-32"},
			{"not leap year", "2023-02-29"},
			{"zero month", "2024-00-10"},
			{"short", "2024-1-1"},
			{"garbage", "yesterday"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseStartDate(tt.value, time.UTC)

				require.ErrorIs(t, err, apperrors.ErrInvalidDate)
			})
		}
	})
}

func TestExpiry_Compute(t *testing.T) {
	t.Run("whole days from midnight", func(t *testing.T) {
		got, err := Compute("2024-01-01", 30, time.UTC)

		require.NoError(t, err)
		require.Equal(t, int64(1704067200+30*86400), got)
	})

	t.Run("leap day", func(t *testing.T) {
		got, err := Compute("2024-02-29", 1, time.UTC)

		require.NoError(t, err)
		require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Unix(), got)
	})

	t.Run("max duration", func(t *testing.T) {
		got, err := Compute("2024-01-01", MaxDurationDays, time.UTC)

		require.NoError(t, err)
		require.Equal(t, int64(1704067200)+int64(MaxDurationDays)*86400, got)
	})

	t.Run("invalid duration", func(t *testing.T) {
		tooLong := MaxDurationDays
		tooLong++

		for _, days := range []int{0, -1, tooLong} {
			_, err := Compute("2024-01-01", days, time.UTC)

			require.ErrorIs(t, err, apperrors.ErrInvalidDuration, "days=%d", days)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := Compute("2024-13-01", 30, time.UTC)

		require.ErrorIs(t, err, apperrors.ErrInvalidDate)
	})
}

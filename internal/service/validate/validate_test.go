package validate

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"2024-01-01", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-1-01", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			require.Equal(t, tt.expected, Date(tt.value))
		})
	}
}

func TestNoDelimiter(t *testing.T) {
	require.True(t, NoDelimiter("ABC123"))
	require.True(t, NoDelimiter(""))
	require.False(t, NoDelimiter("ABC|123"))
	require.False(t, NoDelimiter("|"))
}

func TestNew(t *testing.T) {
	type request struct {
		Identifier string `json:"identifier" validate:"required,nodelim"`
		StartDate  string `json:"start_date" validate:"required,licensedate"`
		Ignored    string `json:"-" validate:"required"`
	}

	v := New()

	t.Run("valid", func(t *testing.T) {
		err := v.Struct(request{Identifier: "ABC123", StartDate: "2024-01-01", Ignored: "x"})

		require.NoError(t, err)
	})

	t.Run("custom tags and json names", func(t *testing.T) {
		err := v.Struct(request{Identifier: "ABC|123", StartDate: "2024-13-01", Ignored: "x"})
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))

		got := map[string]string{}
		for _, fe := range verrs {
			got[fe.Field()] = fe.Tag()
		}
		require.Equal(t, map[string]string{
			"identifier": TagNoDelimiter,
			"start_date": TagDate,
		}, got)
	})
}

package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nkiryanov/offlicense/internal/apperrors"
	"github.com/nkiryanov/offlicense/internal/models"
	"github.com/nkiryanov/offlicense/internal/testutil"
)

var (
	validResult = models.Result{
		Parsed:    true,
		Valid:     true,
		Record:    models.Record{Identifier: "ABC123", Expiry: 1706659200},
		CheckedAt: testutil.MustParseTime("2024-01-02 10:00:00Z"),
	}

	invalidResult = models.Result{
		Err: apperrors.ErrMissingDelimiter,
	}
)

func TestRender_NewReport(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		report := NewReport(validResult, time.UTC)

		expiry := int64(1706659200)
		require.Equal(t, Report{
			Status:     "VALID",
			Identifier: "ABC123",
			Expiry:     &expiry,
			ExpiresAt:  "2024-01-31 00:00:00",
			CheckedAt:  "2024-01-02 10:00:00",
		}, report)
	})

	t.Run("invalid", func(t *testing.T) {
		report := NewReport(invalidResult, time.UTC)

		require.Equal(t, Report{
			Status:    "INVALID",
			ExpiresAt: notAvailable,
			CheckedAt: noClock,
			Reason:    apperrors.ErrMissingDelimiter.Error(),
		}, report)
	})

	t.Run("local time", func(t *testing.T) {
		report := NewReport(validResult, time.FixedZone("UTC+3", 3*60*60))

		require.Equal(t, "2024-01-31 03:00:00", report.ExpiresAt)
		require.Equal(t, "2024-01-02 13:00:00", report.CheckedAt)
	})
}

func TestRender_Text(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		buf := &bytes.Buffer{}

		err := Write(buf, FormatText, NewReport(validResult, time.UTC))

		require.NoError(t, err)
		require.Equal(t, ""+
			"Parsed Expiry:  2024-01-31 00:00:00\n"+
			"Current Time:   2024-01-02 10:00:00\n"+
			"Result:         VALID\n"+
			"Identifier:     ABC123\n",
			buf.String(),
		)
	})

	t.Run("invalid has no identifier", func(t *testing.T) {
		buf := &bytes.Buffer{}

		err := Write(buf, FormatText, NewReport(invalidResult, time.UTC))

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Result:         INVALID\n")
		assert.Contains(t, buf.String(), notAvailable)
		assert.NotContains(t, buf.String(), "Identifier:")
	})
}

func TestRender_JSON(t *testing.T) {
	buf := &bytes.Buffer{}

	err := Write(buf, FormatJSON, NewReport(validResult, time.UTC))

	require.NoError(t, err)
	assert.JSONEq(t, `{
			"status": "VALID",
			"identifier": "ABC123",
			"expiry": 1706659200,
			"expires_at": "2024-01-31 00:00:00",
			"checked_at": "2024-01-02 10:00:00"
		}`,
		buf.String(),
	)
}

func TestRender_YAML(t *testing.T) {
	buf := &bytes.Buffer{}

	err := Write(buf, FormatYAML, NewReport(invalidResult, time.UTC))
	require.NoError(t, err)

	var got map[string]any
	err = yaml.Unmarshal(buf.Bytes(), &got)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"status":     "INVALID",
		"expires_at": notAvailable,
		"checked_at": noClock,
		"reason":     apperrors.ErrMissingDelimiter.Error(),
	}, got)
}

func TestRender_UnknownFormat(t *testing.T) {
	require.False(t, IsFormat("xml"))

	err := Write(&bytes.Buffer{}, "xml", Report{})

	require.Error(t, err)
}

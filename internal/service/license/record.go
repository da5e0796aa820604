package license

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/nkiryanov/offlicense/internal/apperrors"
	"github.com/nkiryanov/offlicense/internal/models"
	"github.com/nkiryanov/offlicense/internal/service/validate"
)

// Serialize record as "<identifier>|<expiry>" payload
func Serialize(rec models.Record) ([]byte, error) {
	switch {
	case rec.Identifier == "":
		return nil, apperrors.ErrIdentifierEmpty
	case !validate.NoDelimiter(rec.Identifier):
		return nil, apperrors.ErrIdentifierHasDelimiter
	}

	buf := make([]byte, 0, len(rec.Identifier)+1+20)
	buf = append(buf, rec.Identifier...)
	buf = append(buf, validate.Delimiter)
	buf = strconv.AppendInt(buf, rec.Expiry, 10)

	return buf, nil
}

// Parse payload produced by Serialize.
// Identifier is everything before the first delimiter and must not be longer than maxIdentifier bytes.
func Parse(payload []byte, maxIdentifier int) (models.Record, error) {
	var rec models.Record

	pos := bytes.IndexByte(payload, validate.Delimiter)
	if pos == -1 {
		return rec, apperrors.ErrMissingDelimiter
	}

	if pos > maxIdentifier {
		return rec, fmt.Errorf("%w: %d bytes, max %d", apperrors.ErrIdentifierTooLong, pos, maxIdentifier)
	}

	expiry, err := parseTimestamp(string(payload[pos+1:]))
	if err != nil {
		return rec, err
	}

	rec.Identifier = string(payload[:pos])
	rec.Expiry = expiry

	return rec, nil
}

// Decimal integer with optional minus sign, nothing else is allowed
func parseTimestamp(s string) (int64, error) {
	if s == "" || strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidTimestamp, s)
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidTimestamp, s)
	}

	return v, nil
}

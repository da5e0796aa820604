// Package license issues and validates offline license tokens.
//
// Token is the record payload "<identifier>|<expiry>" XORed with the shared key
// and encoded with padded base64.
package license

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nkiryanov/offlicense/internal/apperrors"
	"github.com/nkiryanov/offlicense/internal/logger"
	"github.com/nkiryanov/offlicense/internal/models"
	"github.com/nkiryanov/offlicense/internal/service/codec"
	"github.com/nkiryanov/offlicense/internal/service/expiry"
	"github.com/nkiryanov/offlicense/internal/service/obfuscate"
	"github.com/nkiryanov/offlicense/internal/service/validate"
)

const (
	// Largest decoded payload accepted by validator
	DefaultMaxPayload = 511

	// Largest identifier accepted by validator
	DefaultMaxIdentifier = 255
)

type Clock interface {
	Now() (time.Time, error)
}

type SystemClock struct{}

func (SystemClock) Now() (time.Time, error) {
	return time.Now(), nil
}

// Service config with sensible defaults
type Config struct {
	// Shared obfuscation key
	// Required to be set
	Key obfuscate.Key

	// Size limits, defaults are used if not set
	MaxPayload    int
	MaxIdentifier int

	// If set, identifiers must start with the prefix
	IdentifierPrefix string

	// Location start dates are interpreted in, time.Local if not set
	Location *time.Location

	// Source of current time for validation, system clock if not set
	Clock Clock
}

type GenerateRequest struct {
	Identifier   string `json:"identifier" validate:"required,nodelim"`
	StartDate    string `json:"start_date" validate:"required,licensedate"`
	DurationDays int    `json:"duration_days" validate:"gt=0,lte=2147483647"`
}

type Service struct {
	key obfuscate.Key

	maxPayload    int
	maxIdentifier int
	prefix        string

	location *time.Location
	clock    Clock

	requests *validator.Validate
	log      logger.Logger
}

func New(cfg Config, log logger.Logger) (*Service, error) {
	if len(cfg.Key) == 0 {
		return nil, apperrors.ErrEmptyKey
	}

	setDefaultInt := func(field *int, def int) {
		if *field <= 0 {
			*field = def
		}
	}
	setDefaultInt(&cfg.MaxPayload, DefaultMaxPayload)
	setDefaultInt(&cfg.MaxIdentifier, DefaultMaxIdentifier)

	if cfg.MaxIdentifier >= cfg.MaxPayload {
		return nil, fmt.Errorf("max identifier (%d) must be less than max payload (%d)", cfg.MaxIdentifier, cfg.MaxPayload)
	}

	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Service{
		key:           cfg.Key,
		maxPayload:    cfg.MaxPayload,
		maxIdentifier: cfg.MaxIdentifier,
		prefix:        cfg.IdentifierPrefix,
		location:      cfg.Location,
		clock:         cfg.Clock,
		requests:      validate.New(),
		log:           log,
	}, nil
}

// Generate token for identifier valid for DurationDays days starting at StartDate midnight.
// Token is returned only if a validator with the same config accepts its structure.
func (s *Service) Generate(req GenerateRequest) (models.IssuedLicense, error) {
	var issued models.IssuedLicense

	log := s.log.With("issue_id", uuid.NewString())

	if err := s.checkRequest(req); err != nil {
		log.Debug("license request rejected", "reason", err)
		return issued, fmt.Errorf("invalid license request: %w", err)
	}

	exp, err := expiry.Compute(req.StartDate, req.DurationDays, s.location)
	if err != nil {
		return issued, fmt.Errorf("invalid license request: %w", err)
	}

	rec := models.Record{Identifier: req.Identifier, Expiry: exp}
	payload, err := Serialize(rec)
	if err != nil {
		return issued, fmt.Errorf("invalid license request: %w", err)
	}

	if len(payload) > s.maxPayload {
		return issued, fmt.Errorf("invalid license request: %w: %d bytes, max %d", apperrors.ErrPayloadTooLarge, len(payload), s.maxPayload)
	}

	obfuscate.TransformInPlace(payload, s.key)
	issued = models.IssuedLicense{
		Token:  codec.StdEncoding.EncodeToString(payload),
		Record: rec,
	}

	// Identifier is never logged
	log.Info("license issued",
		"start_date", req.StartDate,
		"duration_days", req.DurationDays,
		"expires_at", rec.ExpiresAt().In(s.location),
	)

	return issued, nil
}

// Validate token and check its expiry against current time.
// Any failure is reported through the result, the reason is kept in Result.Err.
func (s *Service) Validate(token string) models.Result {
	result := s.evaluate(token)

	switch {
	case !result.Parsed:
		s.log.Debug("license token rejected", "reason", result.Err)
	case !result.Valid:
		s.log.Debug("license is not valid", "reason", result.Err, "expiry", result.Record.Expiry)
	default:
		s.log.Debug("license is valid", "expiry", result.Record.Expiry)
	}

	return result
}

func (s *Service) evaluate(token string) models.Result {
	var result models.Result

	// Reject oversized and empty tokens before decoding anything
	size := codec.DecodedLen(token)
	switch {
	case size == 0:
		result.Err = fmt.Errorf("%w: empty payload", apperrors.ErrMalformedEncoding)
		return result
	case size > s.maxPayload:
		result.Err = fmt.Errorf("%w: %d bytes, max %d", apperrors.ErrPayloadTooLarge, size, s.maxPayload)
		return result
	}

	payload := make([]byte, size)
	n, err := codec.StdEncoding.Decode(payload, token)
	if err != nil {
		result.Err = err
		return result
	}
	payload = payload[:n]

	obfuscate.TransformInPlace(payload, s.key)

	rec, err := Parse(payload, s.maxIdentifier)
	if err != nil {
		result.Err = err
		return result
	}

	if !strings.HasPrefix(rec.Identifier, s.prefix) {
		result.Err = fmt.Errorf("%w: %q", apperrors.ErrIdentifierPrefix, s.prefix)
		return result
	}

	result.Parsed = true
	result.Record = rec

	now, err := s.clock.Now()
	if err != nil {
		// Fail closed
		result.Err = fmt.Errorf("%w: %v", apperrors.ErrClockUnavailable, err)
		return result
	}

	result.CheckedAt = now
	result.Valid = now.Unix() <= rec.Expiry
	if !result.Valid {
		result.Err = apperrors.ErrExpired
	}

	return result
}

func (s *Service) checkRequest(req GenerateRequest) error {
	if err := s.requests.Struct(req); err != nil {
		return requestError(err)
	}

	if len(req.Identifier) > s.maxIdentifier {
		return fmt.Errorf("%w: %d bytes, max %d", apperrors.ErrIdentifierTooLong, len(req.Identifier), s.maxIdentifier)
	}

	if !strings.HasPrefix(req.Identifier, s.prefix) {
		return fmt.Errorf("%w: %q", apperrors.ErrIdentifierPrefix, s.prefix)
	}

	return nil
}

// Convert first validation failure into domain error
func requestError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Field() {
	case "identifier":
		if fe.Tag() == validate.TagNoDelimiter {
			return apperrors.ErrIdentifierHasDelimiter
		}
		return apperrors.ErrIdentifierEmpty
	case "start_date":
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, fe.Value())
	case "duration_days":
		return fmt.Errorf("%w: got %v", apperrors.ErrInvalidDuration, fe.Value())
	default:
		return err
	}
}

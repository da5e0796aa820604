package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nkiryanov/offlicense/internal/service/expiry"
)

const (
	TagDate        = "licensedate"
	TagNoDelimiter = "nodelim"

	// Delimiter between record fields in token payload
	Delimiter = '|'
)

// New returns validator with license specific tags registered:
//   - licensedate: strict YYYY-MM-DD calendar date
//   - nodelim: string without field delimiter
//
// Field names in errors are taken from `json` tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation(TagDate, validateDate)
	_ = v.RegisterValidation(TagNoDelimiter, validateNoDelimiter)
	v.RegisterTagNameFunc(useJSONTagNames)

	return v
}

// Date reports whether value is a real calendar date in YYYY-MM-DD form
func Date(value string) bool {
	_, err := expiry.ParseStartDate(value, nil)
	return err == nil
}

func NoDelimiter(value string) bool {
	return strings.IndexByte(value, Delimiter) == -1
}

func validateDate(fl validator.FieldLevel) bool {
	return Date(fl.Field().String())
}

func validateNoDelimiter(fl validator.FieldLevel) bool {
	return NoDelimiter(fl.Field().String())
}

func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	// skip if tag key says it should be ignored
	if name == "-" {
		return ""
	}
	return name
}

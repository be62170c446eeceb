package middleware

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/ejarriada/Fanaticos/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// cuitPattern matches an 11-digit CUIT/CUIL, bare or as XX-XXXXXXXX-X
var cuitPattern = regexp.MustCompile(`^(\d{11}|\d{2}-\d{8}-\d)$`)

// SetupValidator configures the gin validator to report JSON field names
// and registers the "cuit" tag for Argentine tax IDs
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("cuit", validateCUIT)
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

func validateCUIT(fl validator.FieldLevel) bool {
	return cuitPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// ValidationDetails converts binding errors to field details. It returns
// nil when err is not a validation error.
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	return details
}

// validationMessage returns a human-readable validation message
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "cuit":
		return "Must be a CUIT/CUIL: 11 digits, optionally as XX-XXXXXXXX-X"
	case "hexcolor":
		return "Must be a hex color such as #FF0000"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "ne":
		return "Must not be " + e.Param()
	default:
		return "Invalid value"
	}
}

package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired    = "is required"
	ErrEmail       = "must be a valid email address"
	ErrMinValue    = "must be at least %s"
	ErrMaxValue    = "must be at most %s"
	ErrMinLength   = "must be at least %s characters long"
	ErrMaxLength   = "must be at most %s characters long"
	ErrMinItems    = "must contain at least %s item(s)"
	ErrNotBlank    = "must not be blank"
	ErrPassword    = "must be between 8 and 72 characters long and include at least one letter and one number"
	ErrInvalidData = "is invalid"
)

var hasLetterRgx = regexp.MustCompile(`\p{L}`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterTagNameFunc(jsonFieldName)
	validator.RegisterValidation("password", validatePassword)
	validator.RegisterValidation("notblank", validateNotBlank)

	return validator
}

// jsonFieldName reports fields by their JSON name so that validation errors
// match what the client sent.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	// bcrypt ignores everything past 72 bytes
	if len(password) < 8 || len(password) > 72 {
		return false
	}

	containsDigit := strings.IndexFunc(password, unicode.IsDigit) >= 0

	return containsDigit && hasLetterRgx.MatchString(password)
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrEmail
	case "min", "gte":
		return minMessage(err)
	case "max", "lte":
		return maxMessage(err)
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "notblank":
		return ErrNotBlank
	case "password":
		return ErrPassword
	default:
		return ErrInvalidData
	}
}

func minMessage(err validator.FieldError) string {
	switch err.Kind() {
	case reflect.String:
		return fmt.Sprintf(ErrMinLength, err.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf(ErrMinItems, err.Param())
	default:
		return fmt.Sprintf(ErrMinValue, err.Param())
	}
}

func maxMessage(err validator.FieldError) string {
	if err.Kind() == reflect.String {
		return fmt.Sprintf(ErrMaxLength, err.Param())
	}

	return fmt.Sprintf(ErrMaxValue, err.Param())
}

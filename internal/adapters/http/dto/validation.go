package dto

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// jsonTagParts is the number of parts when splitting a JSON tag by comma.
const jsonTagParts = 2

// ErrEmptyBody is reported when an operation that takes input gets no body.
var ErrEmptyBody = errors.New("request body is required")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// BindingError is a request that could not be decoded or failed schema
// validation. It maps to INVALID_ARGUMENT.
type BindingError struct {
	cause error
}

// Error implements error.
func (e *BindingError) Error() string {
	return "invalid request: " + e.cause.Error()
}

// Unwrap returns the decode or validation error.
func (e *BindingError) Unwrap() error {
	return e.cause
}

// Message is the caller-facing summary.
func (e *BindingError) Message() string {
	switch {
	case errors.Is(e.cause, ErrEmptyBody):
		return ErrEmptyBody.Error()
	case IsValidationError(e.cause):
		return "request validation failed"
	default:
		return "request body could not be decoded"
	}
}

// Details returns field-level messages, or nil for decode failures.
func (e *BindingError) Details() map[string]string {
	if !IsValidationError(e.cause) {
		return nil
	}

	return ValidationErrors(e.cause)
}

// Validator returns the singleton validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use JSON tag names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", jsonTagParts)[0]
			if name == "-" {
				return ""
			}

			return name
		})

		_ = validate.RegisterValidation("notblank", validateNotBlank)
	})

	return validate
}

// Validate validates a struct using the validator instance.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return &BindingError{cause: err}
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it. An empty
// body is rejected; operations without input never call it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmptyBody
		}

		return &BindingError{cause: err}
	}

	return Validate(v)
}

// ValidationErrors extracts field-level error messages from a validator
// error, keyed by the JSON path of the field (e.g. "quote.id").
func ValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldPath(fieldErr)] = validationMessage(fieldErr)
		}
	}

	return fieldErrors
}

// IsValidationError checks if the error is a validator error.
func IsValidationError(err error) bool {
	var validationErrs validator.ValidationErrors
	return errors.As(err, &validationErrs)
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return fe.Field()
}

var validationMessages = map[string]string{
	"required": "this field is required",
	"notblank": "must not be blank",
	"max":      "must be at most {param} characters",
}

func validationMessage(fe validator.FieldError) string {
	if msg, ok := validationMessages[fe.Tag()]; ok {
		return strings.ReplaceAll(msg, "{param}", fe.Param())
	}

	return "failed validation: " + fe.Tag()
}

// validateNotBlank rejects strings that are empty after trimming whitespace.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"audioscribe/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// ValidateQuery binds and validates query parameters
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return bindingError("Invalid query parameters", err)
	}
	return validateDomain(req)
}

// ValidateForm binds and validates multipart or urlencoded form fields.
// File parts are read separately by the handler.
func ValidateForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindWith(req, binding.FormMultipart); err != nil {
		return bindingError("Missing or invalid form fields", err)
	}
	return validateDomain(req)
}

func validateDomain(req interface{}) error {
	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func bindingError(message string, err error) *errors.APIError {
	apiErr := errors.NewBadRequestError(message)

	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		for _, fieldError := range validationErrs {
			field := strings.ToLower(fieldError.Field()[:1]) + fieldError.Field()[1:]

			switch fieldError.Tag() {
			case "required":
				apiErr.WithDetail(field, "is required")
			case "min":
				apiErr.WithDetail(field, "is too small")
			case "max":
				apiErr.WithDetail(field, "is too large")
			case "oneof":
				apiErr.WithDetail(field, "must be one of: "+fieldError.Param())
			default:
				apiErr.WithDetail(field, "is invalid")
			}
		}
		return apiErr
	}

	apiErr.WithDetail("request", err.Error())
	return apiErr
}

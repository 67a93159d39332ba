package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/curricula/internal/app/models/dto"
	"github.com/yigit/curricula/internal/pkg/validation"
)

// BindJSON decodes the request body into obj and runs its binding rules.
// Malformed JSON is answered with 400, rule failures with 422 listing every
// failed field. It returns false when a response has already been written.
func BindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		var collector validation.Collector
		for _, fe := range fieldErrs {
			collector.Add(jsonFieldName(fe), validationCode(fe), formatValidationError(fe))
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(collector.Violations()))
		return false
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid request format").WithDetails(err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	return false
}

// jsonFieldName lower-cases the first letter of the struct field, which is
// how every request DTO names its JSON keys.
func jsonFieldName(e validator.FieldError) string {
	name := e.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func validationCode(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return validation.CodeRequired
	case "min", "max", "gte", "lte":
		return validation.CodeOutOfRange
	default:
		return validation.CodeInvalidValue
	}
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := jsonFieldName(e)
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if e.Kind() == reflect.String {
			return field + " must be at least " + e.Param() + " characters"
		}
		return field + " must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return field + " must be at most " + e.Param() + " characters"
		}
		return field + " must be at most " + e.Param()
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	default:
		return field + " validation failed: " + e.Tag()
	}
}

package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"libraryapi/internal/auth"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("password_strength", validatePasswordStrength)
}

func validatePasswordStrength(fl validator.FieldLevel) bool {
	return auth.ValidatePasswordStrength(fl.Field().String()) == nil
}

// ValidateStruct returns one detail per failed field, in a shape the JSON
// error envelope can carry directly.
func ValidateStruct(s interface{}) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs []ErrorDetail
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, param)
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, param)
		case "uuid":
			message = fmt.Sprintf("%s must be a valid UUID", field)
		case "password_strength":
			message = fmt.Sprintf("%s must be at least 8 characters with uppercase, lowercase and number", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fieldName := strings.ToLower(field[:1]) + field[1:]
		errs = append(errs, ErrorDetail{
			Field:   fieldName,
			Message: message,
		})
	}

	return errs
}

// internal/utils/validator.go
package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/fashionfactory/store-backend/internal/models"
)

var validate *validator.Validate

var usernamePattern = regexp.MustCompile("^[a-zA-Z0-9_]{3,50}$")

func init() {
	validate = validator.New()
	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("username", validateUsername)
	validate.RegisterValidation("gender", validateGender)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidEmail checks address syntax only.
func IsValidEmail(address string) bool {
	return validate.Var(address, "required,email") == nil
}

// IsStrongPassword reports whether password has at least 8 characters with an
// upper case letter, a lower case letter and a digit.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasNumber bool

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	return hasUpper && hasLower && hasNumber
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

func validateGender(fl validator.FieldLevel) bool {
	return models.Gender(fl.Field().String()).Valid()
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

var validationMessages = map[string]func(e validator.FieldError) string{
	"required": func(e validator.FieldError) string { return e.Field() + " is required" },
	"email":    func(validator.FieldError) string { return "Invalid email format" },
	"min":      func(e validator.FieldError) string { return e.Field() + " must be at least " + e.Param() },
	"max":      func(e validator.FieldError) string { return e.Field() + " must be at most " + e.Param() },
	"len":      func(e validator.FieldError) string { return e.Field() + " must be exactly " + e.Param() + " characters" },
	"numeric":  func(e validator.FieldError) string { return e.Field() + " must contain digits only" },
	"url":      func(e validator.FieldError) string { return e.Field() + " must be a valid URL" },
	"strong_password": func(validator.FieldError) string {
		return "Password must contain at least 8 characters with uppercase, lowercase and a number"
	},
	"username": func(validator.FieldError) string {
		return "Username must be 3-50 characters and contain only letters, numbers, and underscores"
	},
	"gender": func(validator.FieldError) string {
		return "Gender must be one of Men, Women, Unisex, Children"
	},
}

// GetValidationErrors flattens validator errors for the response details.
// Other errors yield nil.
func GetValidationErrors(err error) []ValidationError {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil
	}

	out := make([]ValidationError, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		message := e.Field() + " is invalid"
		if msg, ok := validationMessages[e.Tag()]; ok {
			message = msg(e)
		}
		out = append(out, ValidationError{Field: e.Field(), Tag: e.Tag(), Message: message})
	}
	return out
}

// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"budgetboard/internal/models"
)

var userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,63}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("month", validateMonth)
		_ = v.RegisterValidation("userid", validateUserID)
	}
}

func validateMonth(fl validator.FieldLevel) bool {
	return models.IsMonthName(fl.Field().String())
}

func validateUserID(fl validator.FieldLevel) bool {
	return userIDRegex.MatchString(fl.Field().String())
}

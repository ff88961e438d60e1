// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"loomhouse/internal/uuid"
)

var (
	slugRegex     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("slug", validateSlug)
	_ = v.RegisterValidation("currency", validateCurrency)
	_ = v.RegisterValidation("contact_status", validateContactStatus)
	_ = v.RegisterValidation("uuid_id", validateUUID)
	_ = v.RegisterValidation("optional_uuid", validateOptionalUUID)
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

func validateCurrency(fl validator.FieldLevel) bool {
	return currencyRegex.MatchString(fl.Field().String())
}

func validateContactStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "new", "read", "archived":
		return true
	}
	return false
}

func validateUUID(fl validator.FieldLevel) bool {
	return uuid.IsValid(fl.Field().String())
}

// validateOptionalUUID accepts an empty string, which callers use to clear
// a reference, or a valid UUID.
func validateOptionalUUID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || uuid.IsValid(s)
}

package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator with the catalog enum
// validations registered.
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("rarity", validateRarity)
	_ = v.RegisterValidation("itemtype", validateItemType)
	_ = v.RegisterValidation("trend", validateTrend)
	_ = v.RegisterValidation("reqstatus", validateRequestStatus)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a per-field map.
// This prevents leaking internal struct names in responses.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "email":
			errs[field] = "Invalid email format"
		case "rarity":
			errs[field] = "Unknown rarity"
		case "itemtype":
			errs[field] = "Unknown item type"
		case "trend":
			errs[field] = "Unknown trend"
		case "reqstatus":
			errs[field] = "Unknown status"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "hexcolor":
			errs[field] = "Must be a hex color like #6366F1"
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// Empty values pass the enum checks; pair with 'required' when the
// field is mandatory.

func validateRarity(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || domain.ValidRarities[domain.Rarity(value)]
}

func validateItemType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || domain.ValidItemTypes[domain.ItemType(value)]
}

func validateTrend(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || domain.ValidTrends[domain.Trend(value)]
}

func validateRequestStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || domain.ValidStatuses[domain.RequestStatus(value)]
}

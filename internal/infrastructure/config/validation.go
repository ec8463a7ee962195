package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with custom validation rules
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("source", validateSource)
	_ = v.RegisterValidation("price_type", validatePriceType)
	_ = v.RegisterValidation("rarity_class", validateRarityClass)
	_ = v.RegisterValidation("variant", validateVariant)

	return &Validator{
		validate: v,
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Namespace(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}

func validateSource(fl validator.FieldLevel) bool {
	_, ok := pricing.ParseSource(fl.Field().String())
	return ok
}

func validatePriceType(fl validator.FieldLevel) bool {
	return pricing.ParsePriceType(fl.Field().String()) != pricing.PriceTypeUnknown
}

func validateRarityClass(fl validator.FieldLevel) bool {
	_, ok := pricing.ParseRarityClass(fl.Field().String())
	return ok
}

func validateVariant(fl validator.FieldLevel) bool {
	_, ok := pricing.LookupVariant(fl.Field().String())
	return ok
}

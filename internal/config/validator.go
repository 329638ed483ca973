package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/entra-tools/ip-block-lists/internal/providers"
)

var providerNameRegexp = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their TOML names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("provider_name", func(fl validator.FieldLevel) bool {
		return providerNameRegexp.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("parser_name", func(fl validator.FieldLevel) bool {
		return providers.IsParser(fl.Field().String())
	})

	return v
}

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "provider_name":
		return "must consist only of lowercase letters, numbers, underscores and dashes [a-z0-9_-]"
	case "parser_name":
		return fmt.Sprintf("must be one of: %s", strings.Join(providers.ParserNames(), ", "))
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // For providers: the name of the item (e.g., "aws")
	FieldPath string // Dot-notation field path (e.g., "general.user_agent")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):", len(ve)))
	for _, e := range ve {
		sb.WriteString("\n  - ")
		if e.ItemName != "" {
			sb.WriteString(e.ItemName)
			sb.WriteString(": ")
		}
		sb.WriteString(e.FieldPath)
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

func convertValidatorErrors(err error, sectionPath string, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{
			ItemName:  itemName,
			FieldPath: sectionPath,
			Message:   err.Error(),
		}}
	}

	for _, e := range fieldErrors {
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  itemName,
			FieldPath: sectionPath + "." + e.Field(),
			Message:   getValidationMessage(e),
		})
	}
	return validationErrors
}

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	if c.General == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "general",
			Message:   "configuration must contain 'general' section",
		})
		return validationErrors
	}

	if err := validate.Struct(c.General); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "general", "")...)
	}

	// Track duplicate provider names
	seenNames := make(map[string]bool)

	for i, provider := range c.Providers {
		itemName := provider.Name
		if itemName == "" {
			itemName = fmt.Sprintf("provider[%d]", i)
		}

		if err := validate.Struct(provider); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, fmt.Sprintf("provider.%d", i), itemName)...)
		}

		if seenNames[provider.Name] {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "name",
				Message:   fmt.Sprintf("duplicate provider name: %s", provider.Name),
			})
		}
		seenNames[provider.Name] = true
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

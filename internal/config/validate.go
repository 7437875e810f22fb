package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"retreivr-launcher/internal/domain"
)

// settingsValidate checks domain.Settings struct tags.
// Initialized in init() with the launcher's custom validations.
var settingsValidate *validator.Validate

func init() {
	settingsValidate = validator.New(validator.WithRequiredStructEnabled())

	_ = settingsValidate.RegisterValidation("notblank", validateNotBlank)
	_ = settingsValidate.RegisterValidation("lowercase_ascii", validateLowercaseASCII)
	_ = settingsValidate.RegisterValidation("no_whitespace", validateNoWhitespace)
	_ = settingsValidate.RegisterValidation("container_name", validateContainerName)
}

// Validate rejects settings the container engine would refuse or misread.
// It expects normalized input and wraps domain.ErrInvalidConfig.
func Validate(settings domain.Settings) error {
	err := settingsValidate.Struct(settings)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, fieldMessage(fieldErrs[0]))
}

// fieldMessage maps the first failing tag to a user-facing sentence.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "HostPort":
		return "host_port must be between 1 and 65535"
	case "Image":
		switch fe.Tag() {
		case "lowercase_ascii":
			return "image must be lowercase (Docker image refs are case-sensitive)"
		case "no_whitespace":
			return "image cannot contain whitespace"
		}
		return "image cannot be empty"
	case "ContainerName":
		if fe.Tag() == "container_name" {
			return "container_name may only contain letters, numbers, '-', '_' and '.'"
		}
		return "container_name cannot be empty"
	case "ConfigDir":
		return "config_dir cannot be empty"
	case "DataDir":
		return "data_dir cannot be empty"
	case "DownloadsDir":
		return "downloads_dir cannot be empty"
	case "LogsDir":
		return "logs_dir cannot be empty"
	case "TokensDir":
		return "tokens_dir cannot be empty"
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateLowercaseASCII rejects any ASCII uppercase letter.
func validateLowercaseASCII(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r >= 'A' && r <= 'Z' {
			return false
		}
	}
	return true
}

func validateNoWhitespace(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

// validateContainerName allows [A-Za-z0-9._-] only.
func validateContainerName(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}

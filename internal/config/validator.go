package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator with the custom tags
// registered.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// origin accepts "*" or an absolute http(s) origin without a path.
		_ = v.RegisterValidation("origin", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "*" {
				return true
			}
			u, err := url.Parse(s)
			if err != nil || u.Host == "" {
				return false
			}
			return (u.Scheme == "http" || u.Scheme == "https") && (u.Path == "" || u.Path == "/")
		})

		validateInst = v
	})
	return validateInst
}

// ValidationError reports the first configuration field that failed
// validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks cfg against its validate tags.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Field: "config", Message: "configuration is nil"}
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		field := keyName(fe)
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s failed validation for tag '%s'", field, fe.Tag()),
			Err:     err,
		}
	}
	return &ValidationError{Field: "config", Message: err.Error(), Err: err}
}

// keyName turns a struct namespace such as Config.Wizard.DefaultLanguage
// into the configuration key wizard.defaultlanguage.
func keyName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, ".")
}

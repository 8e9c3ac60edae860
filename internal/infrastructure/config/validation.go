package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()

	// gt=0 lets +Inf through, and NaN compares false against everything
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})

	v.RegisterStructValidation(validateDatabase, DatabaseConfig{})

	return v
}

// validateDatabase requires a file path for sqlite unless a URL is given
func validateDatabase(sl validator.StructLevel) {
	db := sl.Current().Interface().(DatabaseConfig)
	if db.Enabled && db.Type == "sqlite" && db.Path == "" && db.URL == "" {
		sl.ReportError(db.Path, "Path", "path", "required_for_sqlite", "")
	}
}

// ValidateConfig checks the merged configuration against its struct tags.
// All failures are reported together, keyed by their
// mapstructure-style path (planner.targets[0].rate rather than Planner.Targets[0].Rate).
func ValidateConfig(cfg *Config) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s: %s (got %v)", configPath(fe.Namespace()), describeTag(fe), fe.Value()))
	}
	return errors.New(strings.Join(problems, "; "))
}

func configPath(namespace string) string {
	return strings.ToLower(strings.TrimPrefix(namespace, "Config."))
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required when " + strings.Replace(fe.Param(), " ", " is ", 1)
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "finite":
		return "must be a finite number"
	case "required_for_sqlite":
		return "is required for sqlite"
	default:
		return "failed " + fe.Tag()
	}
}

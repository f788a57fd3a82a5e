// Package validate wraps go-playground/validator with a shared instance and
// the cascade-specific tags used on options, config files, scene files and
// API requests.
//
//	type Options struct {
//	    Position string `validate:"omitempty,position"`
//	    Delay    time.Duration `validate:"gte=0"`
//	}
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/cascade/pkg/geom"
)

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func get() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("position", parsed(geom.ParsePosition))
		_ = v.RegisterValidation("corner", parsed(geom.ParseCorner))
		_ = v.RegisterValidation("direction", parsed(geom.ParseDirection))
		_ = v.RegisterValidation("weight", parsed(geom.ParseWeight))
		validatorInst = v
	})
	return validatorInst
}

func parsed[T any](parse func(string) (T, bool)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, ok := parse(fl.Field().String())
		return ok
	}
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}

// Message flattens a validation error into a single human readable line,
// e.g. "Delay must be gte 0; Position is not a valid position".
// Errors that did not come from the validator are returned unchanged.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describe(fe))
	}
	return strings.Join(parts, "; ")
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "position", "corner", "direction", "weight":
		return fmt.Sprintf("%s: %q is not a valid %s", field, fe.Value(), fe.Tag())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s must be %s %s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}

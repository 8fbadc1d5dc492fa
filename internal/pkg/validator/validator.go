package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/go-playground/validator/v10"
)

// Validator checks request DTOs against their `validate` tags
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report the JSON field names clients actually send
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates req. Missing required fields wrap entity.ErrMissingField,
// any other failed rule wraps entity.ErrInvalidParameter.
func (v *Validator) Struct(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	var missing, invalid []string
	for _, fe := range validationErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s must satisfy %s", fe.Field(), describeRule(fe)))
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", entity.ErrMissingField, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %s", entity.ErrInvalidParameter, strings.Join(invalid, "; "))
}

func describeRule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// UUID validates a single path parameter.
func (v *Validator) UUID(name, value string) error {
	if err := v.validate.Var(value, "required,uuid"); err != nil {
		return fmt.Errorf("%w: %s must be a UUID", entity.ErrInvalidParameter, name)
	}
	return nil
}

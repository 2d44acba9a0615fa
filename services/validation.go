package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinRating = 1
	MaxRating = 5
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs the validate tags and reports the first failure as a ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return Validation("%v", err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return Validation("%s is required", fe.Field())
	case "min", "max":
		return Validation("%s must be between %d and %d", fe.Field(), MinRating, MaxRating)
	default:
		return Validation("%s is invalid", fe.Field())
	}
}

func validateRating(rating int) error {
	return validateStruct(struct {
		Rating int `json:"rating" validate:"min=1,max=5"`
	}{rating})
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes a single failed rule on one field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// ToValidationErrors converts go-playground validation errors to the internal
// representation.
func ToValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var result ValidationErrors

	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			result = append(result, ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: messageForTag(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return result
	}

	return ValidationErrors{{
		Field:   "request",
		Message: err.Error(),
		Rule:    "invalid",
	}}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must have exactly %s items", fe.Param())
	case "url":
		return "must be a valid URL"
	case "branch_code":
		return "is not a recognized branch"
	case "academic_year":
		return "is not a recognized academic year"
	case "semester_code":
		return "is not a recognized semester"
	case "view_name":
		return "is not a recognized view"
	case "difficulty_level":
		return "must be easy, medium or hard"
	case "question_count":
		return "must be between 1 and 10"
	case "room_capacity":
		return "must be between 2 and 50"
	case "room_activity":
		return "is not a recognized activity"
	case "material_type":
		return "is not a recognized material type"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Validator wraps struct validation with the service's custom rules
// registered.
type Validator struct {
	validate *validator.Validate
	business *BusinessValidator
}

func New() *Validator {
	v := &Validator{
		validate: validator.New(),
	}
	registerDomainRules(v.validate)
	v.business = &BusinessValidator{validate: v.validate}
	return v
}

// Validate runs struct tag validation and returns the collected errors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// GetBusinessValidator exposes the cross-field rule validator.
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BusinessValidator handles request validation for the scheduling endpoints.
type BusinessValidator struct {
	validate *validator.Validate
}

// ValidationError represents a single failed field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// NewBusinessValidator creates a validator with the scheduling rules registered.
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates any request struct. A nil return means the struct passed.
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errors = append(errors, ValidationError{
			Field:   fieldErr.Field(),
			Message: bv.getErrorMessage(fieldErr),
			Value:   fieldErr.Value(),
			Rule:    fieldErr.Tag(),
		})
	}

	return errors
}

func (bv *BusinessValidator) registerBusinessRules() {
	// Assignable roles for the role management endpoint.
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "Assistant", "Exam Coordinator", "Subject Development", "Student":
			return true
		}
		return false
	})

	// Booking status values a coordinator may set.
	bv.validate.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "scheduled", "ongoing", "done":
			return true
		}
		return false
	})
}

func (bv *BusinessValidator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "user_role":
		return "is not an assignable role"
	case "booking_status":
		return "is not a valid booking status"
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}

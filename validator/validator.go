package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"recordbase/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a new validator instance
func New() *Validator {
	v := validator.New()

	// Register custom tag name function to use JSON tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validators
	v.RegisterValidation("collectionname", validateCollectionName)
	v.RegisterValidation("recordkey", validateRecordKey)
	v.RegisterValidation("fieldname", validateFieldName)
	v.RegisterValidation("fieldtype", validateFieldType)

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	// Convert validation errors to our custom format
	var validationErrs ValidationErrors
	for _, err := range err.(validator.ValidationErrors) {
		validationErrs = append(validationErrs, ValidationError{
			Field:   err.Field(),
			Message: msgForTag(err),
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "collectionname":
		return fmt.Sprintf("%s may contain letters, numbers, '-' and '_' only", field)
	case "recordkey":
		return fmt.Sprintf("%s may contain letters, numbers, '-', '_', ':' and '.' only", field)
	case "fieldname":
		return fmt.Sprintf("%s must start with a letter and contain letters, numbers and '_' only", field)
	case "fieldtype":
		return fmt.Sprintf("%s must be one of: string, number, bool", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// Custom validators

var (
	collectionNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
	recordKeyPattern      = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_:.-]*$`)
	fieldNamePattern      = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// validateCollectionName keeps names safe for paths and file systems
func validateCollectionName(fl validator.FieldLevel) bool {
	return collectionNamePattern.MatchString(fl.Field().String())
}

// validateRecordKey validates caller-supplied record keys
func validateRecordKey(fl validator.FieldLevel) bool {
	return recordKeyPattern.MatchString(fl.Field().String())
}

// validateFieldName validates schema field names
func validateFieldName(fl validator.FieldLevel) bool {
	return fieldNamePattern.MatchString(fl.Field().String())
}

// validateFieldType validates the declared type of a schema field
func validateFieldType(fl validator.FieldLevel) bool {
	switch models.FieldType(fl.Field().String()) {
	case models.FieldString, models.FieldNumber, models.FieldBool:
		return true
	}
	return false
}

package schema

import (
	"fmt"
	"strings"

	"recordbase/models"
)

// FieldError reports one constraint failure on a submitted record.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, e := range fe {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// ValidateFields checks the submitted fields against the collection's
// definitions and fills defaults for omitted optional fields. It returns
// the (possibly amended) field map; on failure the input is returned
// untouched and the store must not observe it. Fields without a
// definition pass through unchecked.
func ValidateFields(fields map[string]interface{}, defs []models.FieldDef) (map[string]interface{}, error) {
	if len(defs) == 0 {
		return fields, nil
	}

	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}

	var errs FieldErrors
	for _, def := range defs {
		value, present := out[def.Name]

		if !present || value == nil {
			if def.Default != nil {
				out[def.Name] = def.Default
				continue
			}
			if def.Required {
				errs = append(errs, FieldError{
					Field:   def.Name,
					Message: fmt.Sprintf("%s is required", def.Name),
				})
			}
			continue
		}

		if err := checkType(value, def.Type); err != nil {
			errs = append(errs, FieldError{Field: def.Name, Message: err.Error()})
			continue
		}

		switch def.Type {
		case models.FieldString:
			if def.Required && strings.TrimSpace(value.(string)) == "" {
				errs = append(errs, FieldError{
					Field:   def.Name,
					Message: fmt.Sprintf("%s must not be blank", def.Name),
				})
			}
		case models.FieldNumber:
			n := toFloat(value)
			if def.Min != nil && n < *def.Min {
				errs = append(errs, FieldError{
					Field:   def.Name,
					Message: fmt.Sprintf("%s must be at least %v", def.Name, *def.Min),
				})
			}
			if def.Max != nil && n > *def.Max {
				errs = append(errs, FieldError{
					Field:   def.Name,
					Message: fmt.Sprintf("%s must be at most %v", def.Name, *def.Max),
				})
			}
		}
	}

	if len(errs) > 0 {
		return fields, errs
	}
	return out, nil
}

func checkType(value interface{}, t models.FieldType) error {
	switch t {
	case models.FieldString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected a string, got %T", value)
		}
	case models.FieldNumber:
		switch value.(type) {
		case float64, float32, int, int64:
		default:
			return fmt.Errorf("expected a number, got %T", value)
		}
	case models.FieldBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected a boolean, got %T", value)
		}
	}
	return nil
}

func toFloat(value interface{}) float64 {
	switch n := value.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

package fields

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kin230k/boardsync/internal/models"
)

// ValidationError reports a raw value that cannot be coerced to its field's
// data type. The field update is skipped with a warning.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q", e.Value, e.Field)
}

// Columns that hold issue references as text even when a field of the same
// name would suggest otherwise.
var freeTextKeys = map[string]bool{
	"Depend on #":  true,
	"Parent issue": true,
}

// Clean strips surrounding whitespace and one pair of enclosing quote
// characters from a raw cell.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}

// Coerce converts an already-cleaned, non-empty raw value into the payload
// the updateProjectV2ItemFieldValue mutation expects for the field's data
// type. DATE values must be shifted by the caller before coercion. Empty
// values are the caller's job to filter out.
func (r *Resolver) Coerce(field models.Field, key, value string) (any, error) {
	switch {
	case field.DataType == models.DataTypeNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, &ValidationError{Field: field.Name, Value: value}
		}
		return map[string]any{"number": n}, nil

	case field.DataType == models.DataTypeDate:
		return map[string]any{"date": value}, nil

	case field.DataType == models.DataTypeSingleSelect:
		id, err := r.ResolveOption(field.Id, value)
		if err != nil {
			return nil, err
		}
		return map[string]any{"singleSelectOptionId": id}, nil

	case field.DataType == models.DataTypeIteration:
		id, err := r.ResolveIteration(field.Id, value)
		if err != nil {
			return nil, err
		}
		return map[string]any{"iterationId": id}, nil

	case field.DataType == models.DataTypeText || freeTextKeys[key]:
		return map[string]any{"text": value}, nil

	default:
		// Unrecognized data type: hand the cleaned value over as-is.
		return value, nil
	}
}

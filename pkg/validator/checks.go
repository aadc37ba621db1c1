package validator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-docschema/pkg/model"
)

// checkConstraint evaluates a present, non-nil value against the field's
// structural rule and returns zero or more failure messages.
func checkConstraint(constraint *model.Constraint, value any) []string {
	if constraint == nil {
		return nil
	}

	switch constraint.Kind {
	case model.ConstraintNonEmpty:
		return checkNonEmpty(value)
	case model.ConstraintRange:
		return checkRange(constraint, value)
	case model.ConstraintEnum:
		return checkEnum(constraint, value)
	case model.ConstraintDateTime:
		return checkDateTime(value)
	case model.ConstraintMinItems:
		return checkMinItems(constraint, value)
	default:
		return []string{fmt.Sprintf("unknown constraint kind %q", constraint.Kind)}
	}
}

func checkNonEmpty(value any) []string {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{"value must not be empty"}
		}
	case []any:
		if len(v) == 0 {
			return []string{"value must not be empty"}
		}
	case map[string]any:
		if len(v) == 0 {
			return []string{"value must not be empty"}
		}
	}
	return nil
}

func checkRange(constraint *model.Constraint, value any) []string {
	number, ok := asFloat(value)
	if !ok {
		return []string{fmt.Sprintf("expected a numeric value, got %T", value)}
	}

	var out []string
	if raw := constraint.Param("min"); raw != "" {
		if min, err := strconv.ParseFloat(raw, 64); err == nil && number < min {
			out = append(out, fmt.Sprintf("value %v is below minimum %s", value, raw))
		}
	}
	if raw := constraint.Param("max"); raw != "" {
		if max, err := strconv.ParseFloat(raw, 64); err == nil && number > max {
			out = append(out, fmt.Sprintf("value %v is above maximum %s", value, raw))
		}
	}
	return out
}

func checkEnum(constraint *model.Constraint, value any) []string {
	text := fmt.Sprintf("%v", value)
	for _, allowed := range constraint.Values {
		if text == allowed {
			return nil
		}
	}
	return []string{fmt.Sprintf("value %q is not one of [%s]", text, strings.Join(constraint.Values, ", "))}
}

func checkDateTime(value any) []string {
	text, ok := value.(string)
	if !ok {
		return []string{fmt.Sprintf("expected an RFC 3339 date-time string, got %T", value)}
	}
	if _, err := time.Parse(time.RFC3339, text); err != nil {
		return []string{fmt.Sprintf("value %q is not a valid RFC 3339 date-time", text)}
	}
	return nil
}

func checkMinItems(constraint *model.Constraint, value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{fmt.Sprintf("expected an array, got %T", value)}
	}
	raw := constraint.Param("value")
	min, err := strconv.Atoi(raw)
	if err != nil {
		return []string{fmt.Sprintf("minItems constraint has invalid parameter %q", raw)}
	}
	if len(items) < min {
		return []string{fmt.Sprintf("array has %d items, needs at least %d", len(items), min)}
	}
	return nil
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		number, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return number, true
	default:
		return 0, false
	}
}

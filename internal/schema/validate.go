// ABOUTME: Mechanical form validation derived from field definitions.
// ABOUTME: Required + type checks only; anything richer belongs to the backend.

package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldError names the offending field and the reason submission was blocked.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks submitted form values against the field list and returns the
// normalized value map. Submission succeeds iff every required field has a
// non-empty, correctly-typed value; errors come back in field order so callers
// can flag the first violation.
//
// Normalization: number → float64, checkbox/switch → bool,
// multiselect → []string, everything else → string.
func Validate(fields []Field, values map[string][]string) (map[string]any, []FieldError) {
	out := make(map[string]any, len(fields))
	var errs []FieldError

	for _, f := range fields {
		raw := values[f.Name]

		switch f.Type {
		case TypeNumber:
			v := first(raw)
			if v == "" {
				if f.Required {
					errs = append(errs, FieldError{f.Name, "a number is required"})
				}
				continue
			}
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, FieldError{f.Name, "must be a number"})
				continue
			}
			out[f.Name] = n

		case TypeCheckbox, TypeSwitch:
			checked := isChecked(first(raw))
			if f.Required && !checked {
				errs = append(errs, FieldError{f.Name, "must be checked"})
				continue
			}
			out[f.Name] = checked

		case TypeMultiselect:
			selected := nonEmpty(raw)
			if f.Required && len(selected) == 0 {
				errs = append(errs, FieldError{f.Name, "select at least one option"})
				continue
			}
			out[f.Name] = selected

		case TypeEmail:
			v := strings.TrimSpace(first(raw))
			if v == "" {
				if f.Required {
					errs = append(errs, FieldError{f.Name, "an email address is required"})
				} else {
					out[f.Name] = ""
				}
				continue
			}
			if !strings.Contains(v, "@") {
				errs = append(errs, FieldError{f.Name, "must be a valid email address"})
				continue
			}
			out[f.Name] = v

		default:
			// text, password, textarea, select, autocomplete, and unknown
			// types all validate as plain strings.
			v := first(raw)
			if f.Required && strings.TrimSpace(v) == "" {
				errs = append(errs, FieldError{f.Name, "this field is required"})
				continue
			}
			out[f.Name] = v
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func first(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func nonEmpty(vs []string) []string {
	out := []string{}
	for _, v := range vs {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

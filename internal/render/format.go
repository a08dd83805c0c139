// ABOUTME: Cell value resolution and display formatting shared by all themes.
// ABOUTME: Missing values render as a dash, dates in readable form, objects as JSON.

package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

// Placeholder rendered for missing or nil cell values.
const Placeholder = "—"

// isoDatePattern matches ISO-8601-looking strings (2024-03-01T12:30:00Z and
// friends) so raw backend timestamps render in readable form.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2})?`)

// CellValue resolves a column against a row and formats the result. It never
// panics: unknown keys and nil values come back as the placeholder.
func CellValue(row schema.Row, col schema.Column) string {
	if col.Render != nil {
		v := col.Render(row)
		if v == "" {
			return Placeholder
		}
		return v
	}
	return FormatValue(row[col.Key])
}

// CellValuePath is CellValue with dot-path support for the literal key
// ("profile.name" walks nested maps). Used by the compact theme.
func CellValuePath(row schema.Row, col schema.Column) string {
	if col.Render != nil {
		return CellValue(row, col)
	}
	return FormatValue(lookupPath(row, col.Key))
}

// FormatValue renders one value for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return Placeholder
	case string:
		if val == "" {
			return Placeholder
		}
		if isoDatePattern.MatchString(val) {
			if t, err := parseISO(val); err == nil {
				return t.Format("Jan 2, 2006 15:04")
			}
		}
		return val
	case time.Time:
		return val.Format("Jan 2, 2006 15:04")
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case float64:
		// JSON numbers decode as float64; show integral values without ".0"
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case map[string]any, []any:
		formatted, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(formatted)
	default:
		return fmt.Sprint(val)
	}
}

func parseISO(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO timestamp: %s", s)
}

// lookupPath walks nested maps following dot-separated segments.
func lookupPath(row schema.Row, path string) any {
	if !strings.Contains(path, ".") {
		return row[path]
	}
	var cur any = map[string]any(row)
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[seg]
	}
	return cur
}

// RowID extracts the row's id as a string, or "" when absent.
func RowID(row schema.Row) string {
	v, ok := row["id"]
	if !ok || v == nil {
		return ""
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(v)
}

// columnLabel falls back to a capitalized key when no label is configured.
func columnLabel(col schema.Column) string {
	if col.Label != "" {
		return col.Label
	}
	return capitalize(strings.ReplaceAll(col.Key, "_", " "))
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

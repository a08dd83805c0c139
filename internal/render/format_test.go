// ABOUTME: Unit tests for cell value resolution and display formatting.

package render

import (
	"strings"
	"testing"

	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

func TestFormatValueDash(t *testing.T) {
	if got := FormatValue(nil); got != Placeholder {
		t.Fatalf("Expected placeholder for nil, got %q", got)
	}
	if got := FormatValue(""); got != Placeholder {
		t.Fatalf("Expected placeholder for empty string, got %q", got)
	}
}

func TestFormatValueISODate(t *testing.T) {
	got := FormatValue("2024-03-01T12:30:00Z")
	if got != "Mar 1, 2024 12:30" {
		t.Fatalf("Expected readable date, got %q", got)
	}

	// Strings that only look vaguely date-like pass through untouched
	if got := FormatValue("2024-03-01"); got != "2024-03-01" {
		t.Fatalf("Expected date-only string unchanged, got %q", got)
	}
}

func TestFormatValueBool(t *testing.T) {
	if got := FormatValue(true); got != "Yes" {
		t.Fatalf("Expected Yes, got %q", got)
	}
	if got := FormatValue(false); got != "No" {
		t.Fatalf("Expected No, got %q", got)
	}
}

func TestFormatValueNumbers(t *testing.T) {
	if got := FormatValue(float64(7)); got != "7" {
		t.Fatalf("Expected 7 without decimal, got %q", got)
	}
	if got := FormatValue(3.14); got != "3.14" {
		t.Fatalf("Expected 3.14, got %q", got)
	}
}

func TestFormatValueObjects(t *testing.T) {
	got := FormatValue(map[string]any{"city": "Bogota"})
	if !strings.Contains(got, `"city": "Bogota"`) {
		t.Fatalf("Expected pretty JSON, got %q", got)
	}

	got = FormatValue([]any{"a", "b"})
	if !strings.Contains(got, `"a"`) || !strings.Contains(got, `"b"`) {
		t.Fatalf("Expected JSON array, got %q", got)
	}
}

func TestCellValueUnknownKey(t *testing.T) {
	row := schema.Row{"name": "Ana"}
	got := CellValue(row, schema.Column{Key: "missing"})
	if got != Placeholder {
		t.Fatalf("Expected placeholder for unknown key, got %q", got)
	}
}

func TestCellValueCustomRender(t *testing.T) {
	row := schema.Row{"name": "Ana"}
	col := schema.Column{Key: "name", Render: func(r schema.Row) string {
		return strings.ToUpper(r["name"].(string))
	}}
	if got := CellValue(row, col); got != "ANA" {
		t.Fatalf("Expected ANA, got %q", got)
	}

	empty := schema.Column{Key: "name", Render: func(schema.Row) string { return "" }}
	if got := CellValue(row, empty); got != Placeholder {
		t.Fatalf("Expected placeholder for empty render, got %q", got)
	}
}

func TestCellValuePathDotLookup(t *testing.T) {
	row := schema.Row{"profile": map[string]any{"contact": map[string]any{"email": "ana@example.com"}}}

	got := CellValuePath(row, schema.Column{Key: "profile.contact.email"})
	if got != "ana@example.com" {
		t.Fatalf("Expected nested value, got %q", got)
	}

	got = CellValuePath(row, schema.Column{Key: "profile.missing.deep"})
	if got != Placeholder {
		t.Fatalf("Expected placeholder for broken path, got %q", got)
	}
}

func TestRowID(t *testing.T) {
	if got := RowID(schema.Row{"id": float64(7)}); got != "7" {
		t.Fatalf("Expected 7, got %q", got)
	}
	if got := RowID(schema.Row{"id": "abc-123"}); got != "abc-123" {
		t.Fatalf("Expected abc-123, got %q", got)
	}
	if got := RowID(schema.Row{"name": "no id"}); got != "" {
		t.Fatalf("Expected empty for missing id, got %q", got)
	}
}

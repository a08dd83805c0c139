// ABOUTME: Unit tests for the theme registry, action gating, pagination, and
// ABOUTME: the per-theme rendering contracts.

package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

func sampleRows(n int) []schema.Row {
	rows := make([]schema.Row, n)
	for i := 0; i < n; i++ {
		rows[i] = schema.Row{"id": float64(i + 1), "name": fmt.Sprintf("Row %d", i+1)}
	}
	return rows
}

var sampleCols = []schema.Column{
	{Key: "id", Label: "ID"},
	{Key: "name", Label: "Name"},
}

var sampleActions = []schema.Action{
	{Name: "edit", Label: "Edit"},
	{Name: "delete", Label: "Delete", Confirm: true, Variant: "danger"},
}

func TestThemeRegistry(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("Expected 3 themes, got %v", names)
	}

	for _, name := range []string{"classic", "compact", "cards"} {
		if Theme(name).Name() != name {
			t.Fatalf("Theme %q not registered", name)
		}
	}

	// Unknown names fall back to the default
	if Theme("no-such-theme").Name() != DefaultTheme {
		t.Fatal("Expected fallback to default theme")
	}
}

func TestClassicRendersEveryColumnAndRow(t *testing.T) {
	rows := sampleRows(3)
	out := Theme("classic").Render(rows, sampleCols, nil, TableOptions{})

	for _, label := range []string{"ID", "Name"} {
		if !strings.Contains(out, label) {
			t.Fatalf("Missing column header %q", label)
		}
	}
	for i := 1; i <= 3; i++ {
		if !strings.Contains(out, fmt.Sprintf("Row %d", i)) {
			t.Fatalf("Missing row %d", i)
		}
	}
}

func TestActionButtonsAndConfirm(t *testing.T) {
	rows := sampleRows(1)
	out := Theme("classic").Render(rows, sampleCols, sampleActions, TableOptions{BasePath: "/console/users"})

	if !strings.Contains(out, `href="/console/users/1/edit"`) {
		t.Fatal("Edit should render as a link to the edit page")
	}
	if !strings.Contains(out, `hx-post="/console/users/1/delete"`) {
		t.Fatal("Delete should render as an htmx post")
	}
	if !strings.Contains(out, `hx-confirm=`) {
		t.Fatal("Delete should carry a confirm prompt")
	}
	if !strings.Contains(out, "text-red-600") {
		t.Fatal("Danger actions should render red")
	}
}

func TestDefaultVisibilityGateRequiresID(t *testing.T) {
	rows := []schema.Row{{"name": "no id here"}}
	out := Theme("classic").Render(rows, sampleCols, sampleActions, TableOptions{BasePath: "/console/users"})

	if strings.Contains(out, "hx-post") || strings.Contains(out, "/edit") {
		t.Fatal("Rows without an id should render no actions")
	}
}

func TestCustomVisibilityPredicate(t *testing.T) {
	rows := sampleRows(2)
	opts := TableOptions{
		BasePath: "/console/users",
		Visible: func(action string, row schema.Row) bool {
			return RowID(row) == "2"
		},
	}
	out := Theme("classic").Render(rows, sampleCols, sampleActions, opts)

	if strings.Contains(out, "/console/users/1/edit") {
		t.Fatal("Predicate should hide actions on row 1")
	}
	if !strings.Contains(out, "/console/users/2/edit") {
		t.Fatal("Predicate should show actions on row 2")
	}
}

func TestCompactPagination(t *testing.T) {
	rows := sampleRows(25)

	page1 := Theme("compact").Render(rows, sampleCols, nil, TableOptions{BasePath: "/console/users", Page: 1})
	if !strings.Contains(page1, "Row 1") || strings.Contains(page1, "Row 11") {
		t.Fatal("Page 1 should hold exactly the first ten rows")
	}
	if !strings.Contains(page1, "Page 1 of 3") {
		t.Fatal("Pager should show page count")
	}
	if strings.Contains(page1, "Prev") {
		t.Fatal("First page should have no prev link")
	}

	page3 := Theme("compact").Render(rows, sampleCols, nil, TableOptions{BasePath: "/console/users", Page: 3})
	if !strings.Contains(page3, "Row 25") || strings.Contains(page3, "Row 10") {
		t.Fatal("Page 3 should hold the final slice")
	}
	if strings.Contains(page3, "Next") {
		t.Fatal("Last page should have no next link")
	}

	// A page past the end renders empty rather than failing
	past := Theme("compact").Render(rows, sampleCols, nil, TableOptions{Page: 9})
	if strings.Contains(past, "Row 1") {
		t.Fatal("Out-of-range page should render no rows")
	}
}

func TestCompactDotPathColumn(t *testing.T) {
	rows := []schema.Row{{"id": float64(1), "profile": map[string]any{"name": "Ana"}}}
	cols := []schema.Column{{Key: "profile.name", Label: "Name"}}

	out := Theme("compact").Render(rows, cols, nil, TableOptions{})
	if !strings.Contains(out, "Ana") {
		t.Fatal("Compact theme should resolve dot-path columns")
	}
}

func TestCardsSelection(t *testing.T) {
	rows := sampleRows(3)
	opts := TableOptions{
		BasePath: "/console/users",
		Selected: map[string]bool{"2": true},
	}
	out := Theme("cards").Render(rows, sampleCols, nil, opts)

	if !strings.Contains(out, `value="2" checked`) {
		t.Fatal("Selected row should render checked")
	}
	if strings.Contains(out, `value="1" checked`) {
		t.Fatal("Unselected rows should not render checked")
	}
	if !strings.Contains(out, "1 selected") {
		t.Fatal("Selection count missing")
	}
	if !strings.Contains(out, `hx-post="/console/users/select-all"`) {
		t.Fatal("Select-all control missing")
	}
	// Every checkbox posts its own toggle so a click reaches the server
	for _, id := range []string{"1", "2", "3"} {
		if !strings.Contains(out, `hx-post="/console/users/select/`+id+`"`) {
			t.Fatalf("Checkbox for row %s missing its toggle wiring", id)
		}
	}
}

func TestToggleAll(t *testing.T) {
	rows := sampleRows(3)

	// Partial selection expands to everything
	next := ToggleAll(rows, map[string]bool{"2": true})
	if len(next) != 3 {
		t.Fatalf("Expected all 3 selected, got %d", len(next))
	}

	// Full selection collapses to nothing
	next = ToggleAll(rows, next)
	if len(next) != 0 {
		t.Fatalf("Expected empty selection, got %d", len(next))
	}

	// Empty selection expands too
	next = ToggleAll(rows, nil)
	if len(next) != 3 {
		t.Fatalf("Expected all 3 selected from empty, got %d", len(next))
	}
}

func TestPageSlice(t *testing.T) {
	rows := sampleRows(5)

	if got := pageSlice(rows, 0, 0); len(got) != 5 {
		t.Fatal("Zero page size should return everything")
	}
	if got := pageSlice(rows, 2, 2); len(got) != 2 || RowID(got[0]) != "3" {
		t.Fatalf("Unexpected slice: %v", got)
	}
	if got := pageSlice(rows, 3, 2); len(got) != 1 || RowID(got[0]) != "5" {
		t.Fatalf("Unexpected final slice: %v", got)
	}
	if got := pageSlice(rows, 4, 2); got != nil {
		t.Fatal("Past-the-end page should be nil")
	}
}

// ABOUTME: Cards theme: one card per row with selection checkboxes.
// ABOUTME: Checkboxes post per-row toggles; select-all flips the whole set.

package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

type cardTable struct{}

func init() {
	RegisterTheme(cardTable{})
}

func (cardTable) Name() string { return "cards" }

func (cardTable) Render(rows []schema.Row, cols []schema.Column, actions []schema.Action, opts TableOptions) string {
	var sb strings.Builder

	allSelected := len(rows) > 0 && countSelected(rows, opts.Selected) == len(rows)
	toggleLabel := "Select all"
	if allSelected {
		toggleLabel = "Clear selection"
	}

	sb.WriteString(`<div class="flex items-center justify-between px-1 py-2">`)
	sb.WriteString(fmt.Sprintf(
		`<button name="select-all" hx-post="%s/select-all" class="text-sm text-blue-600">%s</button>`,
		opts.BasePath, toggleLabel))
	sb.WriteString(fmt.Sprintf(`<span class="text-sm text-gray-500">%d selected</span>`,
		countSelected(rows, opts.Selected)))
	sb.WriteString(`</div>`)

	sb.WriteString(`<div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-4">`)

	for _, row := range rows {
		id := RowID(row)
		checked := ""
		if opts.Selected[id] {
			checked = " checked"
		}

		sb.WriteString(`<div class="bg-white rounded-lg shadow p-4">`)
		sb.WriteString(`<div class="flex items-start justify-between">`)
		sb.WriteString(fmt.Sprintf(`<input type="checkbox" name="selected" value="%s"%s hx-post="%s/select/%s" class="mt-1 rounded border-gray-300">`,
			html.EscapeString(id), checked, opts.BasePath, html.EscapeString(id)))
		if len(actions) > 0 {
			sb.WriteString(`<div class="text-sm space-x-2">`)
			sb.WriteString(renderActionButtons(actions, row, opts))
			sb.WriteString(`</div>`)
		}
		sb.WriteString(`</div>`)

		sb.WriteString(`<dl class="mt-2 space-y-1">`)
		for _, col := range cols {
			sb.WriteString(fmt.Sprintf(
				`<div class="flex gap-2 text-sm"><dt class="font-medium text-gray-500">%s</dt><dd class="text-gray-900">%s</dd></div>`,
				html.EscapeString(columnLabel(col)),
				html.EscapeString(CellValue(row, col))))
		}
		sb.WriteString(`</dl>`)
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`</div>`)
	return sb.String()
}

func countSelected(rows []schema.Row, selected map[string]bool) int {
	n := 0
	for _, row := range rows {
		if selected[RowID(row)] {
			n++
		}
	}
	return n
}

// ToggleAll implements the select-all contract: a full selection collapses to
// empty, anything else expands to every row id.
func ToggleAll(rows []schema.Row, selected map[string]bool) map[string]bool {
	if len(rows) > 0 && countSelected(rows, selected) == len(rows) {
		return map[string]bool{}
	}
	next := make(map[string]bool, len(rows))
	for _, row := range rows {
		if id := RowID(row); id != "" {
			next[id] = true
		}
	}
	return next
}

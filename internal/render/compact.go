// ABOUTME: Compact theme: striped rows, dot-path columns, client pagination.
// ABOUTME: Pages are offset/limit slices of the already-fetched row set.

package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

type compactTable struct{}

func init() {
	RegisterTheme(compactTable{})
}

func (compactTable) Name() string { return "compact" }

const compactPageSize = 10

func (compactTable) Render(rows []schema.Row, cols []schema.Column, actions []schema.Action, opts TableOptions) string {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = compactPageSize
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	visible := pageSlice(rows, page, pageSize)

	var sb strings.Builder

	sb.WriteString(`<table class="min-w-full text-sm">`)
	sb.WriteString(`<thead><tr class="border-b border-gray-300">`)
	for _, col := range cols {
		sb.WriteString(fmt.Sprintf(`<th class="px-3 py-2 text-left font-semibold text-gray-700">%s</th>`,
			html.EscapeString(columnLabel(col))))
	}
	if len(actions) > 0 {
		sb.WriteString(`<th class="px-3 py-2 text-right font-semibold text-gray-700">Actions</th>`)
	}
	sb.WriteString(`</tr></thead><tbody>`)

	for i, row := range visible {
		rowClass := ""
		if i%2 == 1 {
			rowClass = ` class="bg-gray-50"`
		}
		sb.WriteString("<tr" + rowClass + ">")
		for _, col := range cols {
			sb.WriteString(fmt.Sprintf(`<td class="px-3 py-2 text-gray-900">%s</td>`,
				html.EscapeString(CellValuePath(row, col))))
		}
		if len(actions) > 0 {
			sb.WriteString(`<td class="px-3 py-2 text-right space-x-2">`)
			sb.WriteString(renderActionButtons(actions, row, opts))
			sb.WriteString(`</td>`)
		}
		sb.WriteString(`</tr>`)
	}

	sb.WriteString(`</tbody></table>`)
	sb.WriteString(renderPager(len(rows), page, pageSize, opts.BasePath))
	return sb.String()
}

// renderPager emits prev/next links when the collection spans multiple pages.
func renderPager(total, page, pageSize int, basePath string) string {
	if total <= pageSize {
		return ""
	}
	pages := (total + pageSize - 1) / pageSize

	var sb strings.Builder
	sb.WriteString(`<div class="flex items-center gap-3 px-3 py-2 text-sm text-gray-600">`)
	if page > 1 {
		sb.WriteString(fmt.Sprintf(`<a href="%s?page=%d" class="text-blue-600">&larr; Prev</a>`, basePath, page-1))
	}
	sb.WriteString(fmt.Sprintf(`<span>Page %d of %d</span>`, page, pages))
	if page < pages {
		sb.WriteString(fmt.Sprintf(`<a href="%s?page=%d" class="text-blue-600">Next &rarr;</a>`, basePath, page+1))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

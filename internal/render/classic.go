// ABOUTME: Classic theme: the baseline bordered table.
// ABOUTME: No pagination or selection; every row renders in one pass.

package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

type classicTable struct{}

func init() {
	RegisterTheme(classicTable{})
}

func (classicTable) Name() string { return "classic" }

func (classicTable) Render(rows []schema.Row, cols []schema.Column, actions []schema.Action, opts TableOptions) string {
	var sb strings.Builder

	sb.WriteString(`<table class="min-w-full divide-y divide-gray-200">`)
	sb.WriteString(`<thead class="bg-gray-50"><tr>`)

	for _, col := range cols {
		sb.WriteString(fmt.Sprintf(`<th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">%s</th>`,
			html.EscapeString(columnLabel(col))))
	}
	if len(actions) > 0 {
		sb.WriteString(`<th class="px-6 py-3 text-right text-xs font-medium text-gray-500 uppercase">Actions</th>`)
	}

	sb.WriteString(`</tr></thead>`)
	sb.WriteString(`<tbody class="bg-white divide-y divide-gray-200">`)

	for _, row := range rows {
		sb.WriteString(`<tr>`)
		for _, col := range cols {
			sb.WriteString(fmt.Sprintf(`<td class="px-6 py-4 whitespace-nowrap text-sm text-gray-900">%s</td>`,
				html.EscapeString(CellValue(row, col))))
		}
		if len(actions) > 0 {
			sb.WriteString(`<td class="px-6 py-4 whitespace-nowrap text-right text-sm space-x-3">`)
			sb.WriteString(renderActionButtons(actions, row, opts))
			sb.WriteString(`</td>`)
		}
		sb.WriteString(`</tr>`)
	}

	sb.WriteString(`</tbody></table>`)
	return sb.String()
}

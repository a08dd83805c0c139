// ABOUTME: Table renderer contract and theme registry.
// ABOUTME: Three interchangeable themes share one interface, selected by name.

package render

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

// DefaultTheme is used when no preference is stored.
const DefaultTheme = "classic"

// TableOptions carries per-render state that is not part of the column or
// action configuration.
type TableOptions struct {
	// BasePath is the console path actions are issued against,
	// e.g. "/console/roles".
	BasePath string

	// Visible gates action buttons per row. Nil means the default gate:
	// the row must have an id.
	Visible func(action string, row schema.Row) bool

	// Page and PageSize slice the row set in themes that paginate.
	// Zero values mean "show everything".
	Page     int
	PageSize int

	// Selected holds the ids checked in themes that support selection.
	Selected map[string]bool
}

// Table renders an ordered collection of rows under one visual theme. All
// subsequent logic (action handling, reloads) belongs to the caller.
type Table interface {
	Name() string
	Render(rows []schema.Row, cols []schema.Column, actions []schema.Action, opts TableOptions) string
}

var (
	themes   = make(map[string]Table)
	themesMu sync.RWMutex
)

// RegisterTheme adds a theme to the registry. Themes register themselves in
// init functions; duplicate names are a programming error.
func RegisterTheme(t Table) {
	themesMu.Lock()
	defer themesMu.Unlock()
	if _, exists := themes[t.Name()]; exists {
		panic(fmt.Sprintf("theme %q already registered", t.Name()))
	}
	themes[t.Name()] = t
}

// Theme returns the named theme, falling back to the default for unknown
// names so a stale preference never breaks a screen.
func Theme(name string) Table {
	themesMu.RLock()
	defer themesMu.RUnlock()
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultTheme]
}

// ThemeNames lists registered themes for the switcher control.
func ThemeNames() []string {
	themesMu.RLock()
	defer themesMu.RUnlock()
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// actionVisible applies the caller's predicate or the default id gate.
func actionVisible(opts TableOptions, action string, row schema.Row) bool {
	if opts.Visible != nil {
		return opts.Visible(action, row)
	}
	return RowID(row) != ""
}

// renderActionButtons emits one control per visible action. "edit" is a plain
// link; everything else posts via htmx, with a confirm prompt where the
// action asks for one.
func renderActionButtons(actions []schema.Action, row schema.Row, opts TableOptions) string {
	var sb strings.Builder
	id := RowID(row)

	first := true
	for _, action := range actions {
		if !actionVisible(opts, action.Name, row) {
			continue
		}
		if !first {
			sb.WriteString(" ")
		}
		first = false

		label := action.Label
		if label == "" {
			label = capitalize(action.Name)
		}

		if action.Name == "edit" {
			sb.WriteString(fmt.Sprintf(`<a href="%s/%s/edit" class="text-blue-600 hover:text-blue-900">%s</a>`,
				opts.BasePath, html.EscapeString(id), html.EscapeString(label)))
			continue
		}

		endpoint := fmt.Sprintf("%s/%s/%s", opts.BasePath, id, action.Name)
		confirmAttr := ""
		if action.Confirm {
			confirmAttr = fmt.Sprintf(` hx-confirm="%s this item?"`, html.EscapeString(capitalize(action.Name)))
		}

		cssClass := "text-blue-600 hover:text-blue-900"
		if action.Variant == "danger" || action.Name == "delete" {
			cssClass = "text-red-600 hover:text-red-900"
		}

		sb.WriteString(fmt.Sprintf(`<button hx-post="%s"%s class="%s">%s</button>`,
			html.EscapeString(endpoint), confirmAttr, cssClass, html.EscapeString(label)))
	}

	return sb.String()
}

// pageSlice applies offset/limit pagination over the in-memory row set. The
// whole collection is fetched up front; there is no server-side paging.
func pageSlice(rows []schema.Row, page, pageSize int) []schema.Row {
	if pageSize <= 0 {
		return rows
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return nil
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

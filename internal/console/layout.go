// ABOUTME: Page shell shared by every console screen.
// ABOUTME: Sidebar navigation, theme switcher, and signed-in profile strip.

package console

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/fernando-bedoya/adminconsole/internal/guard"
	"github.com/fernando-bedoya/adminconsole/internal/render"
)

func (c *Console) renderPage(w http.ResponseWriter, r *http.Request, title, body string) {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`)
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	sb.WriteString(fmt.Sprintf(`<title>%s - Admin Console</title>`, html.EscapeString(title)))
	sb.WriteString(`<script src="https://unpkg.com/htmx.org@1.9.10"></script>`)
	sb.WriteString(`<script src="https://cdn.tailwindcss.com"></script>`)
	sb.WriteString(`</head><body class="bg-gray-100">`)

	sb.WriteString(`<div class="flex min-h-screen">`)
	c.renderSidebar(&sb, r)

	sb.WriteString(`<main class="flex-1 p-8">`)
	sb.WriteString(body)
	sb.WriteString(`</main>`)

	sb.WriteString(`</div></body></html>`)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(sb.String()))
}

func (c *Console) renderSidebar(sb *strings.Builder, r *http.Request) {
	sb.WriteString(`<aside class="w-64 bg-gray-900 text-gray-100 flex flex-col">`)
	sb.WriteString(`<div class="px-4 py-5 text-lg font-bold border-b border-gray-700">Admin Console</div>`)

	sb.WriteString(`<nav class="flex-1 px-2 py-4 space-y-1">`)
	for _, slug := range c.order {
		screen := c.screens[slug]
		active := strings.HasPrefix(r.URL.Path, c.basePath(screen))
		cls := "block px-3 py-2 rounded text-sm hover:bg-gray-700"
		if active {
			cls += " bg-gray-700 font-semibold"
		}
		fmt.Fprintf(sb, `<a href="%s" class="%s">%s</a>`,
			c.basePath(screen), cls, html.EscapeString(screen.Title))
	}
	sb.WriteString(`</nav>`)

	// Theme switcher: select posts immediately, choice persists in the
	// cookie session.
	current := c.guard.Theme(r)
	if current == "" {
		current = render.DefaultTheme
	}
	sb.WriteString(`<form method="POST" action="/console/theme" class="px-4 py-3 border-t border-gray-700">`)
	sb.WriteString(`<label class="block text-xs text-gray-400 mb-1">Table theme</label>`)
	sb.WriteString(`<select name="theme" onchange="this.form.submit()" class="w-full rounded bg-gray-800 text-sm px-2 py-1">`)
	for _, name := range render.ThemeNames() {
		sel := ""
		if name == current {
			sel = " selected"
		}
		fmt.Fprintf(sb, `<option value="%s"%s>%s</option>`, name, sel, name)
	}
	sb.WriteString(`</select></form>`)

	if claims, ok := guard.ClaimsFromContext(r.Context()); ok {
		sb.WriteString(`<div class="px-4 py-3 border-t border-gray-700 text-sm">`)
		fmt.Fprintf(sb, `<div class="font-medium">%s</div>`, html.EscapeString(claims.Name))
		fmt.Fprintf(sb, `<div class="text-gray-400 text-xs">%s</div>`, html.EscapeString(claims.Email))
		sb.WriteString(`<div class="mt-2 space-x-3">`)
		sb.WriteString(`<a href="/console/password" class="text-xs text-blue-400 hover:text-blue-300">Password</a>`)
		sb.WriteString(`<a href="/logout" class="text-xs text-blue-400 hover:text-blue-300">Sign out</a>`)
		sb.WriteString(`</div></div>`)
	}

	sb.WriteString(`</aside>`)
}

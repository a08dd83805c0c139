// ABOUTME: Relationship screens scoped to one role: its permission grants and
// ABOUTME: the users holding it. Read-only views over the parent-filtered API.

package console

import (
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fernando-bedoya/adminconsole/internal/render"
	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

// rolePermissionsScreen lists the permission grants for one role, enriched
// with the permission's url and method.
func (c *Console) rolePermissionsScreen(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")

	screen := &Screen{
		Slug:     "role-permissions",
		Endpoint: "role-permissions",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "permission_name", Label: "Permission"},
			{Key: "permission_method", Label: "Method"},
		},
		Related: []schema.RelatedEndpoint{
			{Name: "permissions", Endpoint: "permissions", LabelField: "url"},
		},
		Transform: func(rows []schema.Row, related map[string][]schema.Row) []schema.Row {
			for _, row := range rows {
				row["permission_name"] = relatedLabel(related["permissions"], row["permission_id"], "url")
				row["permission_method"] = relatedLabel(related["permissions"], row["permission_id"], "method")
			}
			return rows
		},
		NoEdit: true,
	}

	c.renderParentScreen(w, r, screen, "role", roleID, fmt.Sprintf("Permissions for role %s", roleID))
}

// roleUsersScreen lists the user-role assignments pointing at one role.
func (c *Console) roleUsersScreen(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")

	screen := &Screen{
		Slug:     "user-roles",
		Endpoint: "user-roles",
		Columns: []schema.Column{
			{Key: "id", Label: "ID"},
			{Key: "user_name", Label: "User"},
			{Key: "start_at", Label: "Assigned"},
			{Key: "end_at", Label: "Ends"},
		},
		Related: []schema.RelatedEndpoint{
			{Name: "users", Endpoint: "users", LabelField: "name"},
		},
		Transform: func(rows []schema.Row, related map[string][]schema.Row) []schema.Row {
			for _, row := range rows {
				row["user_name"] = relatedLabel(related["users"], row["user_id"], "name")
			}
			return rows
		},
		NoEdit: true,
	}

	c.renderParentScreen(w, r, screen, "role", roleID, fmt.Sprintf("Users with role %s", roleID))
}

func (c *Console) renderParentScreen(w http.ResponseWriter, r *http.Request, screen *Screen, parent, parentID, title string) {
	header := fmt.Sprintf(
		`<div class="mb-4"><a href="%s/roles" class="text-sm text-blue-600 hover:text-blue-900">&larr; Roles</a></div><h1 class="text-2xl font-bold text-gray-900 mb-4">%s</h1>`,
		BasePath, html.EscapeString(title))

	rows, _, err := screen.LoadForParent(r.Context(), c.client, parent, parentID)
	if err != nil {
		c.renderPage(w, r, title, header+errorBanner(err))
		return
	}

	theme := render.Theme(c.guard.Theme(r))
	opts := render.TableOptions{
		// Actions post against the main collection screen, not this view.
		BasePath: BasePath + "/" + screen.Slug,
		Visible:  screen.ActionVisible,
	}

	c.renderPage(w, r, title, header+theme.Render(rows, screen.Columns, screen.Actions(), opts))
}

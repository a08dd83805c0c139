// ABOUTME: CRUD orchestrator: routes console pages and composes the resource
// ABOUTME: client with the table and form renderers per screen configuration.

package console

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/fernando-bedoya/adminconsole/internal/guard"
	"github.com/fernando-bedoya/adminconsole/internal/identity"
	"github.com/fernando-bedoya/adminconsole/internal/render"
	"github.com/fernando-bedoya/adminconsole/internal/resource"
	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

// BasePath is where the guarded console mounts.
const BasePath = "/console"

// Console serves every admin screen. One instance per process; screen
// configuration is immutable after New.
type Console struct {
	client   *resource.Client
	guard    *guard.Guard
	identity *identity.Service

	screens map[string]*Screen
	order   []string

	// selection holds the cards-theme checkbox state per screen. Session
	// scope would survive restarts; for a single admin in-memory is enough.
	selectionMu sync.Mutex
	selection   map[string]map[string]bool
}

func New(client *resource.Client, g *guard.Guard, svc *identity.Service, screens []*Screen) *Console {
	c := &Console{
		client:    client,
		guard:     g,
		identity:  svc,
		screens:   make(map[string]*Screen, len(screens)),
		selection: make(map[string]map[string]bool),
	}
	for _, s := range screens {
		c.screens[s.Slug] = s
		c.order = append(c.order, s.Slug)
	}
	return c
}

// RegisterRoutes mounts the console under /console. The caller wraps the
// subtree with the route guard; nothing here re-checks authentication.
func (c *Console) RegisterRoutes(r chi.Router) {
	r.Route(BasePath, func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, BasePath+"/"+c.order[0], http.StatusFound)
		})
		r.Post("/theme", c.switchTheme)
		r.Get("/password", c.passwordForm)
		r.Post("/password", c.updatePassword)

		for _, slug := range c.order {
			screen := c.screens[slug]
			r.Route("/"+slug, func(r chi.Router) {
				r.Get("/", c.list(screen))
				r.Post("/", c.create(screen))
				r.Post("/select-all", c.selectAll(screen))
				r.Post("/select/{id}", c.selectRow(screen))
				if !screen.NoCreate {
					r.Get("/new", c.newForm(screen))
				}
				if !screen.NoEdit {
					r.Get("/{id}/edit", c.editForm(screen))
					r.Post("/{id}/edit", c.update(screen))
				}
				if slug == "roles" {
					r.Get("/{id}/permissions", c.rolePermissionsScreen)
					r.Get("/{id}/users", c.roleUsersScreen)
				}
				r.Post("/{id}/{action}", c.rowAction(screen))
			})
		}
	})
}

func (c *Console) basePath(s *Screen) string {
	return BasePath + "/" + s.Slug
}

// list renders the screen's table in the session's theme. A failed load
// renders the error banner over an empty page; nothing partial is shown.
func (c *Console) list(s *Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, _, err := s.Load(r.Context(), c.client)
		if err != nil {
			c.renderPage(w, r, s.Title, errorBanner(err)+c.listChrome(s, 0))
			return
		}
		c.renderList(w, r, s, rows, r.URL.Query().Get("flash"))
	}
}

func (c *Console) renderList(w http.ResponseWriter, r *http.Request, s *Screen, rows []schema.Row, flash string) {
	themeName := c.guard.Theme(r)
	theme := render.Theme(themeName)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	opts := render.TableOptions{
		BasePath: c.basePath(s),
		Visible:  s.ActionVisible,
		Page:     page,
		Selected: c.selected(s.Slug),
	}

	body := c.listChrome(s, len(rows))
	if flash != "" {
		body = flashBanner(flash) + body
	}
	body += theme.Render(rows, s.Columns, s.Actions(), opts)

	c.renderPage(w, r, s.Title, body)
}

// listChrome is the header row above the table: title, count, and the New
// button when the screen supports creation.
func (c *Console) listChrome(s *Screen, count int) string {
	var sb strings.Builder
	sb.WriteString(`<div class="flex items-center justify-between mb-4">`)
	sb.WriteString(fmt.Sprintf(`<h1 class="text-2xl font-bold text-gray-900">%s <span class="text-sm font-normal text-gray-500">(%d)</span></h1>`,
		html.EscapeString(s.Title), count))
	if !s.NoCreate {
		sb.WriteString(fmt.Sprintf(`<a href="%s/new" class="px-4 py-2 bg-purple-600 text-white rounded hover:bg-purple-700">New</a>`,
			c.basePath(s)))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func (c *Console) newForm(s *Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		related, err := s.loadRelated(r.Context(), c.client)
		if err != nil {
			c.renderPage(w, r, s.Title, errorBanner(err))
			return
		}
		c.renderForm(w, r, s, s.formFields(related, false), nil, render.FormOptions{})
	}
}

func (c *Console) editForm(s *Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		row, err := c.client.GetByID(r.Context(), s.Endpoint, id)
		if err != nil {
			c.renderPage(w, r, s.Title, errorBanner(err))
			return
		}
		related, err := s.loadRelated(r.Context(), c.client)
		if err != nil {
			c.renderPage(w, r, s.Title, errorBanner(err))
			return
		}
		c.renderForm(w, r, s, s.formFields(related, true), row, render.FormOptions{})
	}
}

func (c *Console) renderForm(w http.ResponseWriter, r *http.Request, s *Screen, fields []schema.Field, values schema.Row, opts render.FormOptions) {
	if opts.Action == "" {
		opts.Action = c.basePath(s)
		if values != nil {
			if id := render.RowID(values); id != "" {
				opts.Action = fmt.Sprintf("%s/%s/edit", c.basePath(s), id)
			}
		}
	}
	opts.CancelURL = c.basePath(s)

	title := "New " + s.Title
	if values != nil && render.RowID(values) != "" {
		title = "Edit " + s.Title
	}

	body := fmt.Sprintf(`<h1 class="text-2xl font-bold text-gray-900 mb-4">%s</h1>`, html.EscapeString(title))
	body += render.RenderForm(fields, values, opts)
	c.renderPage(w, r, title, body)
}

// create validates the submission and posts it through the resource client.
// Validation failures re-render the form with the violating fields flagged;
// remote failures re-render with the server's message in the banner.
func (c *Console) create(s *Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.submit(w, r, s, func(ctx context.Context, body schema.Row) error {
			if s.NestedField != "" {
				parentID := render.FormatValue(body[s.NestedField])
				delete(body, s.NestedField)
				_, err := c.client.CreateNested(ctx, s.Endpoint, s.NestedParent, parentID, body)
				return err
			}
			_, err := c.client.Create(ctx, s.Endpoint, body)
			return err
		}, "Created", nil, false)
	}
}

func (c *Console) update(s *Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		c.submit(w, r, s, func(ctx context.Context, body schema.Row) error {
			_, err := c.client.Update(ctx, s.Endpoint, id, body)
			return err
		}, "Saved", schema.Row{"id": id}, true)
	}
}

// submit is the shared create/update pipeline: parse, validate, call, and
// either redirect to the list or re-render the form with errors.
func (c *Console) submit(w http.ResponseWriter, r *http.Request, s *Screen, call func(context.Context, schema.Row) error, flash string, identityRow schema.Row, edit bool) {
	if err := r.ParseForm(); err != nil {
		c.renderPage(w, r, s.Title, errorBanner(err))
		return
	}

	related, err := s.loadRelated(r.Context(), c.client)
	if err != nil {
		c.renderPage(w, r, s.Title, errorBanner(err))
		return
	}
	fields := s.formFields(related, edit)

	body, fieldErrs := schema.Validate(fields, r.PostForm)
	if len(fieldErrs) > 0 {
		values := submittedValues(fields, r.PostForm, identityRow)
		c.renderForm(w, r, s, fields, values, render.FormOptions{FieldErrors: fieldErrs})
		return
	}

	if err := call(r.Context(), body); err != nil {
		values := submittedValues(fields, r.PostForm, identityRow)
		c.renderForm(w, r, s, fields, values, render.FormOptions{Banner: userMessage(err)})
		return
	}

	http.Redirect(w, r, c.basePath(s)+"?flash="+flash, http.StatusSeeOther)
}

// rowAction dispatches POSTs against one row: delete built-in, anything else
// resolved against the screen's custom actions.
func (c *Console) rowAction(s *Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		name := chi.URLParam(r, "action")

		if name == "delete" && !s.NoDelete {
			if err := c.client.Remove(r.Context(), s.Endpoint, id); err != nil {
				c.renderActionFailure(w, r, s, err)
				return
			}
			c.redirectTo(w, r, c.basePath(s)+"?flash=Deleted")
			return
		}

		ca, ok := s.customAction(name)
		if !ok {
			http.NotFound(w, r)
			return
		}
		if ca.Handle != nil {
			if err := ca.Handle(r.Context(), c.client, id); err != nil {
				c.renderActionFailure(w, r, s, err)
				return
			}
		}
		if ca.Redirect != nil {
			c.redirectTo(w, r, ca.Redirect(id))
			return
		}
		c.redirectTo(w, r, c.basePath(s)+"?flash="+ca.Label)
	}
}

// selectAll toggles the cards-theme selection for a screen between empty and
// every row, then re-renders the list.
func (c *Console) selectAll(s *Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, _, err := s.Load(r.Context(), c.client)
		if err != nil {
			c.renderPage(w, r, s.Title, errorBanner(err))
			return
		}

		c.selectionMu.Lock()
		c.selection[s.Slug] = render.ToggleAll(rows, c.selection[s.Slug])
		c.selectionMu.Unlock()

		c.redirectBack(w, r, c.basePath(s))
	}
}

// selectRow flips one card's selection state. The checkbox posts here so a
// toggle survives the re-render.
func (c *Console) selectRow(s *Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		c.selectionMu.Lock()
		if c.selection[s.Slug] == nil {
			c.selection[s.Slug] = make(map[string]bool)
		}
		c.selection[s.Slug][id] = !c.selection[s.Slug][id]
		c.selectionMu.Unlock()

		c.redirectBack(w, r, c.basePath(s))
	}
}

func (c *Console) selected(slug string) map[string]bool {
	c.selectionMu.Lock()
	defer c.selectionMu.Unlock()
	return c.selection[slug]
}

// switchTheme persists the selected table theme and returns to the referring
// screen. Unknown names are stored as-is; the registry falls back to the
// default at render time.
func (c *Console) switchTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err == nil {
		if theme := r.PostForm.Get("theme"); theme != "" {
			c.guard.SetTheme(w, r, theme)
		}
	}
	c.redirectBack(w, r, BasePath)
}

// renderActionFailure reloads the list and shows the failure banner above it.
func (c *Console) renderActionFailure(w http.ResponseWriter, r *http.Request, s *Screen, err error) {
	rows, _, loadErr := s.Load(r.Context(), c.client)
	if loadErr != nil {
		c.renderPage(w, r, s.Title, errorBanner(loadErr))
		return
	}
	c.renderPage(w, r, s.Title, errorBanner(err)+c.listChrome(s, len(rows)))
}

// redirectBack prefers the htmx/browser referer so actions land back on the
// page that issued them, falling back to the given path.
func (c *Console) redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if ref := r.Header.Get("Referer"); ref != "" && strings.Contains(ref, BasePath) {
		target = ref
	}
	c.redirectTo(w, r, target)
}

// redirectTo honors htmx requests with an HX-Redirect header; plain form
// posts get a standard 303.
func (c *Console) redirectTo(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// userMessage surfaces the server-provided error text when there is one and a
// generic line otherwise. Transport and decode details never reach the page.
func userMessage(err error) string {
	var re *resource.Error
	if errors.As(err, &re) {
		switch re.Kind {
		case resource.KindRemote, resource.KindNotFound:
			return re.Message
		}
	}
	return "The request could not be completed. Please try again."
}

func errorBanner(err error) string {
	return fmt.Sprintf(`<div class="rounded bg-red-50 border border-red-200 text-red-700 px-4 py-3 mb-4">%s</div>`,
		html.EscapeString(userMessage(err)))
}

func flashBanner(message string) string {
	return fmt.Sprintf(`<div class="rounded bg-green-50 border border-green-200 text-green-700 px-4 py-3 mb-4">%s</div>`,
		html.EscapeString(message))
}

// submittedValues rebuilds a value map from the raw form so a failed
// submission re-renders with what the user typed. identityRow carries keys
// (like the record id) that are not form fields.
func submittedValues(fields []schema.Field, form map[string][]string, identityRow schema.Row) schema.Row {
	values := schema.Row{}
	for k, v := range identityRow {
		values[k] = v
	}
	for _, f := range fields {
		if vs, ok := form[f.Name]; ok {
			if f.Type == schema.TypeMultiselect {
				values[f.Name] = vs
			} else if len(vs) > 0 {
				values[f.Name] = vs[0]
			}
		}
	}
	return values
}

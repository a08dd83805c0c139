// ABOUTME: Screen configuration and data loading for console pages.
// ABOUTME: Primary and related collections load concurrently, all-or-nothing.

package console

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fernando-bedoya/adminconsole/internal/render"
	"github.com/fernando-bedoya/adminconsole/internal/resource"
	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

// CustomAction pairs a row action with its server-side behavior. Handle may
// be nil for navigation-only actions; Redirect, when set, names where the
// browser lands after the action succeeds.
type CustomAction struct {
	schema.Action
	Handle   func(ctx context.Context, c *resource.Client, id string) error
	Redirect func(id string) string
}

// Screen declares one console page: which collection it shows, how rows render,
// what the create/edit form looks like, and which extra actions exist. Screens
// are built once at wiring time and never mutated afterward.
type Screen struct {
	Slug     string
	Title    string
	Endpoint string

	Columns []schema.Column
	Fields  []schema.Field

	// EditFields, when set, replaces Fields on the edit form and its
	// submission. Screens with create-only inputs (a user's password) use
	// this to drop them from edits.
	EditFields []schema.Field

	// Related endpoints load alongside the primary collection. Their rows
	// feed Transform and populate select options via OptionSources.
	Related []schema.RelatedEndpoint

	// Transform reshapes rows after a successful load. Pure: input rows and
	// related data in, display rows out.
	Transform func(rows []schema.Row, related map[string][]schema.Row) []schema.Row

	// OptionSources maps a select field name to the Related entry whose rows
	// populate its options.
	OptionSources map[string]string

	CustomActions []CustomAction

	// ActionVisible gates per-row actions. Nil means the renderer's default
	// gate (row must have an id).
	ActionVisible func(action string, row schema.Row) bool

	// NoCreate and NoEdit drop the corresponding built-in surface. Delete
	// stays available unless NoDelete is set.
	NoCreate bool
	NoEdit   bool
	NoDelete bool

	// NestedField names the form field whose value becomes the parent id of
	// a nested create, e.g. sessions posting to /sessions/user/{userID}.
	// NestedParent is the path segment ("user"). Empty means a plain create.
	NestedField  string
	NestedParent string
}

// Actions assembles the row action set: edit and delete built-ins plus any
// custom actions, in that order.
func (s *Screen) Actions() []schema.Action {
	var actions []schema.Action
	if !s.NoEdit {
		actions = append(actions, schema.Action{Name: "edit", Label: "Edit"})
	}
	if !s.NoDelete {
		actions = append(actions, schema.Action{Name: "delete", Label: "Delete", Method: "DELETE", Confirm: true, Variant: "danger"})
	}
	for _, ca := range s.CustomActions {
		actions = append(actions, ca.Action)
	}
	return actions
}

func (s *Screen) customAction(name string) (CustomAction, bool) {
	for _, ca := range s.CustomActions {
		if ca.Name == name {
			return ca, true
		}
	}
	return CustomAction{}, false
}

// Load fetches the primary collection and every related endpoint concurrently.
// If any fetch fails nothing is committed: the caller gets the first error and
// no partial data.
func (s *Screen) Load(ctx context.Context, c *resource.Client) ([]schema.Row, map[string][]schema.Row, error) {
	return s.load(ctx, c, func(ctx context.Context) ([]schema.Row, error) {
		return c.GetAll(ctx, s.Endpoint)
	})
}

// LoadForParent is Load with the primary collection scoped to a parent record,
// used by the relationship screens.
func (s *Screen) LoadForParent(ctx context.Context, c *resource.Client, parent, parentID string) ([]schema.Row, map[string][]schema.Row, error) {
	return s.load(ctx, c, func(ctx context.Context) ([]schema.Row, error) {
		return c.GetByParent(ctx, s.Endpoint, parent, parentID)
	})
}

func (s *Screen) load(ctx context.Context, c *resource.Client, primaryFetch func(context.Context) ([]schema.Row, error)) ([]schema.Row, map[string][]schema.Row, error) {
	g, ctx := errgroup.WithContext(ctx)

	var primary []schema.Row
	related := make(map[string][]schema.Row, len(s.Related))
	var mu sync.Mutex

	g.Go(func() error {
		rows, err := primaryFetch(ctx)
		if err != nil {
			return err
		}
		primary = rows
		return nil
	})

	for _, rel := range s.Related {
		rel := rel
		g.Go(func() error {
			rows, err := c.GetAll(ctx, rel.Endpoint)
			if err != nil {
				return err
			}
			mu.Lock()
			related[rel.Name] = rows
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if s.Transform != nil {
		primary = s.Transform(primary, related)
	}
	return primary, related, nil
}

// loadRelated fetches only the related endpoints, for form pages that need
// select options but not the primary collection.
func (s *Screen) loadRelated(ctx context.Context, c *resource.Client) (map[string][]schema.Row, error) {
	g, ctx := errgroup.WithContext(ctx)

	related := make(map[string][]schema.Row, len(s.Related))
	var mu sync.Mutex

	for _, rel := range s.Related {
		rel := rel
		g.Go(func() error {
			rows, err := c.GetAll(ctx, rel.Endpoint)
			if err != nil {
				return err
			}
			mu.Lock()
			related[rel.Name] = rows
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return related, nil
}

// formFields returns the field list for the create or edit form with select
// options filled in from related data per OptionSources.
func (s *Screen) formFields(related map[string][]schema.Row, edit bool) []schema.Field {
	base := s.Fields
	if edit && s.EditFields != nil {
		base = s.EditFields
	}

	if len(s.OptionSources) == 0 {
		return base
	}

	fields := make([]schema.Field, len(base))
	copy(fields, base)

	for i, f := range fields {
		relName, ok := s.OptionSources[f.Name]
		if !ok {
			continue
		}
		labelField := "name"
		for _, rel := range s.Related {
			if rel.Name == relName && rel.LabelField != "" {
				labelField = rel.LabelField
			}
		}
		rows := related[relName]
		options := make([]schema.Option, 0, len(rows))
		for _, row := range rows {
			id := render.RowID(row)
			if id == "" {
				continue
			}
			label := render.FormatValue(row[labelField])
			options = append(options, schema.Option{Value: id, Label: label})
		}
		fields[i].Options = options
	}
	return fields
}

// relatedLabel resolves a foreign-key value against a related collection,
// returning the label field of the matching row or "" when nothing matches.
func relatedLabel(rows []schema.Row, id any, labelField string) string {
	target := render.FormatValue(id)
	if target == "" || target == render.Placeholder {
		return ""
	}
	for _, row := range rows {
		if render.RowID(row) == target {
			return render.FormatValue(row[labelField])
		}
	}
	return ""
}

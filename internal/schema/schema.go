// ABOUTME: Declarative schema types for console screens.
// ABOUTME: Screens are data: columns, form fields, actions, and related endpoints.

package schema

// Row is one backend record as decoded JSON. The only assumed key is "id",
// used for action targeting and selection.
type Row = map[string]any

// Column describes one table column. A Column with a nil Render resolves Key
// against each row (the compact theme supports dot-paths); otherwise Render is
// invoked as a pure function of the row.
type Column struct {
	Key    string
	Label  string
	Render func(Row) string
}

// Action is a named, user-invocable operation scoped to one row.
// Name must be unique within the action set passed to one table.
type Action struct {
	Name    string
	Label   string
	Method  string // HTTP method for non-GET actions
	Confirm bool   // Ask before firing (delete)
	Variant string // "danger" renders red
}

// Field describes one form input. Type "select" and "multiselect" require a
// non-empty Options list, either literal or populated from a related fetch.
type Field struct {
	Name        string
	Label       string
	Type        string
	Required    bool
	Options     []Option
	Placeholder string
	HelpText    string
}

type Option struct {
	Value string
	Label string
}

// RelatedEndpoint declares a secondary resource fetched alongside the primary
// list, keyed by Name for lookup in row transformers.
type RelatedEndpoint struct {
	Name       string
	Endpoint   string
	LabelField string
}

// Field types the form renderer dispatches on. Anything else falls back to a
// plain text input.
const (
	TypeText         = "text"
	TypeEmail        = "email"
	TypePassword     = "password"
	TypeNumber       = "number"
	TypeTextarea     = "textarea"
	TypeSelect       = "select"
	TypeMultiselect  = "multiselect"
	TypeCheckbox     = "checkbox"
	TypeSwitch       = "switch"
	TypeAutocomplete = "autocomplete"
)

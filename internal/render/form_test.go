// ABOUTME: Unit tests for the generic form renderer.

package render

import (
	"strings"
	"testing"

	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

func TestRenderFormPrefillsValues(t *testing.T) {
	fields := []schema.Field{
		{Name: "name", Type: schema.TypeText, Required: true},
		{Name: "email", Type: schema.TypeEmail},
	}
	values := map[string]any{"name": "Ana Torres", "email": "ana@example.com"}

	out := RenderForm(fields, values, FormOptions{Action: "/console/users/1/edit"})

	if !strings.Contains(out, `action="/console/users/1/edit"`) {
		t.Fatal("Form should post to the given action")
	}
	if !strings.Contains(out, `value="Ana Torres"`) {
		t.Fatal("Text input should be prefilled")
	}
	if !strings.Contains(out, `value="ana@example.com"`) {
		t.Fatal("Email input should be prefilled")
	}
	if !strings.Contains(out, "required") {
		t.Fatal("Required attribute missing")
	}
}

func TestRenderFormNeverPrefillsPassword(t *testing.T) {
	fields := []schema.Field{{Name: "password", Type: schema.TypePassword}}
	values := map[string]any{"password": "super-secret"}

	out := RenderForm(fields, values, FormOptions{})

	if strings.Contains(out, "super-secret") {
		t.Fatal("Password value must never render")
	}
	if !strings.Contains(out, `type="password"`) {
		t.Fatal("Expected a password input")
	}
}

func TestRenderFormFieldErrors(t *testing.T) {
	fields := []schema.Field{
		{Name: "email", Type: schema.TypeEmail, HelpText: "Work address preferred"},
	}
	opts := FormOptions{
		FieldErrors: []schema.FieldError{{Field: "email", Message: "email must be a valid address"}},
	}

	out := RenderForm(fields, nil, opts)

	if !strings.Contains(out, "email must be a valid address") {
		t.Fatal("Field error message missing")
	}
	// Error replaces help text under the flagged input
	if strings.Contains(out, "Work address preferred") {
		t.Fatal("Help text should be suppressed when the field has an error")
	}
}

func TestRenderFormHelpTextAndBanner(t *testing.T) {
	fields := []schema.Field{{Name: "password", Type: schema.TypePassword, HelpText: "Minimum 8 characters"}}

	out := RenderForm(fields, nil, FormOptions{Banner: "Something went wrong upstream"})

	if !strings.Contains(out, "Minimum 8 characters") {
		t.Fatal("Help text missing")
	}
	if !strings.Contains(out, "Something went wrong upstream") {
		t.Fatal("Banner missing")
	}
}

func TestRenderFormSelectOptions(t *testing.T) {
	fields := []schema.Field{{
		Name: "role_id",
		Type: schema.TypeSelect,
		Options: []schema.Option{
			{Value: "1", Label: "admin"},
			{Value: "2", Label: "auditor"},
		},
	}}

	out := RenderForm(fields, map[string]any{"role_id": "2"}, FormOptions{})

	if !strings.Contains(out, `<option value="">Select...</option>`) {
		t.Fatal("Empty option missing")
	}
	if !strings.Contains(out, `<option value="2" selected>auditor</option>`) {
		t.Fatal("Current value should be selected")
	}
	if strings.Contains(out, `<option value="1" selected>`) {
		t.Fatal("Other options should not be selected")
	}
}

func TestRenderFormMultiselect(t *testing.T) {
	fields := []schema.Field{{
		Name: "tags",
		Type: schema.TypeMultiselect,
		Options: []schema.Option{
			{Value: "a", Label: "Alpha"},
			{Value: "b", Label: "Beta"},
		},
	}}

	out := RenderForm(fields, map[string]any{"tags": []any{"a", "b"}}, FormOptions{})

	if !strings.Contains(out, "multiple") {
		t.Fatal("Multiselect should render a multiple select")
	}
	if !strings.Contains(out, `<option value="a" selected>`) || !strings.Contains(out, `<option value="b" selected>`) {
		t.Fatal("All stored values should be selected")
	}
}

func TestRenderFormCheckboxState(t *testing.T) {
	fields := []schema.Field{{Name: "active", Type: schema.TypeCheckbox}}

	on := RenderForm(fields, map[string]any{"active": true}, FormOptions{})
	if !strings.Contains(on, `name="active" checked`) {
		t.Fatal("True value should render checked")
	}

	off := RenderForm(fields, map[string]any{"active": false}, FormOptions{})
	if strings.Contains(off, "checked") {
		t.Fatal("False value should not render checked")
	}
}

func TestRenderFormAutocompleteDatalist(t *testing.T) {
	fields := []schema.Field{{
		Name:    "city",
		Type:    schema.TypeAutocomplete,
		Options: []schema.Option{{Value: "Bogota", Label: "Bogota"}},
	}}

	out := RenderForm(fields, nil, FormOptions{})

	if !strings.Contains(out, `list="city-options"`) {
		t.Fatal("Input should reference the datalist")
	}
	if !strings.Contains(out, `<datalist id="city-options">`) {
		t.Fatal("Datalist missing")
	}
	if !strings.Contains(out, `<option value="Bogota">`) {
		t.Fatal("Datalist option missing")
	}
}

func TestRenderFormSubmitAndCancel(t *testing.T) {
	out := RenderForm(nil, nil, FormOptions{CancelURL: "/console/users"})

	if !strings.Contains(out, ">Save</button>") {
		t.Fatal("Default submit label should be Save")
	}
	if !strings.Contains(out, `href="/console/users"`) {
		t.Fatal("Cancel link missing")
	}

	custom := RenderForm(nil, nil, FormOptions{Submit: "Create account"})
	if !strings.Contains(custom, ">Create account</button>") {
		t.Fatal("Custom submit label missing")
	}
}

func TestFieldLabelFallback(t *testing.T) {
	if got := fieldLabel(schema.Field{Name: "security_question_id"}); got != "Security question id" {
		t.Fatalf("Unexpected derived label: %q", got)
	}
	if got := fieldLabel(schema.Field{Name: "x", Label: "Explicit"}); got != "Explicit" {
		t.Fatalf("Expected explicit label, got %q", got)
	}
}

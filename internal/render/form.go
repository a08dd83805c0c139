// ABOUTME: Generic form renderer driven by field definitions.
// ABOUTME: Pure HTML generation; validation and persistence belong to the caller.

package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

// FormOptions carries submission wiring and error state for one render.
type FormOptions struct {
	Action    string // POST target
	CancelURL string
	Submit    string // button label, defaults to "Save"

	// Banner shows a dismissible error above the fields (server-reported
	// failures). FieldErrors flag individual inputs.
	Banner      string
	FieldErrors []schema.FieldError
}

// RenderForm generates a create/edit form from the field list. When values is
// non-nil the form renders in edit mode with inputs prefilled.
func RenderForm(fields []schema.Field, values map[string]any, opts FormOptions) string {
	errByField := make(map[string]string, len(opts.FieldErrors))
	for _, fe := range opts.FieldErrors {
		if _, ok := errByField[fe.Field]; !ok {
			errByField[fe.Field] = fe.Message
		}
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<form method="POST" action="%s" class="bg-white rounded-lg shadow p-6 space-y-4 max-w-2xl">`,
		html.EscapeString(opts.Action)))

	if opts.Banner != "" {
		sb.WriteString(fmt.Sprintf(`<div class="rounded bg-red-50 border border-red-200 text-red-700 px-4 py-3 text-sm">%s</div>`,
			html.EscapeString(opts.Banner)))
	}

	for _, field := range fields {
		sb.WriteString(`<div>`)
		sb.WriteString(fmt.Sprintf(`<label class="block text-sm font-medium text-gray-700">%s</label>`,
			html.EscapeString(fieldLabel(field))))

		value := ""
		if values != nil {
			if v, ok := values[field.Name]; ok && v != nil {
				value = fmt.Sprint(v)
			}
		}

		renderInput(&sb, field, value, values)

		if msg, ok := errByField[field.Name]; ok {
			sb.WriteString(fmt.Sprintf(`<p class="mt-1 text-sm text-red-600">%s</p>`, html.EscapeString(msg)))
		} else if field.HelpText != "" {
			sb.WriteString(fmt.Sprintf(`<p class="mt-1 text-sm text-gray-500">%s</p>`, html.EscapeString(field.HelpText)))
		}

		sb.WriteString(`</div>`)
	}

	submit := opts.Submit
	if submit == "" {
		submit = "Save"
	}
	sb.WriteString(`<div class="flex gap-4">`)
	sb.WriteString(fmt.Sprintf(`<button type="submit" class="px-4 py-2 bg-purple-600 text-white rounded hover:bg-purple-700">%s</button>`,
		html.EscapeString(submit)))
	if opts.CancelURL != "" {
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="px-4 py-2 bg-gray-200 text-gray-700 rounded hover:bg-gray-300">Cancel</a>`,
			html.EscapeString(opts.CancelURL)))
	}
	sb.WriteString(`</div>`)

	sb.WriteString(`</form>`)
	return sb.String()
}

const inputClass = "mt-1 block w-full rounded border-gray-300 shadow-sm px-3 py-2 border"

func renderInput(sb *strings.Builder, field schema.Field, value string, values map[string]any) {
	name := html.EscapeString(field.Name)

	switch field.Type {
	case schema.TypeTextarea:
		fmt.Fprintf(sb, `<textarea name="%s" %s%s class="%s">%s</textarea>`,
			name, requiredAttr(field.Required), placeholderAttr(field), inputClass, html.EscapeString(value))

	case schema.TypeSelect:
		fmt.Fprintf(sb, `<select name="%s" %s class="%s">`, name, requiredAttr(field.Required), inputClass)
		sb.WriteString(`<option value="">Select...</option>`)
		writeOptions(sb, field.Options, map[string]bool{value: true})
		sb.WriteString(`</select>`)

	case schema.TypeMultiselect:
		selected := selectedSet(values, field.Name)
		fmt.Fprintf(sb, `<select name="%s" multiple %s class="%s">`, name, requiredAttr(field.Required), inputClass)
		writeOptions(sb, field.Options, selected)
		sb.WriteString(`</select>`)

	case schema.TypeCheckbox, schema.TypeSwitch:
		checked := ""
		if value == "true" || value == "1" {
			checked = " checked"
		}
		fmt.Fprintf(sb, `<input type="checkbox" name="%s"%s class="mt-1 rounded border-gray-300">`, name, checked)

	case schema.TypeNumber:
		fmt.Fprintf(sb, `<input type="number" name="%s"%s %s%s class="%s">`,
			name, valueAttr(value), requiredAttr(field.Required), placeholderAttr(field), inputClass)

	case schema.TypeEmail:
		fmt.Fprintf(sb, `<input type="email" name="%s"%s %s%s class="%s">`,
			name, valueAttr(value), requiredAttr(field.Required), placeholderAttr(field), inputClass)

	case schema.TypePassword:
		// Never prefill password inputs, even in edit mode.
		fmt.Fprintf(sb, `<input type="password" name="%s" %s%s class="%s">`,
			name, requiredAttr(field.Required), placeholderAttr(field), inputClass)

	case schema.TypeAutocomplete:
		listID := field.Name + "-options"
		fmt.Fprintf(sb, `<input type="text" name="%s" list="%s"%s %s%s class="%s">`,
			name, html.EscapeString(listID), valueAttr(value), requiredAttr(field.Required), placeholderAttr(field), inputClass)
		fmt.Fprintf(sb, `<datalist id="%s">`, html.EscapeString(listID))
		for _, opt := range field.Options {
			fmt.Fprintf(sb, `<option value="%s">%s</option>`,
				html.EscapeString(opt.Value), html.EscapeString(opt.Label))
		}
		sb.WriteString(`</datalist>`)

	default:
		// text and unknown types fall back to a plain text input
		fmt.Fprintf(sb, `<input type="text" name="%s"%s %s%s class="%s">`,
			name, valueAttr(value), requiredAttr(field.Required), placeholderAttr(field), inputClass)
	}
}

func writeOptions(sb *strings.Builder, options []schema.Option, selected map[string]bool) {
	for _, opt := range options {
		sel := ""
		if selected[opt.Value] {
			sel = " selected"
		}
		fmt.Fprintf(sb, `<option value="%s"%s>%s</option>`,
			html.EscapeString(opt.Value), sel, html.EscapeString(opt.Label))
	}
}

// selectedSet pulls multiselect values out of the value map, accepting both
// []string (form round-trips) and []any (decoded JSON).
func selectedSet(values map[string]any, name string) map[string]bool {
	set := map[string]bool{}
	if values == nil {
		return set
	}
	switch vs := values[name].(type) {
	case []string:
		for _, v := range vs {
			set[v] = true
		}
	case []any:
		for _, v := range vs {
			set[fmt.Sprint(v)] = true
		}
	case string:
		if vs != "" {
			set[vs] = true
		}
	}
	return set
}

func fieldLabel(f schema.Field) string {
	if f.Label != "" {
		return f.Label
	}
	return capitalize(strings.ReplaceAll(f.Name, "_", " "))
}

func requiredAttr(required bool) string {
	if required {
		return "required"
	}
	return ""
}

func valueAttr(value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(` value="%s"`, html.EscapeString(value))
}

func placeholderAttr(f schema.Field) string {
	if f.Placeholder == "" {
		return ""
	}
	return fmt.Sprintf(` placeholder="%s"`, html.EscapeString(f.Placeholder))
}

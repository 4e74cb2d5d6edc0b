package ui

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"
)

// Input types a [Field] renders as.
const (
	FieldText     = "text"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Field configures one form input.
type Field struct {
	ID       string
	Label    string
	Type     string
	Required bool
	Disabled bool
}

var fieldTemplate = template.Must(template.New("field").Parse(
	`<div class="field{{if .Error}} field--invalid{{end}}">` +
		`<input id="{{.Field.ID}}" name="{{.Field.ID}}" type="{{.Field.Type}}" value="{{.Value}}" placeholder=" "` +
		`{{if .Field.Required}} required{{end}}{{if .Field.Disabled}} disabled{{end}}>` +
		`<label for="{{.Field.ID}}">{{.Field.Label}}</label>` +
		`{{with .Error}}<p class="field__message" role="alert">{{.}}</p>{{end}}` +
		`</div>`,
))

// RenderField writes the HTML of a single input with its label and inline error.
func RenderField(w io.Writer, f Field, value, message string) error {
	if f.Type == FieldPassword {
		value = ""
	}
	return fieldTemplate.Execute(w, struct {
		Field Field
		Value string
		Error string
	}{f, value, message})
}

// HTML renders the field for use inside another template.
func (f Field) HTML(value, message string) (template.HTML, error) {
	var b strings.Builder
	if err := RenderField(&b, f, value, message); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

// ValidationError maps field IDs to inline messages.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	ids := make([]string, 0, len(e))
	for id := range e {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return fmt.Sprintf("invalid form: %s", strings.Join(ids, ", "))
}

// ValidateFields returns a message for every required field whose value is blank.
// The result is empty when the form may be submitted.
func ValidateFields(fields []Field, values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, f := range fields {
		if f.Required && strings.TrimSpace(values[f.ID]) == "" {
			errs[f.ID] = f.Label + " is required"
		}
	}
	return errs
}

func withDisabled(fields []Field, disabled bool) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Disabled = disabled
		out[i] = f
	}
	return out
}

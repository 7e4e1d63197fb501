package model

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-remoteform/pkg/layout"
)

// Definition is the built-in Form implementation: a mutable, ordered field
// collection declared once by the form owner and exported many times. It
// satisfies Form, FieldsetProvider, and LayoutProvider.
type Definition struct {
	title       string
	labelSuffix string
	prefix      string

	order  []string
	fields map[string]FieldRecord

	initial        map[string]any
	data           map[string]any
	bound          bool
	errors         map[string][]string
	nonFieldErrors []string

	fieldsets []Fieldset
	layout    *layout.Layout
}

// NewDefinition creates an empty form definition with the given title.
func NewDefinition(title string) *Definition {
	return &Definition{
		title:       strings.TrimSpace(title),
		labelSuffix: ":",
		fields:      make(map[string]FieldRecord),
		initial:     make(map[string]any),
		errors:      make(map[string][]string),
	}
}

// AddField appends a field to the definition. Field order is declaration
// order. Duplicate or blank names are rejected.
func (d *Definition) AddField(name string, record FieldRecord) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("model: field name is required")
	}
	if _, exists := d.fields[trimmed]; exists {
		return fmt.Errorf("model: field %q already declared", trimmed)
	}
	d.order = append(d.order, trimmed)
	d.fields[trimmed] = record
	return nil
}

// MustAddField panics on registration failure. Useful for declaring fixed
// form definitions at package init.
func (d *Definition) MustAddField(name string, record FieldRecord) *Definition {
	if err := d.AddField(name, record); err != nil {
		panic(err)
	}
	return d
}

// SetInitial records a form-level initial value override for a field. It
// takes precedence over the field's own Initial at export time.
func (d *Definition) SetInitial(name string, value any) {
	if d.initial == nil {
		d.initial = make(map[string]any)
	}
	d.initial[name] = value
}

// Bind attaches submitted data to the form. A bound form exports the raw
// submitted mapping as its data payload.
func (d *Definition) Bind(data map[string]any) {
	d.data = data
	d.bound = true
}

// Unbind clears submitted data.
func (d *Definition) Unbind() {
	d.data = nil
	d.bound = false
}

// AddError appends a validation error for a field.
func (d *Definition) AddError(name, message string) {
	if d.errors == nil {
		d.errors = make(map[string][]string)
	}
	d.errors[name] = append(d.errors[name], message)
	if record, ok := d.fields[name]; ok {
		record.Errors = append(record.Errors, message)
		d.fields[name] = record
	}
}

// AddNonFieldError appends an error not attached to any single field.
func (d *Definition) AddNonFieldError(message string) {
	d.nonFieldErrors = append(d.nonFieldErrors, message)
}

// SetLabelSuffix overrides the default ":" label suffix.
func (d *Definition) SetLabelSuffix(suffix string) { d.labelSuffix = suffix }

// SetPrefix sets the field name prefix for multi-form pages.
func (d *Definition) SetPrefix(prefix string) { d.prefix = prefix }

// SetFieldsets declares presentational field groupings. Validation happens at
// export time, not here.
func (d *Definition) SetFieldsets(fieldsets []Fieldset) {
	d.fieldsets = append([]Fieldset(nil), fieldsets...)
}

// AttachLayout attaches a layout tree to the form.
func (d *Definition) AttachLayout(root *layout.Layout) { d.layout = root }

// Title implements Form.
func (d *Definition) Title() string { return d.title }

// FieldOrder implements Form, returning a defensive copy.
func (d *Definition) FieldOrder() []string {
	return append([]string(nil), d.order...)
}

// Field implements Form.
func (d *Definition) Field(name string) (FieldRecord, bool) {
	record, ok := d.fields[name]
	return record, ok
}

// IsBound implements Form.
func (d *Definition) IsBound() bool { return d.bound }

// Data implements Form.
func (d *Definition) Data() map[string]any { return d.data }

// Initial implements Form.
func (d *Definition) Initial() map[string]any { return d.initial }

// Errors implements Form.
func (d *Definition) Errors() map[string][]string { return d.errors }

// NonFieldErrors implements Form.
func (d *Definition) NonFieldErrors() []string {
	return append([]string(nil), d.nonFieldErrors...)
}

// LabelSuffix implements Form.
func (d *Definition) LabelSuffix() string { return d.labelSuffix }

// Prefix implements Form.
func (d *Definition) Prefix() string { return d.prefix }

// Fieldsets implements FieldsetProvider.
func (d *Definition) Fieldsets() []Fieldset {
	return append([]Fieldset(nil), d.fieldsets...)
}

// Layout implements LayoutProvider.
func (d *Definition) Layout() *layout.Layout { return d.layout }

var (
	_ Form             = (*Definition)(nil)
	_ FieldsetProvider = (*Definition)(nil)
	_ LayoutProvider   = (*Definition)(nil)
)

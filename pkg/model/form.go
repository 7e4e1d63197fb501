package model

import "github.com/goliatone/go-remoteform/pkg/layout"

// Form is the collaborator interface the export engine consumes. The engine
// takes a read-only snapshot of the form at construction time and never
// mutates it; implementations must be safe for concurrent reads if the same
// form is exported concurrently.
type Form interface {
	// Title names the form, typically its declared type name.
	Title() string
	// FieldOrder returns the declared field names in declaration order.
	FieldOrder() []string
	// Field returns the record for name, reporting whether it exists.
	Field(name string) (FieldRecord, bool)
	// IsBound reports whether the form carries submitted data.
	IsBound() bool
	// Data returns the raw submitted data for bound forms, nil otherwise.
	Data() map[string]any
	// Initial returns form-level initial value overrides keyed by field name.
	// These take precedence over each field's own Initial.
	Initial() map[string]any
	// Errors returns validation errors keyed by field name.
	Errors() map[string][]string
	// NonFieldErrors returns errors not attached to any single field.
	NonFieldErrors() []string
	// LabelSuffix returns the suffix appended to rendered labels, e.g. ":".
	LabelSuffix() string
	// Prefix returns the field name prefix for multi-form pages.
	Prefix() string
}

// FieldsetProvider is implemented by forms that declare fieldsets.
type FieldsetProvider interface {
	Fieldsets() []Fieldset
}

// LayoutProvider is the optional layout capability. Forms without one simply
// omit the layout key from their export.
type LayoutProvider interface {
	Layout() *layout.Layout
}

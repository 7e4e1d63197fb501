// Package model defines the form-side types the export engine consumes: the
// Form collaborator interface, the FieldRecord describing one field's type,
// constraints, values, and errors, and the concrete Definition implementation
// for declaring forms in code. Fieldsets group field names for presentation
// only; the optional FieldsetProvider and LayoutProvider interfaces let a form
// expose declared fieldsets and a layout tree without forcing either on every
// implementation.
package model

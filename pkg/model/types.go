package model

// FieldType is the closed enum of field kinds the export engine knows how to
// serialize. Unknown types degrade to an empty field dict at export time.
type FieldType string

const (
	FieldTypeString      FieldType = "string"
	FieldTypeText        FieldType = "text"
	FieldTypeInteger     FieldType = "integer"
	FieldTypeNumber      FieldType = "number"
	FieldTypeBoolean     FieldType = "boolean"
	FieldTypeDate        FieldType = "date"
	FieldTypeDateTime    FieldType = "datetime"
	FieldTypeTime        FieldType = "time"
	FieldTypeEmail       FieldType = "email"
	FieldTypeURL         FieldType = "url"
	FieldTypeChoice      FieldType = "choice"
	FieldTypeMultiChoice FieldType = "multichoice"
	FieldTypeHidden      FieldType = "hidden"
)

// Choice pairs a submit value with its display caption. The caption may be a
// lazy.Text; it is resolved during the final export pass.
type Choice struct {
	Value any `json:"value"`
	Label any `json:"label"`
}

// FieldRecord is one field's definition: type, constraints, current value,
// and validation errors. The export engine treats it as opaque beyond handing
// it to the matching per-type serializer. Label and HelpText accept either a
// string or a lazy.Text.
type FieldRecord struct {
	Type       FieldType
	Label      any
	HelpText   any
	Required   bool
	Initial    any
	BoundValue any
	Errors     []string

	// Constraints. Nil pointers mean "no constraint"; serializers only emit
	// the ones relevant to their field type.
	MaxLength *int
	MinLength *int
	MinValue  *float64
	MaxValue  *float64
	Pattern   string

	Choices []Choice
	Widget  map[string]any
}

// Fieldset declares a named presentational grouping of field names. Attrs
// carries extra declaration data (legend, description, ...) passed through to
// the export unchanged.
type Fieldset struct {
	Name   string         `json:"name"`
	Fields []string       `json:"fields"`
	Attrs  map[string]any `json:"attrs,omitempty"`
}

package fields

import (
	"github.com/goliatone/go-remoteform/pkg/model"
)

func (r *Registry) registerBuiltins() {
	textual := []model.FieldType{
		model.FieldTypeString,
		model.FieldTypeText,
		model.FieldTypeEmail,
		model.FieldTypeURL,
	}
	for _, fieldType := range textual {
		r.MustRegister(fieldType, serializeTextual)
	}

	numeric := []model.FieldType{
		model.FieldTypeInteger,
		model.FieldTypeNumber,
	}
	for _, fieldType := range numeric {
		r.MustRegister(fieldType, serializeNumeric)
	}

	choices := []model.FieldType{
		model.FieldTypeChoice,
		model.FieldTypeMultiChoice,
	}
	for _, fieldType := range choices {
		r.MustRegister(fieldType, serializeChoice)
	}

	plain := []model.FieldType{
		model.FieldTypeBoolean,
		model.FieldTypeDate,
		model.FieldTypeDateTime,
		model.FieldTypeTime,
		model.FieldTypeHidden,
	}
	for _, fieldType := range plain {
		r.MustRegister(fieldType, serializeBase)
	}
}

// serializeBase emits the keys every field type shares: type tag, label,
// help text, errors, required flag, widget attributes, and the resolved
// initial value (override first, record default second).
func serializeBase(record model.FieldRecord, initial any, name string) (map[string]any, error) {
	dict := map[string]any{
		"type":      string(record.Type),
		"label":     sanitizeText(record.Label),
		"help_text": sanitizeText(record.HelpText),
		"required":  record.Required,
		"errors":    errorList(record.Errors),
		"widget":    widgetAttrs(record.Widget),
	}

	resolved := initial
	if resolved == nil {
		resolved = record.Initial
	}
	dict["initial"] = resolved

	if record.BoundValue != nil {
		dict["bound_data"] = record.BoundValue
	}

	return dict, nil
}

func serializeTextual(record model.FieldRecord, initial any, name string) (map[string]any, error) {
	dict, err := serializeBase(record, initial, name)
	if err != nil {
		return nil, err
	}
	if record.MaxLength != nil {
		dict["max_length"] = *record.MaxLength
	}
	if record.MinLength != nil {
		dict["min_length"] = *record.MinLength
	}
	if record.Pattern != "" {
		dict["pattern"] = record.Pattern
	}
	return dict, nil
}

func serializeNumeric(record model.FieldRecord, initial any, name string) (map[string]any, error) {
	dict, err := serializeBase(record, initial, name)
	if err != nil {
		return nil, err
	}
	if record.MinValue != nil {
		dict["min_value"] = *record.MinValue
	}
	if record.MaxValue != nil {
		dict["max_value"] = *record.MaxValue
	}
	return dict, nil
}

func serializeChoice(record model.FieldRecord, initial any, name string) (map[string]any, error) {
	dict, err := serializeBase(record, initial, name)
	if err != nil {
		return nil, err
	}
	choices := make([]any, 0, len(record.Choices))
	for _, choice := range record.Choices {
		choices = append(choices, map[string]any{
			"value": choice.Value,
			"label": sanitizeText(choice.Label),
		})
	}
	dict["choices"] = choices
	return dict, nil
}

func errorList(errors []string) []string {
	if errors == nil {
		return []string{}
	}
	return append([]string(nil), errors...)
}

func widgetAttrs(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for key, value := range attrs {
		out[key] = value
	}
	return out
}

// Package remoteform converts an in-memory form definition into a fully
// serializable, order-preserving structure a remote renderer can consume. It
// decouples form definition from form rendering by exporting field types,
// constraints, labels, current and initial values, validation errors, and
// optional layout hints.
package remoteform

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-remoteform/pkg/fields"
	"github.com/goliatone/go-remoteform/pkg/layout"
	"github.com/goliatone/go-remoteform/pkg/lazy"
	"github.com/goliatone/go-remoteform/pkg/model"
	"github.com/goliatone/go-remoteform/pkg/ordered"
)

// RemoteForm wraps a form and its selection directives. The resolved field
// list is computed once at construction and immutable afterwards; Export can
// be called any number of times.
type RemoteForm struct {
	form     model.Form
	registry *fields.Registry
	logger   *zap.Logger

	order []string
	all   map[string]struct{}

	excluded map[string]struct{}
	included map[string]struct{}
	readonly map[string]struct{}
	ordering []string

	fieldsets         []model.Fieldset
	fieldsetsSupplied bool

	fields []string
}

// New wraps form and resolves the selection directives. Invalid directives
// degrade to safe defaults with a warning; only a nil form is an error.
func New(form model.Form, options ...Option) (*RemoteForm, error) {
	if form == nil {
		return nil, errors.New("remoteform: form is required")
	}

	rf := &RemoteForm{
		form:     form,
		order:    form.FieldOrder(),
		excluded: map[string]struct{}{},
		included: map[string]struct{}{},
		readonly: map[string]struct{}{},
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(rf)
	}

	if rf.registry == nil {
		rf.registry = fields.NewRegistry()
	}
	if rf.logger == nil {
		rf.logger = zap.NewNop()
	}
	if !rf.fieldsetsSupplied {
		if provider, ok := form.(model.FieldsetProvider); ok {
			rf.fieldsets = provider.Fieldsets()
		}
	}

	rf.resolveFields()
	rf.validateFieldsets()

	return rf, nil
}

// Fields returns the resolved field list: unique names, a subset of the
// form's fields, in export order.
func (rf *RemoteForm) Fields() []string {
	return append([]string(nil), rf.fields...)
}

// Fieldsets returns the validated fieldset declaration, nil when it was
// discarded or never supplied.
func (rf *RemoteForm) Fieldsets() []model.Fieldset {
	return append([]model.Fieldset(nil), rf.fieldsets...)
}

// Export assembles the wire-ready structure. Per-field serialization failures
// degrade to an empty field dict with a warning; only layout defects abort
// the call. The returned map contains no lazy values.
func (rf *RemoteForm) Export() (*ordered.Map, error) {
	out := ordered.NewMap()
	out.Set("title", rf.form.Title())
	out.Set("non_field_errors", stringList(rf.form.NonFieldErrors()))
	out.Set("label_suffix", rf.form.LabelSuffix())
	out.Set("is_bound", rf.form.IsBound())
	out.Set("prefix", rf.form.Prefix())

	fieldDicts := ordered.NewMap()
	out.Set("fields", fieldDicts)
	out.Set("errors", errorMap(rf.form.Errors()))
	out.Set("fieldsets", fieldsetList(rf.fieldsets))
	out.Set("ordered_fields", stringList(rf.fields))

	if provider, ok := rf.form.(model.LayoutProvider); ok {
		if root := provider.Layout(); root != nil {
			parsed, err := layout.Parse(root)
			if err != nil {
				return nil, fmt.Errorf("remoteform: parse layout: %w", err)
			}
			out.Set("layout", parsed)
		}
	}

	overrides := rf.form.Initial()
	initialData := make(map[string]any, len(rf.fields))

	for _, name := range rf.fields {
		dict := rf.serializeField(name, overrides[name])

		if _, readonly := rf.readonly[name]; readonly {
			dict["readonly"] = true
		}
		if _, ok := dict["initial"]; !ok {
			dict["initial"] = nil
		}

		fieldDicts.Set(name, dict)
		initialData[name] = dict["initial"]
	}

	if rf.form.IsBound() {
		data := rf.form.Data()
		if data == nil {
			data = map[string]any{}
		}
		out.Set("data", data)
	} else {
		out.Set("data", initialData)
	}

	lazy.Resolve(out)
	return out, nil
}

// serializeField dispatches to the per-type serializer. A missing serializer
// or a serialization error yields an empty dict so one broken field never
// takes down the whole export.
func (rf *RemoteForm) serializeField(name string, override any) map[string]any {
	record, ok := rf.form.Field(name)
	if !ok {
		rf.logger.Warn("field disappeared from form during export", zap.String("field", name))
		return map[string]any{}
	}

	serializer, ok := rf.registry.Get(record.Type)
	if !ok {
		rf.logger.Warn("no serializer registered for field type",
			zap.String("field", name),
			zap.String("type", string(record.Type)))
		return map[string]any{}
	}

	dict, err := serializer(record, override, name)
	if err != nil {
		rf.logger.Warn("error serializing field",
			zap.String("field", name),
			zap.Error(err))
		return map[string]any{}
	}
	if dict == nil {
		dict = map[string]any{}
	}
	return dict
}

func stringList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string(nil), values...)
}

func errorMap(errors map[string][]string) map[string][]string {
	out := make(map[string][]string, len(errors))
	for name, messages := range errors {
		out[name] = append([]string(nil), messages...)
	}
	return out
}

// fieldsetList resolves any lazy attribute values up front: the final
// resolution pass does not descend into typed slices.
func fieldsetList(fieldsets []model.Fieldset) []model.Fieldset {
	if fieldsets == nil {
		return []model.Fieldset{}
	}
	out := make([]model.Fieldset, len(fieldsets))
	for i, fieldset := range fieldsets {
		if len(fieldset.Attrs) > 0 {
			attrs := make(map[string]any, len(fieldset.Attrs))
			for key, value := range fieldset.Attrs {
				attrs[key] = lazy.Resolve(value)
			}
			fieldset.Attrs = attrs
		}
		out[i] = fieldset
	}
	return out
}

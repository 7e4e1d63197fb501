package remoteform

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-remoteform/pkg/fields"
	"github.com/goliatone/go-remoteform/pkg/layout"
	"github.com/goliatone/go-remoteform/pkg/lazy"
	"github.com/goliatone/go-remoteform/pkg/model"
)

func mustExport(t *testing.T, rf *RemoteForm) map[string]any {
	t.Helper()
	export, err := rf.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	payload, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	return decoded
}

func fieldDict(t *testing.T, export map[string]any, name string) map[string]any {
	t.Helper()
	dicts, ok := export["fields"].(map[string]any)
	if !ok {
		t.Fatalf("fields key missing or wrong shape: %T", export["fields"])
	}
	dict, ok := dicts[name].(map[string]any)
	if !ok {
		t.Fatalf("field %q missing from export", name)
	}
	return dict
}

func TestExport_KeySet(t *testing.T) {
	rf, err := New(personForm())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export, err := rf.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := []string{
		"title", "non_field_errors", "label_suffix", "is_bound", "prefix",
		"fields", "errors", "fieldsets", "ordered_fields", "data",
	}
	if diff := cmp.Diff(want, export.Keys()); diff != "" {
		t.Fatalf("export keys mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_Metadata(t *testing.T) {
	form := personForm()
	form.SetPrefix("person")
	form.AddNonFieldError("something went wrong")

	rf, err := New(form)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export := mustExport(t, rf)

	if export["title"] != "PersonForm" {
		t.Fatalf("title = %v", export["title"])
	}
	if export["label_suffix"] != ":" {
		t.Fatalf("label_suffix = %v", export["label_suffix"])
	}
	if export["prefix"] != "person" {
		t.Fatalf("prefix = %v", export["prefix"])
	}
	if export["is_bound"] != false {
		t.Fatalf("is_bound = %v", export["is_bound"])
	}
	nonField, _ := export["non_field_errors"].([]any)
	if len(nonField) != 1 || nonField[0] != "something went wrong" {
		t.Fatalf("non_field_errors = %v", export["non_field_errors"])
	}
}

func TestExport_UnboundDataUsesInitialValues(t *testing.T) {
	form := personForm()
	form.SetInitial("name", "Ada")

	rf, err := New(form)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export := mustExport(t, rf)

	want := map[string]any{"name": "Ada", "age": nil}
	if diff := cmp.Diff(want, export["data"]); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_BoundDataVerbatim(t *testing.T) {
	form := personForm()
	form.SetInitial("name", "Ada")
	form.Bind(map[string]any{"name": "Grace", "age": float64(36)})

	rf, err := New(form)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export := mustExport(t, rf)

	if export["is_bound"] != true {
		t.Fatalf("is_bound = %v", export["is_bound"])
	}
	want := map[string]any{"name": "Grace", "age": float64(36)}
	if diff := cmp.Diff(want, export["data"]); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_InitialOverridePrecedence(t *testing.T) {
	form := model.NewDefinition("OverrideForm")
	form.MustAddField("name", model.FieldRecord{
		Type:    model.FieldTypeString,
		Initial: "default",
	})
	form.SetInitial("name", "override")

	rf, err := New(form)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export := mustExport(t, rf)

	if got := fieldDict(t, export, "name")["initial"]; got != "override" {
		t.Fatalf("initial = %v, want %q", got, "override")
	}
}

func TestExport_InitialKeyAlwaysPresent(t *testing.T) {
	registry := fields.NewEmptyRegistry()
	registry.MustRegister(model.FieldTypeString, func(model.FieldRecord, any, string) (map[string]any, error) {
		// Deliberately omits the initial key.
		return map[string]any{"type": "string"}, nil
	})

	rf, err := New(personForm(), WithRegistry(registry))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export := mustExport(t, rf)

	dict := fieldDict(t, export, "name")
	if _, ok := dict["initial"]; !ok {
		t.Fatal("initial key missing from serialized field")
	}
	if dict["initial"] != nil {
		t.Fatalf("initial = %v, want nil", dict["initial"])
	}
}

func TestExport_ReadonlyOverride(t *testing.T) {
	rf, err := New(personForm(), WithReadonly("age"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export := mustExport(t, rf)

	if got := fieldDict(t, export, "age")["readonly"]; got != true {
		t.Fatalf("readonly = %v, want true", got)
	}
	if _, ok := fieldDict(t, export, "name")["readonly"]; ok {
		t.Fatal("unexpected readonly flag on name")
	}
}

func TestExport_UnknownFieldTypeDegradesToEmptyDict(t *testing.T) {
	form := personForm()
	form.MustAddField("mystery", model.FieldRecord{Type: FieldType("alien")})

	logger, logs := observedLogger()
	rf, err := New(form, WithLogger(logger))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export := mustExport(t, rf)

	dict := fieldDict(t, export, "mystery")
	want := map[string]any{"initial": nil}
	if diff := cmp.Diff(want, dict); diff != "" {
		t.Fatalf("field dict mismatch (-want +got):\n%s", diff)
	}

	// Other fields are unaffected.
	if fieldDict(t, export, "name")["type"] != "string" {
		t.Fatal("name field should serialize normally")
	}
	if logs.FilterMessageSnippet("no serializer").Len() != 1 {
		t.Fatalf("expected a warning about the missing serializer, got %d entries", logs.Len())
	}
}

func TestExport_SerializerErrorDegradesToEmptyDict(t *testing.T) {
	registry := fields.NewEmptyRegistry()
	registry.MustRegister(model.FieldTypeString, func(model.FieldRecord, any, string) (map[string]any, error) {
		return nil, errors.New("boom")
	})
	registry.MustRegister(model.FieldTypeInteger, func(record model.FieldRecord, initial any, name string) (map[string]any, error) {
		return map[string]any{"type": "integer", "initial": initial}, nil
	})

	logger, logs := observedLogger()
	rf, err := New(personForm(), WithRegistry(registry), WithLogger(logger))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export := mustExport(t, rf)

	dict := fieldDict(t, export, "name")
	want := map[string]any{"initial": nil}
	if diff := cmp.Diff(want, dict); diff != "" {
		t.Fatalf("field dict mismatch (-want +got):\n%s", diff)
	}
	if logs.FilterMessageSnippet("error serializing").Len() != 1 {
		t.Fatalf("expected a serialization warning, got %d entries", logs.Len())
	}
}

func TestExport_LayoutAttached(t *testing.T) {
	form := personForm()
	form.AttachLayout(&layout.Layout{Children: []layout.Node{
		&layout.Div{CSSClass: "row", Children: []layout.Node{
			&layout.FieldRef{Names: []string{"name"}},
		}},
	}})

	rf, err := New(form)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export := mustExport(t, rf)

	root, ok := export["layout"].(map[string]any)
	if !ok {
		t.Fatalf("layout missing or wrong shape: %T", export["layout"])
	}
	if root["type"] != "layout" {
		t.Fatalf("layout type = %v", root["type"])
	}
	children, _ := root["children"].([]any)
	if len(children) != 1 {
		t.Fatalf("layout children = %v", root["children"])
	}
}

func TestExport_LayoutErrorIsFatal(t *testing.T) {
	form := personForm()
	form.AttachLayout(&layout.Layout{Children: []layout.Node{
		&layout.FieldRef{Names: []string{"name", "age"}},
	}})

	rf, err := New(form)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := rf.Export(); !errors.Is(err, layout.ErrFieldArity) {
		t.Fatalf("expected field arity error, got %v", err)
	}
}

func TestExport_NoLayoutOmitsKey(t *testing.T) {
	rf, err := New(personForm())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export, err := rf.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if export.Has("layout") {
		t.Fatal("layout key should be omitted when the form has no layout")
	}
}

func TestExport_ResolvesLazyText(t *testing.T) {
	form := model.NewDefinition("LazyForm")
	form.MustAddField("name", model.FieldRecord{
		Type:  model.FieldTypeString,
		Label: lazy.TextFunc(func() string { return "Resolved Label" }),
	})

	rf, err := New(form)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export := mustExport(t, rf)

	if got := fieldDict(t, export, "name")["label"]; got != "Resolved Label" {
		t.Fatalf("label = %v, want resolved text", got)
	}
}

func TestExport_FieldOrderPreserved(t *testing.T) {
	form := model.NewDefinition("WideForm")
	names := []string{"zulu", "alpha", "mike", "echo"}
	for _, name := range names {
		form.MustAddField(name, model.FieldRecord{Type: model.FieldTypeString})
	}

	rf, err := New(form)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	export, err := rf.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dicts, _ := export.Get("fields")
	orderedFields, ok := dicts.(interface{ Keys() []string })
	if !ok {
		t.Fatalf("fields value does not expose key order: %T", dicts)
	}
	if diff := cmp.Diff(names, orderedFields.Keys()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	payload, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}
	if !orderedInPayload(string(payload), names) {
		t.Fatalf("serialized payload does not preserve declaration order: %s", payload)
	}
}

func orderedInPayload(payload string, names []string) bool {
	last := -1
	for _, name := range names {
		idx := strings.Index(payload, `"`+name+`":`)
		if idx < 0 || idx < last {
			return false
		}
		last = idx
	}
	return true
}

// FieldType aliases keep the test fixtures terse.
type FieldType = model.FieldType

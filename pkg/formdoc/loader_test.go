package formdoc

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-remoteform/pkg/layout"
	"github.com/goliatone/go-remoteform/pkg/model"
)

const articleYAML = `
forms:
  createArticle:
    fieldsets:
      - name: main
        fields: [title, body]
        attrs:
          legend: Main
    layout:
      - div:
          type: row
          class: form-row
          attrs: 'data-grid="true"'
          children:
            - field:
                name: title
                attrs:
                  placeholder: Title
      - field:
          name: body
      - raw:
          type: separator
`

func TestLoadFS_YAMLDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/article.yaml": {Data: []byte(articleYAML)},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}

	config, ok := store.Form("createArticle")
	if !ok {
		t.Fatal("createArticle not loaded")
	}

	wantFieldsets := []model.Fieldset{
		{Name: "main", Fields: []string{"title", "body"}, Attrs: map[string]any{"legend": "Main"}},
	}
	if diff := cmp.Diff(wantFieldsets, config.Fieldsets); diff != "" {
		t.Fatalf("fieldsets mismatch (-want +got):\n%s", diff)
	}

	if config.Layout == nil || len(config.Layout.Children) != 3 {
		t.Fatalf("layout children = %+v", config.Layout)
	}

	div, ok := config.Layout.Children[0].(*layout.Div)
	if !ok {
		t.Fatalf("first child is %T, want *layout.Div", config.Layout.Children[0])
	}
	if div.TypeName != "row" || div.CSSClass != "form-row" {
		t.Fatalf("div = %+v", div)
	}
	if len(div.Children) != 1 {
		t.Fatalf("div children = %d", len(div.Children))
	}

	ref, ok := config.Layout.Children[1].(*layout.FieldRef)
	if !ok {
		t.Fatalf("second child is %T, want *layout.FieldRef", config.Layout.Children[1])
	}
	if len(ref.Names) != 1 || ref.Names[0] != "body" {
		t.Fatalf("field ref = %+v", ref)
	}

	raw, ok := config.Layout.Children[2].(layout.Raw)
	if !ok {
		t.Fatalf("third child is %T, want layout.Raw", config.Layout.Children[2])
	}
	if raw["type"] != "separator" {
		t.Fatalf("raw = %v", raw)
	}
}

func TestLoadFS_JSONDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"forms.json": {Data: []byte(`{
			"forms": {
				"editProfile": {
					"fieldsets": [{"name": "identity", "fields": ["name"]}]
				}
			}
		}`)},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	config, ok := store.Form("editProfile")
	if !ok {
		t.Fatal("editProfile not loaded")
	}
	if len(config.Fieldsets) != 1 || config.Fieldsets[0].Name != "identity" {
		t.Fatalf("fieldsets = %+v", config.Fieldsets)
	}
}

func TestLoadFS_DuplicateFormIsError(t *testing.T) {
	doc := "forms:\n  createArticle:\n    fieldsets: []\n"
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(doc)},
		"b.yaml": {Data: []byte(doc)},
	}

	if _, err := LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "duplicate form") {
		t.Fatalf("expected duplicate form error, got %v", err)
	}
}

func TestLoadFS_AmbiguousNodeIsError(t *testing.T) {
	fsys := fstest.MapFS{
		"forms.yaml": {Data: []byte(`
forms:
  broken:
    layout:
      - div:
          class: a
        field:
          name: b
`)},
	}

	if _, err := LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "exactly one of") {
		t.Fatalf("expected ambiguous node error, got %v", err)
	}
}

func TestLoadFS_NilFSIsEmpty(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if !store.Empty() {
		t.Fatal("expected empty store")
	}
}

func TestStore_Apply(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/article.yaml": {Data: []byte(articleYAML)},
	}
	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}

	def := model.NewDefinition("createArticle")
	def.MustAddField("title", model.FieldRecord{Type: model.FieldTypeString})
	def.MustAddField("body", model.FieldRecord{Type: model.FieldTypeText})

	if !store.Apply("createArticle", def) {
		t.Fatal("Apply reported no declarations")
	}
	if len(def.Fieldsets()) != 1 {
		t.Fatalf("fieldsets = %+v", def.Fieldsets())
	}
	if def.Layout() == nil {
		t.Fatal("layout not attached")
	}

	if store.Apply("unknownForm", def) {
		t.Fatal("Apply should report false for unknown forms")
	}
}

// Package formdoc loads fieldset and layout declarations for named forms from
// JSON or YAML documents, so presentation hints can live in files next to the
// form definitions that use them.
package formdoc

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-remoteform/pkg/layout"
	"github.com/goliatone/go-remoteform/pkg/model"
)

// Store keeps the parsed declarations keyed by form name. It is safe for
// concurrent readers when treated as immutable after loading.
type Store struct {
	forms map[string]FormConfig
}

// FormConfig holds the declarations for one form.
type FormConfig struct {
	Fieldsets []model.Fieldset
	Layout    *layout.Layout
}

// LoadFS walks the provided filesystem and parses every JSON/YAML form
// document. Duplicate form names across files are an error. A nil filesystem
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]FormConfig)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdoc: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for name, raw := range doc.Forms {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				return fmt.Errorf("formdoc: file %s declares an empty form name", path)
			}
			if _, exists := store.forms[trimmed]; exists {
				return fmt.Errorf("formdoc: duplicate form %q (file %s)", trimmed, path)
			}
			config, err := buildFormConfig(raw, trimmed, path)
			if err != nil {
				return err
			}
			store.forms[trimmed] = config
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Form returns the configuration declared for name.
func (s *Store) Form(name string) (FormConfig, bool) {
	if s == nil {
		return FormConfig{}, false
	}
	config, ok := s.forms[name]
	return config, ok
}

// Empty reports whether the store holds any form declarations.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// Apply attaches the declarations for name to the definition, reporting
// whether any were found.
func (s *Store) Apply(name string, definition *model.Definition) bool {
	config, ok := s.Form(name)
	if !ok || definition == nil {
		return false
	}
	if len(config.Fieldsets) > 0 {
		definition.SetFieldsets(config.Fieldsets)
	}
	if config.Layout != nil {
		definition.AttachLayout(config.Layout)
	}
	return true
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Fieldsets []fieldsetFile `json:"fieldsets" yaml:"fieldsets"`
	Layout    []nodeFile     `json:"layout" yaml:"layout"`
}

type fieldsetFile struct {
	Name   string         `json:"name" yaml:"name"`
	Fields []string       `json:"fields" yaml:"fields"`
	Attrs  map[string]any `json:"attrs" yaml:"attrs"`
}

// nodeFile is a tagged union: exactly one of div, field, or raw must be set.
type nodeFile struct {
	Div   *divFile       `json:"div" yaml:"div"`
	Field *fieldFile     `json:"field" yaml:"field"`
	Raw   map[string]any `json:"raw" yaml:"raw"`
}

type divFile struct {
	Type     string     `json:"type" yaml:"type"`
	Class    string     `json:"class" yaml:"class"`
	Attrs    string     `json:"attrs" yaml:"attrs"`
	Children []nodeFile `json:"children" yaml:"children"`
}

type fieldFile struct {
	Name  string            `json:"name" yaml:"name"`
	Attrs map[string]string `json:"attrs" yaml:"attrs"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("formdoc: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("formdoc: parse %s: invalid JSON or YAML", source)
}

func buildFormConfig(raw formFile, name, source string) (FormConfig, error) {
	config := FormConfig{}

	for idx, declared := range raw.Fieldsets {
		fieldsetName := strings.TrimSpace(declared.Name)
		if fieldsetName == "" {
			return FormConfig{}, fmt.Errorf("formdoc: form %q (file %s) fieldset %d has no name", name, source, idx)
		}
		config.Fieldsets = append(config.Fieldsets, model.Fieldset{
			Name:   fieldsetName,
			Fields: append([]string(nil), declared.Fields...),
			Attrs:  declared.Attrs,
		})
	}

	if len(raw.Layout) > 0 {
		children, err := buildNodes(raw.Layout, name, source)
		if err != nil {
			return FormConfig{}, err
		}
		config.Layout = &layout.Layout{Children: children}
	}

	return config, nil
}

func buildNodes(files []nodeFile, name, source string) ([]layout.Node, error) {
	nodes := make([]layout.Node, 0, len(files))
	for idx, file := range files {
		node, err := buildNode(file, name, source)
		if err != nil {
			return nil, fmt.Errorf("formdoc: form %q (file %s) layout node %d: %w", name, source, idx, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func buildNode(file nodeFile, name, source string) (layout.Node, error) {
	declared := 0
	if file.Div != nil {
		declared++
	}
	if file.Field != nil {
		declared++
	}
	if file.Raw != nil {
		declared++
	}
	if declared != 1 {
		return nil, fmt.Errorf("expected exactly one of div, field, or raw, got %d", declared)
	}

	switch {
	case file.Div != nil:
		children, err := buildNodes(file.Div.Children, name, source)
		if err != nil {
			return nil, err
		}
		return &layout.Div{
			TypeName:  file.Div.Type,
			CSSClass:  file.Div.Class,
			FlatAttrs: file.Div.Attrs,
			Children:  children,
		}, nil

	case file.Field != nil:
		if strings.TrimSpace(file.Field.Name) == "" {
			return nil, fmt.Errorf("field reference has no name")
		}
		return &layout.FieldRef{
			Names: []string{file.Field.Name},
			Attrs: file.Field.Attrs,
		}, nil

	default:
		return layout.Raw(file.Raw), nil
	}
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Package openapi builds form definitions from OpenAPI operations, so a form
// can be declared once in an API document and exported to remote renderers
// without hand-writing field records.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-remoteform/pkg/model"
)

// requestMediaTypes lists body content types considered form sources, in
// preference order.
var requestMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Option customises the builder.
type Option func(*Builder)

// WithLogger injects the warning sink used for skipped schema shapes.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// Builder converts OpenAPI operations into model.Definition values.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder constructs a Builder applying any provided options.
func NewBuilder(options ...Option) *Builder {
	b := &Builder{}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(b)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	return b
}

// DefinitionFromFile loads an OpenAPI document from disk and builds the form
// definition for operationID.
func (b *Builder) DefinitionFromFile(ctx context.Context, path, operationID string) (*model.Definition, error) {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document %s: %w", path, err)
	}
	return b.Definition(ctx, doc, operationID)
}

// DefinitionFromData parses an OpenAPI payload and builds the form definition
// for operationID.
func (b *Builder) DefinitionFromData(ctx context.Context, raw []byte, operationID string) (*model.Definition, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: raw document is empty")
	}
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return b.Definition(ctx, doc, operationID)
}

// Definition builds a form definition from the request body schema of the
// operation identified by operationID. Schema shapes the field model cannot
// express are skipped with a warning rather than failing the build.
func (b *Builder) Definition(ctx context.Context, doc *openapi3.T, operationID string) (*model.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}
	if strings.TrimSpace(operationID) == "" {
		return nil, errors.New("openapi: operation id is required")
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	schema := requestSchema(operation)
	if schema == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body schema", operationID)
	}

	definition := model.NewDefinition(operationID)
	required := toSet(schema.Required)

	for _, name := range sortedPropertyNames(schema.Properties) {
		property := schema.Properties[name]
		if property == nil || property.Value == nil {
			b.logger.Warn("skipping unresolved property", zap.String("field", name))
			continue
		}
		record, ok := b.fieldFromSchema(name, property.Value)
		if !ok {
			continue
		}
		_, isRequired := required[name]
		record.Required = isRequired
		if err := definition.AddField(name, record); err != nil {
			return nil, err
		}
	}

	return definition, nil
}

func (b *Builder) fieldFromSchema(name string, schema *openapi3.Schema) (model.FieldRecord, bool) {
	record := model.FieldRecord{
		Label:    model.DefaultLabeler(name),
		HelpText: schema.Description,
		Initial:  schema.Default,
	}
	if title := strings.TrimSpace(schema.Title); title != "" {
		record.Label = title
	}

	switch schemaType(schema) {
	case "string":
		record.Type = stringFieldType(schema)
		if len(schema.Enum) > 0 {
			record.Type = model.FieldTypeChoice
			record.Choices = choicesFromEnum(schema.Enum)
		}
		if schema.MaxLength != nil {
			value := int(*schema.MaxLength)
			record.MaxLength = &value
		}
		if schema.MinLength != 0 {
			value := int(schema.MinLength)
			record.MinLength = &value
		}
		record.Pattern = schema.Pattern

	case "integer", "number":
		record.Type = model.FieldTypeNumber
		if schemaType(schema) == "integer" {
			record.Type = model.FieldTypeInteger
		}
		if schema.Min != nil {
			value := *schema.Min
			record.MinValue = &value
		}
		if schema.Max != nil {
			value := *schema.Max
			record.MaxValue = &value
		}

	case "boolean":
		record.Type = model.FieldTypeBoolean

	case "array":
		items := schema.Items
		if items == nil || items.Value == nil || len(items.Value.Enum) == 0 {
			b.logger.Warn("skipping array property without enum items", zap.String("field", name))
			return model.FieldRecord{}, false
		}
		record.Type = model.FieldTypeMultiChoice
		record.Choices = choicesFromEnum(items.Value.Enum)

	default:
		b.logger.Warn("skipping property with unsupported schema type",
			zap.String("field", name),
			zap.String("type", schemaType(schema)))
		return model.FieldRecord{}, false
	}

	return record, true
}

func stringFieldType(schema *openapi3.Schema) model.FieldType {
	switch strings.ToLower(strings.TrimSpace(schema.Format)) {
	case "email":
		return model.FieldTypeEmail
	case "uri", "url":
		return model.FieldTypeURL
	case "date":
		return model.FieldTypeDate
	case "date-time":
		return model.FieldTypeDateTime
	case "time":
		return model.FieldTypeTime
	case "textarea":
		return model.FieldTypeText
	default:
		return model.FieldTypeString
	}
}

func choicesFromEnum(values []any) []model.Choice {
	choices := make([]model.Choice, 0, len(values))
	for _, value := range values {
		choices = append(choices, model.Choice{
			Value: value,
			Label: model.DefaultLabeler(fmt.Sprint(value)),
		})
	}
	return choices
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func sortedPropertyNames(properties openapi3.Schemas) []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

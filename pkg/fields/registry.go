package fields

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-remoteform/pkg/model"
)

// Serializer converts one field record into its wire dict. The initial
// argument is the form-level override for the field (nil when absent); it
// wins over the record's own Initial. Implementations must not mutate the
// record.
type Serializer func(record model.FieldRecord, initial any, name string) (map[string]any, error)

// Registry maps field types to their serializers. A missing entry is a
// recoverable condition at export time, not an error here.
type Registry struct {
	mu          sync.RWMutex
	serializers map[model.FieldType]Serializer
}

// NewRegistry constructs a registry with the built-in serializers for every
// supported field type registered.
func NewRegistry() *Registry {
	reg := &Registry{
		serializers: make(map[model.FieldType]Serializer),
	}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry with no serializers. Useful for
// callers that want full control over the supported type set.
func NewEmptyRegistry() *Registry {
	return &Registry{
		serializers: make(map[model.FieldType]Serializer),
	}
}

// Register adds a serializer for fieldType, replacing any existing entry.
func (r *Registry) Register(fieldType model.FieldType, serializer Serializer) error {
	if serializer == nil {
		return fmt.Errorf("fields: serializer is required")
	}
	if fieldType == "" {
		return fmt.Errorf("fields: field type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.serializers[fieldType] = serializer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(fieldType model.FieldType, serializer Serializer) {
	if err := r.Register(fieldType, serializer); err != nil {
		panic(err)
	}
}

// Get retrieves the serializer for fieldType.
func (r *Registry) Get(fieldType model.FieldType) (Serializer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	serializer, ok := r.serializers[fieldType]
	return serializer, ok
}

// Has reports whether fieldType has a serializer.
func (r *Registry) Has(fieldType model.FieldType) bool {
	_, ok := r.Get(fieldType)
	return ok
}

// List returns the registered field types sorted alphabetically.
func (r *Registry) List() []model.FieldType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]model.FieldType, 0, len(r.serializers))
	for fieldType := range r.serializers {
		types = append(types, fieldType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

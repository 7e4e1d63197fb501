package remoteform

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-remoteform/pkg/fields"
	"github.com/goliatone/go-remoteform/pkg/model"
)

// Option customises the export engine configuration.
type Option func(*RemoteForm)

// WithExclude names fields to leave out of the export.
func WithExclude(names ...string) Option {
	return func(rf *RemoteForm) {
		rf.excluded = toSet(names)
	}
}

// WithInclude names a positive field selection. Combining a non-empty include
// with a non-empty exclude is an irreconcilable conflict and resets both.
func WithInclude(names ...string) Option {
	return func(rf *RemoteForm) {
		rf.included = toSet(names)
	}
}

// WithReadonly names fields whose export dict gets a forced readonly flag.
func WithReadonly(names ...string) Option {
	return func(rf *RemoteForm) {
		rf.readonly = toSet(names)
	}
}

// WithOrdering overrides the form's declared field order. Fields absent from
// the sequence are not exported.
func WithOrdering(names ...string) Option {
	return func(rf *RemoteForm) {
		rf.ordering = append([]string(nil), names...)
	}
}

// WithFieldsets supplies the fieldset declaration to validate and export. It
// overrides any fieldsets declared on the form itself.
func WithFieldsets(fieldsets ...model.Fieldset) Option {
	return func(rf *RemoteForm) {
		rf.fieldsets = append([]model.Fieldset(nil), fieldsets...)
		rf.fieldsetsSupplied = true
	}
}

// WithRegistry injects a custom per-type serializer registry.
func WithRegistry(registry *fields.Registry) Option {
	return func(rf *RemoteForm) {
		rf.registry = registry
	}
}

// WithLogger injects the warning sink. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(rf *RemoteForm) {
		rf.logger = logger
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

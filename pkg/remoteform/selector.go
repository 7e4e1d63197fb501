package remoteform

import (
	"sort"

	"go.uber.org/zap"
)

// resolveFields validates the selection directives against the form's field
// set and computes the definitive ordered field list. Invalid directives are
// reset to empty with a warning; nothing here ever fails the export.
func (rf *RemoteForm) resolveFields() {
	all := make(map[string]struct{}, len(rf.order))
	for _, name := range rf.order {
		all[name] = struct{}{}
	}
	rf.all = all

	if missing := missingFrom(rf.excluded, all); len(rf.excluded) > 0 && len(missing) > 0 {
		rf.logger.Warn("excluded fields are not present in form fields", zap.Strings("fields", missing))
		rf.excluded = map[string]struct{}{}
	}
	if missing := missingFrom(rf.included, all); len(rf.included) > 0 && len(missing) > 0 {
		rf.logger.Warn("included fields are not present in form fields", zap.Strings("fields", missing))
		rf.included = map[string]struct{}{}
	}
	if missing := missingFrom(rf.readonly, all); len(rf.readonly) > 0 && len(missing) > 0 {
		rf.logger.Warn("readonly fields are not present in form fields", zap.Strings("fields", missing))
		rf.readonly = map[string]struct{}{}
	}
	if missing := missingFrom(toSet(rf.ordering), all); len(rf.ordering) > 0 && len(missing) > 0 {
		rf.logger.Warn("ordering fields are not present in form fields", zap.Strings("fields", missing))
		rf.ordering = nil
	}

	// Positive and negative selection together is ambiguous. Rather than
	// guessing precedence, both directives are dropped.
	if len(rf.included) > 0 && len(rf.excluded) > 0 {
		rf.logger.Warn("include and exclude directives conflict, ignoring both",
			zap.Strings("include", sortedKeys(rf.included)),
			zap.Strings("exclude", sortedKeys(rf.excluded)))
		rf.included = map[string]struct{}{}
		rf.excluded = map[string]struct{}{}
	}

	// Guard against names that slipped past the include validation: anything
	// included but unknown to the form is treated as excluded.
	for name := range rf.included {
		if _, known := all[name]; !known {
			rf.excluded[name] = struct{}{}
		}
	}

	iteration := rf.ordering
	if len(iteration) == 0 {
		iteration = rf.order
	}

	resolved := make([]string, 0, len(iteration))
	seen := make(map[string]struct{}, len(iteration))
	for _, name := range iteration {
		if _, excluded := rf.excluded[name]; excluded {
			continue
		}
		if _, duplicate := seen[name]; duplicate {
			continue
		}
		seen[name] = struct{}{}
		resolved = append(resolved, name)
	}
	rf.fields = resolved
}

func missingFrom(names map[string]struct{}, all map[string]struct{}) []string {
	var missing []string
	for name := range names {
		if _, ok := all[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

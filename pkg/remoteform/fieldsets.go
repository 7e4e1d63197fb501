package remoteform

import (
	"go.uber.org/zap"
)

// validateFieldsets checks the declared fieldsets against the form's field
// set and the resolved field list. The rule is all-or-nothing: any unknown or
// excluded reference discards the whole declaration with a warning.
func (rf *RemoteForm) validateFieldsets() {
	if len(rf.fieldsets) == 0 {
		return
	}

	referenced := make(map[string]struct{})
	for _, fieldset := range rf.fieldsets {
		for _, name := range fieldset.Fields {
			referenced[name] = struct{}{}
		}
	}

	if missing := missingFrom(referenced, rf.all); len(missing) > 0 {
		rf.logger.Warn("fieldset fields are not present in form fields", zap.Strings("fields", missing))
		rf.fieldsets = nil
		return
	}

	if excluded := missingFrom(referenced, toSet(rf.fields)); len(excluded) > 0 {
		rf.logger.Warn("fieldset fields are excluded from the export", zap.Strings("fields", excluded))
		rf.fieldsets = nil
	}
}

package lazy

import (
	"strings"

	"github.com/goliatone/go-remoteform/pkg/ordered"
)

// Text is a deferred string value. Labels, help texts, and choice captions may
// be declared as translation lookups that only evaluate when the form is
// exported, so nothing lazy leaks into the payload.
type Text interface {
	Resolve() string
}

// Translator resolves a translation key for a locale. Implementations are
// expected to be read-only and safe for concurrent use.
type Translator interface {
	Translate(locale, key string) (string, error)
}

// TextFunc adapts a plain function into a Text value.
type TextFunc func() string

// Resolve implements Text.
func (f TextFunc) Resolve() string {
	if f == nil {
		return ""
	}
	return f()
}

// Translation is a Text backed by a Translator lookup. When the translator is
// nil, errors, or returns a blank string, the fallback is used; a blank
// fallback degrades to the key itself so the output is never empty by
// accident.
type Translation struct {
	Translator Translator
	Locale     string
	Key        string
	Fallback   string
}

// Resolve implements Text.
func (t Translation) Resolve() string {
	key := strings.TrimSpace(t.Key)
	if key == "" {
		return t.Fallback
	}
	if t.Translator != nil {
		if result, err := t.Translator.Translate(t.Locale, key); err == nil && strings.TrimSpace(result) != "" {
			return result
		}
	}
	if strings.TrimSpace(t.Fallback) != "" {
		return t.Fallback
	}
	return key
}

// Resolve walks value recursively and replaces every Text with its evaluated
// string. Ordered maps, plain maps, and slices are rewritten in place;
// everything else passes through untouched. Run once over a finished export
// structure before emitting it.
func Resolve(value any) any {
	switch v := value.(type) {
	case Text:
		return v.Resolve()
	case *ordered.Map:
		if v == nil {
			return v
		}
		for _, key := range v.Keys() {
			entry, _ := v.Get(key)
			v.Set(key, Resolve(entry))
		}
		return v
	case map[string]any:
		for key, entry := range v {
			v[key] = Resolve(entry)
		}
		return v
	case map[string][]string:
		return v
	case []any:
		for i, entry := range v {
			v[i] = Resolve(entry)
		}
		return v
	default:
		return value
	}
}

package layout

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrFieldArity is returned when a FieldRef wraps anything other than exactly
// one field name. A malformed reference is a configuration mistake the caller
// must fix, not data to degrade around.
var ErrFieldArity = errors.New("layout: field reference must wrap exactly one field name")

// Parse flattens a layout tree into a uniform node structure. Each parsed
// node is a map with a "type" tag, a "children" list, and variant-specific
// keys ("attrs", "name", or raw passthrough data). Structural defects abort
// the parse: no partial tree is ever returned.
func Parse(node Node) (map[string]any, error) {
	if node == nil {
		return nil, errors.New("layout: node is nil")
	}

	obj := map[string]any{
		"children": []any{},
	}

	parsed, err := parseNode(node)
	if err != nil {
		return nil, err
	}
	for key, value := range parsed {
		obj[key] = value
	}

	if obj["type"] != "field" {
		kids := make([]any, 0, len(children(node)))
		for _, child := range children(node) {
			parsedChild, err := Parse(child)
			if err != nil {
				return nil, err
			}
			kids = append(kids, parsedChild)
		}
		obj["children"] = kids
	}

	return obj, nil
}

func parseNode(node Node) (map[string]any, error) {
	res := make(map[string]any)

	switch n := node.(type) {
	case *Layout:
		res["type"] = "layout"

	case *Div:
		typeName := strings.TrimSpace(n.TypeName)
		if typeName == "" {
			typeName = "div"
		}
		res["type"] = Slugify(typeName)

		attrs, err := ParseFlatAttrs(n.FlatAttrs)
		if err != nil {
			return nil, err
		}
		attrs["class"] = n.CSSClass
		res["attrs"] = attrs

	case *FieldRef:
		if len(n.Names) != 1 {
			return nil, fmt.Errorf("%w: got %d", ErrFieldArity, len(n.Names))
		}
		res["type"] = "field"
		res["name"] = n.Names[0]
		attrs := make(map[string]string, len(n.Attrs))
		for key, value := range n.Attrs {
			attrs[key] = value
		}
		res["attrs"] = attrs

	case Raw:
		res["type"] = "raw"
		for key, value := range n {
			res[key] = value
		}

	default:
		return nil, fmt.Errorf("layout: unknown layout object %T", node)
	}

	if attrs, ok := res["attrs"]; ok {
		res["attrs"] = normalizeAttrKeys(attrs)
	}

	return res, nil
}

// normalizeAttrKeys rewrites hyphenated attribute keys with underscores so
// consumers can address them as identifiers.
func normalizeAttrKeys(attrs any) any {
	switch m := attrs.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for key, value := range m {
			out[strings.ReplaceAll(key, "-", "_")] = value
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(m))
		for key, value := range m {
			out[strings.ReplaceAll(key, "-", "_")] = value
		}
		return out
	default:
		return attrs
	}
}

// ParseFlatAttrs parses a string of key="value" pairs in XML-attribute syntax
// into a map. Malformed input is a fatal parse error.
func ParseFlatAttrs(raw string) (map[string]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return map[string]string{}, nil
	}

	decoder := xml.NewDecoder(strings.NewReader("<element " + trimmed + " />"))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("layout: parse flat attributes %q: %w", raw, err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		attrs := make(map[string]string, len(start.Attr))
		for _, attr := range start.Attr {
			attrs[attr.Name.Local] = attr.Value
		}
		return attrs, nil
	}

	return nil, fmt.Errorf("layout: parse flat attributes %q: no element found", raw)
}

// Slugify lowercases value and collapses anything that is not a letter,
// digit, or hyphen into single hyphens.
func Slugify(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	var builder strings.Builder
	builder.Grow(len(lowered))
	lastHyphen := false
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			builder.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(builder.String(), "-")
}

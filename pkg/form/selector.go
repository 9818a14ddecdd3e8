package form

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelector is returned when a target selector cannot be parsed.
var ErrInvalidSelector = errors.New("form: invalid selector")

// Selector is a parsed target selector. The supported grammar covers what the
// rule tables use: `#id`, `[name="x"]`, `tag[name="x"]`, `tag#id` and
// comma-separated lists of those.
type Selector struct {
	raw   string
	parts []selectorPart
}

type selectorPart struct {
	tag  string
	id   string
	name string
}

// ParseSelector parses raw into a Selector.
func ParseSelector(raw string) (Selector, error) {
	sel := Selector{raw: strings.TrimSpace(raw)}
	if sel.raw == "" {
		return Selector{}, fmt.Errorf("%w: empty", ErrInvalidSelector)
	}
	for _, chunk := range strings.Split(sel.raw, ",") {
		part, err := parseSelectorPart(strings.TrimSpace(chunk))
		if err != nil {
			return Selector{}, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, raw, err)
		}
		sel.parts = append(sel.parts, part)
	}
	return sel, nil
}

// String returns the selector as written.
func (s Selector) String() string { return s.raw }

func parseSelectorPart(chunk string) (selectorPart, error) {
	if chunk == "" {
		return selectorPart{}, errors.New("empty selector list entry")
	}

	var part selectorPart
	rest := chunk

	if open := strings.IndexByte(rest, '['); open >= 0 {
		if !strings.HasSuffix(rest, "]") {
			return selectorPart{}, errors.New("unterminated attribute selector")
		}
		attr := rest[open+1 : len(rest)-1]
		rest = rest[:open]

		key, value, ok := strings.Cut(attr, "=")
		if !ok || strings.TrimSpace(key) != "name" {
			return selectorPart{}, fmt.Errorf("unsupported attribute selector %q", attr)
		}
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		if value == "" {
			return selectorPart{}, errors.New("empty name attribute")
		}
		part.name = value
	}

	if hash := strings.IndexByte(rest, '#'); hash >= 0 {
		part.id = strings.TrimSpace(rest[hash+1:])
		rest = rest[:hash]
		if part.id == "" {
			return selectorPart{}, errors.New("empty id")
		}
	}

	part.tag = strings.ToLower(strings.TrimSpace(rest))
	if part.tag != "" && !knownTag(part.tag) {
		return selectorPart{}, fmt.Errorf("unsupported tag %q", part.tag)
	}
	if part.id == "" && part.name == "" {
		return selectorPart{}, errors.New("selector must name an id or a name attribute")
	}
	return part, nil
}

func knownTag(tag string) bool {
	switch tag {
	case "input", "textarea", "select", "div", "fieldset", "section":
		return true
	}
	return false
}

// Query resolves selector against the form and returns matching targets in
// document order without duplicates.
func (f *Form) Query(selector string) ([]Target, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	return f.Select(sel), nil
}

// Select resolves a parsed selector.
func (f *Form) Select(sel Selector) []Target {
	seen := make(map[Target]struct{})
	var out []Target
	add := func(t Target) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	for _, part := range sel.parts {
		if part.id != "" {
			el, ok := f.byID[part.id]
			if !ok {
				continue
			}
			target, ok := el.(Target)
			if !ok || !part.matches(target) {
				continue
			}
			add(target)
			continue
		}
		for _, field := range f.byName[part.name] {
			if part.matches(field) {
				add(field)
			}
		}
	}
	return out
}

func (p selectorPart) matches(t Target) bool {
	switch typed := t.(type) {
	case *Field:
		if p.name != "" && typed.Name != p.name {
			return false
		}
		if p.tag == "" {
			return true
		}
		return tagOf(typed.Kind) == p.tag
	case *Group:
		if p.name != "" {
			return false
		}
		return p.tag == "" || p.tag == "div" || p.tag == "fieldset" || p.tag == "section"
	}
	return false
}

func tagOf(kind FieldKind) string {
	switch kind {
	case KindTextArea:
		return "textarea"
	case KindSelect:
		return "select"
	default:
		return "input"
	}
}

package form

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	// DefaultFormID is the form identifier every case variant shares.
	DefaultFormID = "optometryCaseForm"
	// CaseTypeField names the hidden field carrying the case-type discriminator.
	CaseTypeField = "caseType"
	// DefaultCaseType applies when the discriminator field is absent.
	DefaultCaseType = "general"
)

var (
	// ErrDuplicateID is returned when two elements share an id.
	ErrDuplicateID = errors.New("form: duplicate element id")
	// ErrInvalidKind is returned for fields with an unknown kind.
	ErrInvalidKind = errors.New("form: invalid field kind")
)

// Form is the document a session operates on: an ordered tree of groups and
// fields with id and name indexes built once.
type Form struct {
	ID   string
	root *Group

	fields []*Field
	byID   map[string]Element
	byName map[string][]*Field
}

// New indexes root and captures every field's initial value and checked flag
// as the defaults Reset restores.
func New(id string, root *Group) (*Form, error) {
	if root == nil {
		root = &Group{}
	}
	f := &Form{
		ID:     strings.TrimSpace(id),
		root:   root,
		byID:   make(map[string]Element),
		byName: make(map[string][]*Field),
	}
	if f.ID == "" {
		f.ID = DefaultFormID
	}

	var err error
	register := func(el Element) {
		if err != nil {
			return
		}
		if id := el.ElementID(); id != "" {
			if _, exists := f.byID[id]; exists {
				err = fmt.Errorf("%w: %q", ErrDuplicateID, id)
				return
			}
			f.byID[id] = el
		}
		field, ok := el.(*Field)
		if !ok {
			return
		}
		if !field.Kind.Valid() {
			err = fmt.Errorf("%w: field %q has kind %q", ErrInvalidKind, field.ID, field.Kind)
			return
		}
		if field.Kind == KindSelect && field.Value == "" && len(field.Options) > 0 && !field.HasOption("") {
			field.Value = field.Options[0].Value
		}
		field.defaultValue = field.Value
		field.defaultChecked = field.Checked
		f.fields = append(f.fields, field)
		if field.Name != "" {
			f.byName[field.Name] = append(f.byName[field.Name], field)
		}
	}

	register(root)
	link(root, register)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func link(g *Group, fn func(Element)) {
	for _, child := range g.Children {
		child.setParent(g)
		fn(child)
		if nested, ok := child.(*Group); ok {
			link(nested, fn)
		}
	}
}

// Root returns the top-level group.
func (f *Form) Root() *Group { return f.root }

// Fields returns every field in document order.
func (f *Form) Fields() []*Field {
	return append([]*Field(nil), f.fields...)
}

// Element returns the element with the given id.
func (f *Form) Element(id string) (Element, bool) {
	el, ok := f.byID[id]
	return el, ok
}

// Field returns the field with the given id.
func (f *Form) Field(id string) (*Field, bool) {
	el, ok := f.byID[id]
	if !ok {
		return nil, false
	}
	field, ok := el.(*Field)
	return field, ok
}

// Group returns the group with the given id.
func (f *Form) Group(id string) (*Group, bool) {
	el, ok := f.byID[id]
	if !ok {
		return nil, false
	}
	group, ok := el.(*Group)
	return group, ok
}

// Named returns every field sharing name, in document order.
func (f *Form) Named(name string) []*Field {
	return f.byName[name]
}

// FirstNamed returns the first field carrying name.
func (f *Form) FirstNamed(name string) (*Field, bool) {
	fields := f.byName[name]
	if len(fields) == 0 {
		return nil, false
	}
	return fields[0], true
}

// CaseType returns the value of the hidden case-type discriminator.
func (f *Form) CaseType() string {
	if field, ok := f.FirstNamed(CaseTypeField); ok && strings.TrimSpace(field.Value) != "" {
		return strings.TrimSpace(field.Value)
	}
	return DefaultCaseType
}

// SetChecked writes the checked flag. Checking a radio unchecks every
// same-named sibling.
func (f *Form) SetChecked(field *Field, checked bool) {
	if field == nil || !field.Kind.Checkable() {
		return
	}
	if field.Kind == KindRadio && checked && field.Name != "" {
		for _, sibling := range f.byName[field.Name] {
			if sibling != field && sibling.Kind == KindRadio {
				sibling.Checked = false
			}
		}
	}
	field.Checked = checked
}

// Reset restores every field's initial value and checked flag. Visibility and
// disabled state are left for the toggle interpreter to recompute.
func (f *Form) Reset() {
	for _, field := range f.fields {
		field.Value = field.defaultValue
		field.Checked = field.defaultChecked
	}
}

// Visible reports whether the field and every group enclosing it are shown.
func (f *Form) Visible(field *Field) bool {
	if field == nil || field.Hidden {
		return false
	}
	for g := field.parent; g != nil; g = g.parent {
		if g.Hidden {
			return false
		}
	}
	return true
}

// NearestConditional returns the closest enclosing conditional group.
func NearestConditional(el Element) (*Group, bool) {
	for g := el.parentGroup(); g != nil; g = g.parent {
		if g.Conditional {
			return g, true
		}
	}
	return nil, false
}

// CaseLabel turns a camel-cased case type into words for user-facing
// messages: "myopiaManagement" becomes "myopia Management".
func CaseLabel(caseType string) string {
	var b strings.Builder
	for _, r := range caseType {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

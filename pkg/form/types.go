package form

// FieldKind is the closed set of input kinds a form can hold. It is resolved
// once when a field is registered so handlers never re-inspect tags or types.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextArea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
	KindRadio    FieldKind = "radio"
	KindHidden   FieldKind = "hidden"
)

// Valid reports whether k is one of the known kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindTextArea, KindSelect, KindCheckbox, KindRadio, KindHidden:
		return true
	}
	return false
}

// Checkable reports whether the kind carries a checked flag.
func (k FieldKind) Checkable() bool {
	return k == KindCheckbox || k == KindRadio
}

// Triggerable reports whether a change on a field of this kind can flip a
// toggle rule.
func (k FieldKind) Triggerable() bool {
	return k == KindCheckbox || k == KindRadio || k == KindSelect
}

// Resettable reports whether toggle rules may clear and disable the field.
// Hidden inputs carry static metadata and are never touched.
func (k FieldKind) Resettable() bool {
	return k.Valid() && k != KindHidden
}

// Option is a single choice inside a select field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Element is a node in the form tree: either a *Field or a *Group.
type Element interface {
	ElementID() string
	parentGroup() *Group
	setParent(*Group)
}

// Target is an element a toggle rule can act on. Groups act on every
// resettable field they contain; a field target acts on itself.
type Target interface {
	Element
	SetHidden(hidden bool)
	IsHidden() bool
	SetExpanded(expanded bool)
	ExpandedState() (expanded, ok bool)
	ContainedFields() []*Field
}

// Field models one named input, textarea or select.
type Field struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Kind      FieldKind `json:"kind"`
	InputType string    `json:"inputType,omitempty"`
	Label     string    `json:"label,omitempty"`
	Required  bool      `json:"required,omitempty"`
	Value     string    `json:"value,omitempty"`
	Checked   bool      `json:"checked,omitempty"`
	Disabled  bool      `json:"disabled,omitempty"`
	Hidden    bool      `json:"hidden,omitempty"`
	Options   []Option  `json:"options,omitempty"`
	Controls  []string  `json:"controls,omitempty"`
	Expanded  *bool     `json:"expanded,omitempty"`

	defaultValue   string
	defaultChecked bool
	parent         *Group
}

// ElementID returns the field id.
func (f *Field) ElementID() string { return f.ID }

func (f *Field) parentGroup() *Group { return f.parent }

func (f *Field) setParent(g *Group) { f.parent = g }

// Parent returns the group that directly contains the field.
func (f *Field) Parent() *Group { return f.parent }

// SetHidden toggles the field's own visibility.
func (f *Field) SetHidden(hidden bool) { f.Hidden = hidden }

// IsHidden reports whether the field itself is hidden.
func (f *Field) IsHidden() bool { return f.Hidden }

// SetExpanded mirrors the expanded state onto the field.
func (f *Field) SetExpanded(expanded bool) { f.Expanded = &expanded }

// ExpandedState returns the mirrored expanded state, if one was ever set.
func (f *Field) ExpandedState() (bool, bool) {
	if f.Expanded == nil {
		return false, false
	}
	return *f.Expanded, true
}

// ContainedFields returns the field itself when it is resettable.
func (f *Field) ContainedFields() []*Field {
	if !f.Kind.Resettable() {
		return nil
	}
	return []*Field{f}
}

// Controlled reports whether the field's controls relationship names id.
func (f *Field) Controlled(id string) bool {
	if id == "" {
		return false
	}
	for _, candidate := range f.Controls {
		if candidate == id {
			return true
		}
	}
	return false
}

// HasOption reports whether a select carries an option with value.
func (f *Field) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// SelectedIndex returns the index of the selected option or -1.
func (f *Field) SelectedIndex() int {
	for i, opt := range f.Options {
		if opt.Value == f.Value {
			return i
		}
	}
	return -1
}

// SetValue writes a value following the semantics of the field kind. Selects
// only accept one of their option values; anything else clears the selection.
func (f *Field) SetValue(value string) {
	if f.Kind == KindSelect && !f.HasOption(value) {
		f.Value = ""
		return
	}
	f.Value = value
}

// Clear resets the field to the supplied default the way a deactivated toggle
// does: checkables lose their checked flag, selects fall back to the first
// option, everything else takes defaultValue.
func (f *Field) Clear(defaultValue string) {
	switch {
	case f.Kind.Checkable():
		f.Checked = false
	case f.Kind == KindSelect:
		if len(f.Options) > 0 {
			f.Value = f.Options[0].Value
		} else {
			f.Value = ""
		}
	default:
		f.Value = defaultValue
	}
}

// Group is a container of fields and nested groups. Conditional groups are
// the sections whose visibility toggle rules control.
type Group struct {
	ID          string    `json:"id,omitempty"`
	Label       string    `json:"label,omitempty"`
	Conditional bool      `json:"conditional,omitempty"`
	Hidden      bool      `json:"hidden,omitempty"`
	Expanded    *bool     `json:"expanded,omitempty"`
	Children    []Element `json:"-"`

	parent *Group
}

// ElementID returns the group id.
func (g *Group) ElementID() string { return g.ID }

func (g *Group) parentGroup() *Group { return g.parent }

func (g *Group) setParent(p *Group) { g.parent = p }

// Parent returns the enclosing group, nil for the root.
func (g *Group) Parent() *Group { return g.parent }

// SetHidden toggles the group's visibility.
func (g *Group) SetHidden(hidden bool) { g.Hidden = hidden }

// IsHidden reports whether the group is hidden.
func (g *Group) IsHidden() bool { return g.Hidden }

// SetExpanded mirrors the expanded state onto the group.
func (g *Group) SetExpanded(expanded bool) { g.Expanded = &expanded }

// ExpandedState returns the mirrored expanded state, if one was ever set.
func (g *Group) ExpandedState() (bool, bool) {
	if g.Expanded == nil {
		return false, false
	}
	return *g.Expanded, true
}

// ContainedFields returns every resettable field under the group in document
// order.
func (g *Group) ContainedFields() []*Field {
	var out []*Field
	walk(g, func(el Element) {
		if f, ok := el.(*Field); ok && f.Kind.Resettable() {
			out = append(out, f)
		}
	})
	return out
}

func walk(g *Group, fn func(Element)) {
	for _, child := range g.Children {
		fn(child)
		if nested, ok := child.(*Group); ok {
			walk(nested, fn)
		}
	}
}

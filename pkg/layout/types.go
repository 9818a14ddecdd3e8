package layout

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-caseform/pkg/form"
	"github.com/goliatone/go-caseform/pkg/toggle"
)

// KindGroup marks a node that holds children instead of a value.
const KindGroup = "group"

// Variant describes one case form: its case type, its element tree and,
// optionally, its own rule table.
type Variant struct {
	CaseType string
	FormID   string
	Title    string
	Source   string
	Rules    []toggle.Rule
	Nodes    []Node
}

// Node is one element of a layout tree. Kind is "group" or a field kind.
type Node struct {
	Kind        string       `json:"kind" yaml:"kind"`
	ID          string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	Label       string       `json:"label,omitempty" yaml:"label,omitempty"`
	InputType   string       `json:"inputType,omitempty" yaml:"inputType,omitempty"`
	Value       string       `json:"value,omitempty" yaml:"value,omitempty"`
	Required    bool         `json:"required,omitempty" yaml:"required,omitempty"`
	Checked     bool         `json:"checked,omitempty" yaml:"checked,omitempty"`
	Conditional bool         `json:"conditional,omitempty" yaml:"conditional,omitempty"`
	Controls    []string     `json:"controls,omitempty" yaml:"controls,omitempty"`
	Options     []OptionSpec `json:"options,omitempty" yaml:"options,omitempty"`
	Children    []Node       `json:"children,omitempty" yaml:"children,omitempty"`
}

// OptionSpec is a select option. A bare scalar is both value and label.
type OptionSpec struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

func (o *OptionSpec) UnmarshalJSON(data []byte) error {
	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		*o = OptionSpec{Value: scalar}
		return nil
	}
	type plain OptionSpec
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("layout: option must be a string or {value, label}: %w", err)
	}
	*o = OptionSpec(out)
	return nil
}

func (o *OptionSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*o = OptionSpec{Value: node.Value}
		return nil
	}
	type plain OptionSpec
	var out plain
	if err := node.Decode(&out); err != nil {
		return fmt.Errorf("layout: option must be a string or {value, label}: %w", err)
	}
	*o = OptionSpec(out)
	return nil
}

// RuleTable returns the variant's own rules, or the shared table when the
// file defines none.
func (v Variant) RuleTable() []toggle.Rule {
	if len(v.Rules) > 0 {
		return append([]toggle.Rule(nil), v.Rules...)
	}
	return toggle.DefaultRules()
}

// Build materialises a fresh form. Each call returns an independent form, so
// one variant can back many sessions.
func (v Variant) Build() (*form.Form, error) {
	root := &form.Group{ID: ""}
	for _, node := range v.Nodes {
		el, err := node.element(v.Source)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, el)
	}

	formID := v.FormID
	if formID == "" {
		formID = form.DefaultFormID
	}
	f, err := form.New(formID, root)
	if err != nil {
		return nil, fmt.Errorf("layout: variant %q (file %s): %w", v.CaseType, v.Source, err)
	}
	if got := f.CaseType(); got != v.CaseType {
		return nil, fmt.Errorf("layout: variant %q (file %s) declares caseType field %q", v.CaseType, v.Source, got)
	}
	return f, nil
}

func (n Node) element(source string) (form.Element, error) {
	kind := strings.TrimSpace(n.Kind)
	if kind == KindGroup {
		group := &form.Group{ID: n.ID, Label: n.Label, Conditional: n.Conditional}
		for _, child := range n.Children {
			el, err := child.element(source)
			if err != nil {
				return nil, err
			}
			group.Children = append(group.Children, el)
		}
		return group, nil
	}

	if len(n.Children) > 0 {
		return nil, fmt.Errorf("layout: file %s: %s node %q cannot have children", source, kind, n.identity())
	}
	field := &form.Field{
		ID:        n.ID,
		Name:      n.Name,
		Kind:      form.FieldKind(kind),
		InputType: n.InputType,
		Label:     n.Label,
		Required:  n.Required,
		Value:     n.Value,
		Checked:   n.Checked,
		Controls:  append([]string(nil), n.Controls...),
	}
	if field.ID == "" {
		field.ID = defaultID(field)
	}
	for _, opt := range n.Options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		field.Options = append(field.Options, form.Option{Value: opt.Value, Label: label})
	}
	return field, nil
}

// defaultID mirrors how the page names inputs: the field name, or for a
// radio the name followed by its value.
func defaultID(field *form.Field) string {
	if field.Kind != form.KindRadio {
		return field.Name
	}
	return field.Name + strings.ReplaceAll(field.Value, " ", "")
}

func (n Node) identity() string {
	if n.ID != "" {
		return n.ID
	}
	return n.Name
}

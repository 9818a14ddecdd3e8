package toggle

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Action selects what a rule does to its targets.
type Action string

const (
	// ActionDisplay shows or hides the target and enables or clears the
	// fields it contains.
	ActionDisplay Action = "display"
	// ActionDisabled enables or clears the target's fields without touching
	// visibility.
	ActionDisabled Action = "disabled"
)

// Rule is one declarative trigger → target relationship.
type Rule struct {
	Trigger string `json:"trigger" yaml:"trigger"`
	Values  Values `json:"values" yaml:"values"`
	Target  string `json:"target" yaml:"target"`
	Action  Action `json:"action,omitempty" yaml:"action,omitempty"`
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Normalized fills in the default action.
func (r Rule) Normalized() Rule {
	if r.Action == "" {
		r.Action = ActionDisplay
	}
	r.Trigger = strings.TrimSpace(r.Trigger)
	r.Target = strings.TrimSpace(r.Target)
	return r
}

// Validate reports malformed rules.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Trigger) == "" {
		return fmt.Errorf("toggle: rule targeting %q has no trigger", r.Target)
	}
	if strings.TrimSpace(r.Target) == "" {
		return fmt.Errorf("toggle: rule for trigger %q has no target", r.Trigger)
	}
	switch r.Normalized().Action {
	case ActionDisplay, ActionDisabled:
	default:
		return fmt.Errorf("toggle: rule for trigger %q has unknown action %q", r.Trigger, r.Action)
	}
	return nil
}

func (r Rule) String() string {
	return fmt.Sprintf("%s=%v -> %s (%s)", r.Trigger, []string(r.Values), r.Target, r.Normalized().Action)
}

func (r Rule) key() string {
	n := r.Normalized()
	return n.Trigger + "\x00" + strings.Join(n.Values, "\x01") + "\x00" + n.Target + "\x00" + string(n.Action) + "\x00" + n.Default
}

// Values holds the activating values of a rule. Files may spell a single value
// as a scalar or several as a list.
type Values []string

// Of builds Values from the provided strings.
func Of(values ...string) Values {
	return Values(values)
}

// Contains reports whether value activates the rule.
func (v Values) Contains(value string) bool {
	for _, candidate := range v {
		if candidate == value {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts a string or a list of strings.
func (v *Values) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = Values{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("toggle: values must be a string or a list of strings: %w", err)
	}
	*v = Values(many)
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = Values{node.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return fmt.Errorf("toggle: values: %w", err)
		}
		*v = Values(many)
		return nil
	default:
		return fmt.Errorf("toggle: values must be a scalar or a sequence (line %d)", node.Line)
	}
}

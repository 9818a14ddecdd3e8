package toggle

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-caseform/pkg/form"
)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used for skipped rules.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithObserver registers a callback invoked after every rule evaluation.
func WithObserver(fn func(rule Rule, active bool)) Option {
	return func(in *Interpreter) {
		in.observe = fn
	}
}

// Interpreter binds a rule table to a form and keeps targets consistent with
// their triggers.
type Interpreter struct {
	form     *form.Form
	bindings []*binding
	byKey    map[string][]*binding
	skipped  []Rule
	logger   *slog.Logger
	observe  func(Rule, bool)
}

type binding struct {
	rule    Rule
	trigger *form.Field
	targets []form.Target
}

// New binds rules against f in table order and applies each bound rule once so
// pre-checked or restored state is reflected immediately. Rules whose trigger
// or target is missing are skipped; exact duplicates collapse into one
// binding. Bound rules must not act on overlapping elements.
func New(f *form.Form, rules []Rule, opts ...Option) (*Interpreter, error) {
	if f == nil {
		return nil, fmt.Errorf("toggle: form is nil")
	}

	in := &Interpreter{
		form:   f,
		byKey:  make(map[string][]*binding),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}

	seen := make(map[string]struct{}, len(rules))
	for _, raw := range rules {
		if err := raw.Validate(); err != nil {
			return nil, err
		}
		rule := raw.Normalized()
		if _, dup := seen[rule.key()]; dup {
			continue
		}
		seen[rule.key()] = struct{}{}

		targets, err := f.Query(rule.Target)
		if err != nil {
			return nil, fmt.Errorf("toggle: rule %s: %w", rule, err)
		}
		trigger, ok := f.Field(rule.Trigger)
		if !ok || len(targets) == 0 {
			in.skipped = append(in.skipped, rule)
			in.logger.Debug("toggle rule skipped",
				"trigger", rule.Trigger,
				"target", rule.Target,
				"trigger_found", ok,
				"targets_found", len(targets),
			)
			continue
		}

		b := &binding{rule: rule, trigger: trigger, targets: targets}
		in.bindings = append(in.bindings, b)
		key := listenKey(trigger)
		in.byKey[key] = append(in.byKey[key], b)
	}

	if err := checkDisjoint(in.bindings); err != nil {
		return nil, err
	}

	in.RecomputeAll()
	return in, nil
}

// Changed re-evaluates every rule keyed to the field. A radio is keyed by its
// group name, so a change on any sibling evaluates each rule of that group
// exactly once. Rules whose trigger was cleared by a deactivation run in turn.
// It returns the number of evaluations.
func (in *Interpreter) Changed(fieldID string) int {
	field, ok := in.form.Field(fieldID)
	if !ok {
		return 0
	}
	return in.run(in.byKey[listenKey(field)], make(map[*binding]struct{}))
}

// RecomputeAll re-evaluates every bound rule in table order. Callers run it
// after restoring or resetting values so visibility matches the new state.
func (in *Interpreter) RecomputeAll() int {
	n := 0
	for _, b := range in.bindings {
		n += in.run([]*binding{b}, make(map[*binding]struct{}))
	}
	return n
}

// run applies bound, then follows every trigger a deactivation cleared.
// visited keeps each binding to one evaluation per pass.
func (in *Interpreter) run(bound []*binding, visited map[*binding]struct{}) int {
	n := 0
	for _, b := range bound {
		if _, done := visited[b]; done {
			continue
		}
		visited[b] = struct{}{}
		n++
		for _, key := range in.apply(b) {
			n += in.run(in.byKey[key], visited)
		}
	}
	return n
}

// Bound returns the rules that were bound, in table order.
func (in *Interpreter) Bound() []Rule {
	out := make([]Rule, 0, len(in.bindings))
	for _, b := range in.bindings {
		out = append(out, b.rule)
	}
	return out
}

// Skipped returns the rules whose trigger or target was missing.
func (in *Interpreter) Skipped() []Rule {
	return append([]Rule(nil), in.skipped...)
}

// Watches reports whether a change to the field can flip any bound rule.
func (in *Interpreter) Watches(fieldID string) bool {
	field, ok := in.form.Field(fieldID)
	if !ok {
		return false
	}
	return len(in.byKey[listenKey(field)]) > 0
}

// apply evaluates one rule and returns the listen keys of bound triggers whose
// state the rule cleared.
func (in *Interpreter) apply(b *binding) []string {
	active := b.active()
	var cleared []string
	for _, target := range b.targets {
		if b.rule.Action == ActionDisplay {
			target.SetHidden(!active)
			if b.trigger.Controlled(target.ElementID()) {
				target.SetExpanded(active)
			}
		}
		for _, field := range target.ContainedFields() {
			if active {
				field.Disabled = false
				continue
			}
			value, checked := field.Value, field.Checked
			field.Clear(b.rule.Default)
			field.Disabled = true
			if !field.Kind.Triggerable() || (field.Value == value && field.Checked == checked) {
				continue
			}
			if key := listenKey(field); len(in.byKey[key]) > 0 {
				cleared = append(cleared, key)
			}
		}
	}
	if in.observe != nil {
		in.observe(b.rule, active)
	}
	return cleared
}

func (b *binding) active() bool {
	trigger := b.trigger
	switch trigger.Kind {
	case form.KindCheckbox:
		return trigger.Checked
	case form.KindRadio:
		return trigger.Checked && b.rule.Values.Contains(trigger.Value)
	case form.KindSelect:
		return b.rule.Values.Contains(trigger.Value)
	default:
		return false
	}
}

func listenKey(field *form.Field) string {
	if field.Kind == form.KindRadio && field.Name != "" {
		return "radio:" + field.Name
	}
	return "id:" + field.ID
}

package session

import "github.com/goliatone/go-caseform/pkg/form"

// FieldState is a read-only copy of one field as the session sees it.
type FieldState struct {
	ID        string
	Name      string
	Kind      form.FieldKind
	InputType string
	Label     string
	Required  bool
	Value     string
	Checked   bool
	Options   []form.Option
	Disabled  bool
	Visible   bool
	// Section is the id of the nearest conditional group, if any.
	Section string
}

// Interactive reports whether a user could edit the field right now.
func (fs FieldState) Interactive() bool {
	return fs.Visible && !fs.Disabled && fs.Kind != form.KindHidden
}

// View returns every field in document order.
func (s *Session) View() []FieldState {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := s.form.Fields()
	out := make([]FieldState, 0, len(fields))
	for _, field := range fields {
		state := FieldState{
			ID:        field.ID,
			Name:      field.Name,
			Kind:      field.Kind,
			InputType: field.InputType,
			Label:     field.Label,
			Required:  field.Required,
			Value:     field.Value,
			Checked:   field.Checked,
			Options:   append([]form.Option(nil), field.Options...),
			Disabled:  field.Disabled,
			Visible:   s.form.Visible(field),
		}
		if group, ok := form.NearestConditional(field); ok {
			state.Section = group.ID
		}
		out = append(out, state)
	}
	return out
}

// Field returns the current state of one field.
func (s *Session) Field(fieldID string) (FieldState, bool) {
	for _, state := range s.View() {
		if state.ID == fieldID {
			return state, true
		}
	}
	return FieldState{}, false
}

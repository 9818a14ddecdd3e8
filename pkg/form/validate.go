package form

// Violation names a required field that blocks submission.
type Violation struct {
	FieldID string
	Name    string
	Label   string
}

// Validate applies required-field checking the way a browser does on submit.
// Disabled fields are skipped. A required radio group is satisfied when any
// member is checked and is reported once.
func (f *Form) Validate() []Violation {
	var out []Violation
	reportedGroups := make(map[string]struct{})

	for _, field := range f.fields {
		if !field.Required || field.Disabled {
			continue
		}
		switch field.Kind {
		case KindHidden:
			continue
		case KindCheckbox:
			if field.Checked {
				continue
			}
		case KindRadio:
			if _, done := reportedGroups[field.Name]; done {
				continue
			}
			if f.radioGroupChecked(field) {
				continue
			}
			reportedGroups[field.Name] = struct{}{}
		default:
			if field.Value != "" {
				continue
			}
		}
		out = append(out, Violation{
			FieldID: field.ID,
			Name:    field.Name,
			Label:   field.Label,
		})
	}
	return out
}

func (f *Form) radioGroupChecked(field *Field) bool {
	if field.Name == "" {
		return field.Checked
	}
	for _, sibling := range f.byName[field.Name] {
		if sibling.Kind == KindRadio && sibling.Checked {
			return true
		}
	}
	return false
}

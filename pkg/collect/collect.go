// Package collect snapshots the visible, enabled fields of a form into a flat
// record and replays such a record back into a form.
package collect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-caseform/pkg/form"
)

// Record maps field names to values. Checkboxes carry a bool, every other
// kind a string.
type Record map[string]any

// Keys returns the record keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}

// Collect walks f in document order. Unnamed fields, disabled fields and
// fields that are hidden themselves or sit in a hidden group are omitted; this
// is where hidden and disabled values are kept out of drafts and submissions.
// Unchecked radios contribute nothing.
func Collect(f *form.Form) Record {
	out := make(Record)
	if f == nil {
		return out
	}
	for _, field := range f.Fields() {
		if field.Name == "" || field.Disabled || !f.Visible(field) {
			continue
		}
		switch field.Kind {
		case form.KindCheckbox:
			out[field.Name] = field.Checked
		case form.KindRadio:
			if field.Checked {
				out[field.Name] = field.Value
			}
		case form.KindSelect:
			if idx := field.SelectedIndex(); idx >= 0 {
				out[field.Name] = field.Options[idx].Value
			} else {
				out[field.Name] = ""
			}
		default:
			out[field.Name] = field.Value
		}
	}
	return out
}

// Restore writes rec into f without evaluating any toggle rule; callers
// recompute visibility afterwards. Checkboxes take the boolean, radios check
// the sibling whose value matches, every other kind takes the value as text.
// It returns the keys that matched no field, sorted.
func Restore(f *form.Form, rec Record) []string {
	if f == nil || len(rec) == 0 {
		return nil
	}

	var unknown []string
	for _, key := range rec.Keys() {
		value := rec[key]
		field, ok := f.FirstNamed(key)
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		switch field.Kind {
		case form.KindCheckbox:
			f.SetChecked(field, truthy(value))
		case form.KindRadio:
			want := text(value)
			for _, sibling := range f.Named(key) {
				if sibling.Kind == form.KindRadio && sibling.Value == want {
					f.SetChecked(sibling, true)
				}
			}
		default:
			field.SetValue(text(value))
		}
	}
	return unknown
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
		return strings.TrimSpace(v) != ""
	case nil:
		return false
	default:
		return true
	}
}

func text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

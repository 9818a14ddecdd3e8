package toggle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-caseform/pkg/form"
)

// ErrOverlappingTargets is returned when two bound rules act on a shared
// element, which would let table order decide which reset wins.
var ErrOverlappingTargets = errors.New("toggle: overlapping rule targets")

// Overlap names two rules that both act on Element.
type Overlap struct {
	First   Rule
	Second  Rule
	Element string
}

// OverlapError lists every overlap found while binding.
type OverlapError struct {
	Overlaps []Overlap
}

func (e *OverlapError) Error() string {
	parts := make([]string, 0, len(e.Overlaps))
	for _, o := range e.Overlaps {
		parts = append(parts, fmt.Sprintf("%q shared by [%s] and [%s]", o.Element, o.First, o.Second))
	}
	return ErrOverlappingTargets.Error() + ": " + strings.Join(parts, "; ")
}

func (e *OverlapError) Unwrap() error { return ErrOverlappingTargets }

func checkDisjoint(bindings []*binding) error {
	owner := make(map[form.Element]*binding)
	var overlaps []Overlap

	claim := func(b *binding, el form.Element) {
		prev, taken := owner[el]
		if !taken {
			owner[el] = b
			return
		}
		if prev == b {
			return
		}
		overlaps = append(overlaps, Overlap{
			First:   prev.rule,
			Second:  b.rule,
			Element: elementName(el),
		})
	}

	for _, b := range bindings {
		for _, target := range b.targets {
			claim(b, target)
			for _, field := range target.ContainedFields() {
				claim(b, field)
			}
		}
	}

	if len(overlaps) == 0 {
		return nil
	}
	return &OverlapError{Overlaps: overlaps}
}

func elementName(el form.Element) string {
	if id := el.ElementID(); id != "" {
		return "#" + id
	}
	if field, ok := el.(*form.Field); ok && field.Name != "" {
		return fmt.Sprintf("[name=%q]", field.Name)
	}
	return "(anonymous)"
}

// Package toggle interprets the declarative show/hide and enable/disable rule
// table of the case form. Each Rule names a trigger field, the values that
// activate it, a target selector and an action. Interpreter binds the table to
// a form once, re-evaluates the rules keyed to a field when it changes, and
// recomputes every rule on demand after restore or reset.
package toggle

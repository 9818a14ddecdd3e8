// Package form defines the document model the case session mutates: fields
// with a closed FieldKind, groups that form conditional sections, and the Form
// that indexes them by id and name. Fields capture their initial value and
// checked flag when the form is built so Reset can restore them. Targets for
// toggle rules are resolved through a small selector grammar (`#id`,
// `[name="x"]`, `tag[name="x"]`) that matches what rule tables reference.
package form

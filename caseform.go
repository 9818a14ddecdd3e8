// Package caseform is the top-level entry point: it loads a case variant,
// builds its form and opens a session over it.
package caseform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-caseform/pkg/layout"
	"github.com/goliatone/go-caseform/pkg/session"
)

// Session aliases session.Session for callers that only import the root.
type Session = session.Session

// Option aliases session.Option.
type Option = session.Option

// Variants loads the bundled case variants.
func Variants() (*layout.Store, error) {
	return layout.Default()
}

// OpenVariant builds a fresh form for caseType from store and opens a session
// on it with the variant's rule table. Options given later win, so callers
// may still override the rules.
func OpenVariant(ctx context.Context, store *layout.Store, caseType string, opts ...Option) (*Session, error) {
	variant, ok := store.Variant(caseType)
	if !ok {
		return nil, fmt.Errorf("caseform: unknown case type %q (have %v)", caseType, store.CaseTypes())
	}
	f, err := variant.Build()
	if err != nil {
		return nil, err
	}
	all := append([]Option{session.WithRules(variant.RuleTable())}, opts...)
	return session.Open(ctx, f, all...)
}

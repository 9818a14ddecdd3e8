package caseform_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-caseform"
	"github.com/goliatone/go-caseform/pkg/draft"
	"github.com/goliatone/go-caseform/pkg/notify"
	"github.com/goliatone/go-caseform/pkg/session"
)

func TestOpenVariant(t *testing.T) {
	t.Parallel()

	store, err := caseform.Variants()
	if err != nil {
		t.Fatalf("variants: %v", err)
	}

	recorder := &notify.Recorder{}
	s, err := caseform.OpenVariant(context.Background(), store, "emergency",
		session.WithStore(draft.NewMemoryStore()),
		session.WithNotifier(recorder),
	)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if s.CaseType() != "emergency" || s.Key() != "focusCaseXDraft_emergency" {
		t.Fatalf("unexpected session %q / %q", s.CaseType(), s.Key())
	}
	details, ok := s.Field("referralTo")
	if !ok || details.Visible || !details.Disabled {
		t.Fatalf("referral details must start hidden and disabled: %+v", details)
	}
	if err := s.Choose("referralMade", "Yes"); err != nil {
		t.Fatalf("choose: %v", err)
	}
	details, _ = s.Field("referralTo")
	if !details.Visible || details.Disabled {
		t.Fatalf("referral details must be revealed: %+v", details)
	}
}

func TestOpenVariant_Unknown(t *testing.T) {
	t.Parallel()

	store, err := caseform.Variants()
	if err != nil {
		t.Fatalf("variants: %v", err)
	}
	_, err = caseform.OpenVariant(context.Background(), store, "veterinary")
	if err == nil || !strings.Contains(err.Error(), "unknown case type") {
		t.Fatalf("expected unknown case type error, got %v", err)
	}
}

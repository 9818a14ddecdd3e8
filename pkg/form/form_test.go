package form_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-caseform/pkg/form"
)

func sampleForm(t *testing.T) *form.Form {
	t.Helper()

	root := &form.Group{Children: []form.Element{
		&form.Field{ID: "caseType", Name: "caseType", Kind: form.KindHidden, Value: "contactLens"},
		&form.Field{ID: "patientName", Name: "patientName", Kind: form.KindText, Required: true, Label: "Patient name"},
		&form.Field{ID: "spectaclesYes", Name: "spectacles", Kind: form.KindRadio, Value: "Yes", Required: true},
		&form.Field{ID: "spectaclesNo", Name: "spectacles", Kind: form.KindRadio, Value: "No"},
		&form.Group{ID: "currentSpectacleRx_group", Conditional: true, Hidden: true, Children: []form.Element{
			&form.Field{ID: "spectacleRxOD", Name: "spectacleRxOD", Kind: form.KindText, Value: "plano"},
			&form.Field{ID: "spectacleNotes", Name: "spectacleNotes", Kind: form.KindTextArea},
			&form.Field{ID: "spectacleMeta", Name: "spectacleMeta", Kind: form.KindHidden, Value: "v1"},
		}},
		&form.Field{ID: "pupils", Name: "pupils", Kind: form.KindSelect, Options: []form.Option{
			{Value: "PERRLA"}, {Value: "Other"},
		}},
		&form.Field{ID: "slitLampFollowup", Name: "slitLampFollowup", Kind: form.KindTextArea},
	}}

	f, err := form.New("", root)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func TestNew_IndexesAndDefaults(t *testing.T) {
	t.Parallel()

	f := sampleForm(t)

	if f.ID != form.DefaultFormID {
		t.Fatalf("expected default form id, got %q", f.ID)
	}
	if got := f.CaseType(); got != "contactLens" {
		t.Fatalf("expected case type contactLens, got %q", got)
	}

	pupils, ok := f.Field("pupils")
	if !ok {
		t.Fatalf("pupils not indexed")
	}
	if pupils.Value != "PERRLA" {
		t.Fatalf("expected select to default to first option, got %q", pupils.Value)
	}

	if got := len(f.Named("spectacles")); got != 2 {
		t.Fatalf("expected 2 radios named spectacles, got %d", got)
	}

	group, ok := f.Group("currentSpectacleRx_group")
	if !ok {
		t.Fatalf("group not indexed")
	}
	var ids []string
	for _, field := range group.ContainedFields() {
		ids = append(ids, field.ID)
	}
	if diff := cmp.Diff([]string{"spectacleRxOD", "spectacleNotes"}, ids); diff != "" {
		t.Fatalf("contained fields mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	_, err := form.New("f", &form.Group{Children: []form.Element{
		&form.Field{ID: "a", Name: "a", Kind: form.KindText},
		&form.Group{ID: "a"},
	}})
	if !errors.Is(err, form.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestNew_RejectsUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := form.New("f", &form.Group{Children: []form.Element{
		&form.Field{ID: "a", Name: "a", Kind: "color"},
	}})
	if !errors.Is(err, form.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestCaseType_DefaultsToGeneral(t *testing.T) {
	t.Parallel()

	f, err := form.New("f", nil)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if got := f.CaseType(); got != form.DefaultCaseType {
		t.Fatalf("expected %q, got %q", form.DefaultCaseType, got)
	}
}

func TestSetChecked_RadioUnchecksSiblings(t *testing.T) {
	t.Parallel()

	f := sampleForm(t)
	yes, _ := f.Field("spectaclesYes")
	no, _ := f.Field("spectaclesNo")

	f.SetChecked(yes, true)
	f.SetChecked(no, true)

	if yes.Checked || !no.Checked {
		t.Fatalf("expected only spectaclesNo checked, got yes=%v no=%v", yes.Checked, no.Checked)
	}
}

func TestReset_RestoresInitialValues(t *testing.T) {
	t.Parallel()

	f := sampleForm(t)
	rx, _ := f.Field("spectacleRxOD")
	yes, _ := f.Field("spectaclesYes")
	pupils, _ := f.Field("pupils")

	rx.SetValue("-1.00")
	f.SetChecked(yes, true)
	pupils.SetValue("Other")
	rx.Disabled = true

	f.Reset()

	if rx.Value != "plano" || yes.Checked || pupils.Value != "PERRLA" {
		t.Fatalf("reset did not restore defaults: rx=%q yes=%v pupils=%q", rx.Value, yes.Checked, pupils.Value)
	}
	if !rx.Disabled {
		t.Fatalf("reset must leave disabled state to the toggle interpreter")
	}
}

func TestSetValue_SelectRejectsUnknownOption(t *testing.T) {
	t.Parallel()

	f := sampleForm(t)
	pupils, _ := f.Field("pupils")
	pupils.SetValue("Sluggish")

	if pupils.Value != "" || pupils.SelectedIndex() != -1 {
		t.Fatalf("expected cleared selection, got %q (%d)", pupils.Value, pupils.SelectedIndex())
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	f := sampleForm(t)

	cases := []struct {
		selector string
		want     []string
	}{
		{selector: "#currentSpectacleRx_group", want: []string{"currentSpectacleRx_group"}},
		{selector: `textarea[name="slitLampFollowup"]`, want: []string{"slitLampFollowup"}},
		{selector: `[name="spectacles"]`, want: []string{"spectaclesYes", "spectaclesNo"}},
		{selector: `select[name="slitLampFollowup"]`, want: nil},
		{selector: "#missing", want: nil},
		{selector: "#pupils, #pupils, div#currentSpectacleRx_group", want: []string{"pupils", "currentSpectacleRx_group"}},
	}

	for _, tc := range cases {
		targets, err := f.Query(tc.selector)
		if err != nil {
			t.Fatalf("query %q: %v", tc.selector, err)
		}
		var got []string
		for _, target := range targets {
			got = append(got, target.ElementID())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("query %q mismatch (-want +got):\n%s", tc.selector, diff)
		}
	}
}

func TestQuery_InvalidSelectors(t *testing.T) {
	t.Parallel()

	f := sampleForm(t)
	for _, selector := range []string{"", ".conditional-group", `input[type="radio"]`, "#", "span#x", `[name="x"`} {
		if _, err := f.Query(selector); !errors.Is(err, form.ErrInvalidSelector) {
			t.Fatalf("selector %q: expected ErrInvalidSelector, got %v", selector, err)
		}
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	t.Parallel()

	f := sampleForm(t)

	got := f.Validate()
	want := []form.Violation{
		{FieldID: "patientName", Name: "patientName", Label: "Patient name"},
		{FieldID: "spectaclesYes", Name: "spectacles"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}

	name, _ := f.Field("patientName")
	name.SetValue("Ada")
	no, _ := f.Field("spectaclesNo")
	f.SetChecked(no, true)

	if got := f.Validate(); len(got) != 0 {
		t.Fatalf("expected no violations, got %+v", got)
	}
}

func TestValidate_SkipsDisabled(t *testing.T) {
	t.Parallel()

	f := sampleForm(t)
	name, _ := f.Field("patientName")
	name.Disabled = true
	yes, _ := f.Field("spectaclesYes")
	yes.Disabled = true

	if got := f.Validate(); len(got) != 0 {
		t.Fatalf("expected disabled fields to be skipped, got %+v", got)
	}
}

func TestVisible(t *testing.T) {
	t.Parallel()

	f := sampleForm(t)
	rx, _ := f.Field("spectacleRxOD")
	if f.Visible(rx) {
		t.Fatalf("field inside hidden group must not be visible")
	}

	group, _ := f.Group("currentSpectacleRx_group")
	group.SetHidden(false)
	if !f.Visible(rx) {
		t.Fatalf("field inside shown group must be visible")
	}

	nearest, ok := form.NearestConditional(rx)
	if !ok || nearest != group {
		t.Fatalf("expected nearest conditional group %q", group.ID)
	}
}

func TestCaseLabel(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"general":             "general",
		"myopiaManagement":    "myopia Management",
		"neuroOptometryRehab": "neuro Optometry Rehab",
		"":                    "",
	}
	for in, want := range cases {
		if got := form.CaseLabel(in); got != want {
			t.Fatalf("CaseLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

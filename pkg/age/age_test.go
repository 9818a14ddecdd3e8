package age_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-caseform/pkg/age"
	"github.com/goliatone/go-caseform/pkg/form"
)

var today = time.Date(2026, time.October, 19, 15, 4, 5, 0, time.UTC)

func clock() time.Time { return today }

func newForm(t *testing.T, dob string) *form.Form {
	t.Helper()
	f, err := form.New("f", &form.Group{Children: []form.Element{
		&form.Field{ID: "dateOfBirth", Name: "dateOfBirth", Kind: form.KindText, InputType: "date", Value: dob},
		&form.Field{ID: "patientAge", Name: "patientAge", Kind: form.KindText, InputType: "number"},
	}})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func TestDeriver(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		dob  string
		want string
	}{
		{name: "thirty years and a day", dob: today.AddDate(-30, 0, -1).Format(age.DateLayout), want: "30"},
		{name: "birthday tomorrow", dob: today.AddDate(-30, 0, 1).Format(age.DateLayout), want: "29"},
		{name: "born today", dob: today.Format(age.DateLayout), want: "0"},
		{name: "future date", dob: today.AddDate(0, 0, 1).Format(age.DateLayout), want: ""},
		{name: "garbage", dob: "not-a-date", want: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newForm(t, "")
			d, ok := age.New(f, age.WithClock(clock))
			if !ok {
				t.Fatalf("expected deriver to bind")
			}

			birth, _ := f.Field("dateOfBirth")
			ageField, _ := f.Field("patientAge")
			ageField.Value = "stale"
			birth.SetValue(tc.dob)

			if !d.Changed(birth.ID) {
				t.Fatalf("expected date-of-birth change to be handled")
			}
			if ageField.Value != tc.want {
				t.Fatalf("age = %q, want %q", ageField.Value, tc.want)
			}
		})
	}
}

func TestNew_DerivesEagerly(t *testing.T) {
	t.Parallel()

	f := newForm(t, "1990-10-20")
	if _, ok := age.New(f, age.WithClock(clock)); !ok {
		t.Fatalf("expected deriver to bind")
	}
	ageField, _ := f.Field("patientAge")
	if ageField.Value != "35" {
		t.Fatalf("expected eager derivation to 35, got %q", ageField.Value)
	}
}

func TestNew_MissingFields(t *testing.T) {
	t.Parallel()

	f, err := form.New("f", &form.Group{Children: []form.Element{
		&form.Field{ID: "dateOfBirth", Name: "dateOfBirth", Kind: form.KindText},
	}})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	d, ok := age.New(f)
	if ok || d != nil {
		t.Fatalf("expected no deriver without an age field")
	}
	if d.Changed("dateOfBirth") {
		t.Fatalf("nil deriver must ignore changes")
	}
}

func TestChanged_IgnoresOtherFields(t *testing.T) {
	t.Parallel()

	f := newForm(t, "")
	d, _ := age.New(f, age.WithClock(clock))
	if d.Changed("patientAge") {
		t.Fatalf("only the date-of-birth field drives derivation")
	}
}

func TestYears_LeapDay(t *testing.T) {
	t.Parallel()

	dob := time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)
	if got := age.Years(dob, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)); got != 24 {
		t.Fatalf("expected 24 before the leap-day birthday, got %d", got)
	}
	if got := age.Years(dob, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)); got != 25 {
		t.Fatalf("expected 25 after the leap-day birthday, got %d", got)
	}
}

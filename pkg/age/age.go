// Package age derives the patient's age in whole years from the date-of-birth
// field and writes it into the age field.
package age

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-caseform/pkg/form"
)

const (
	// DefaultBirthField is the id of the date-of-birth input.
	DefaultBirthField = "dateOfBirth"
	// DefaultAgeField is the id of the derived age input.
	DefaultAgeField = "patientAge"
	// DateLayout is the wire format of date inputs.
	DateLayout = "2006-01-02"
)

// Option configures a Deriver.
type Option func(*config)

type config struct {
	birthField string
	ageField   string
	now        func() time.Time
}

// WithFields overrides the date-of-birth and age field ids.
func WithFields(birthField, ageField string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(birthField) != "" {
			cfg.birthField = strings.TrimSpace(birthField)
		}
		if strings.TrimSpace(ageField) != "" {
			cfg.ageField = strings.TrimSpace(ageField)
		}
	}
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

// Deriver keeps the age field in step with the date of birth.
type Deriver struct {
	birth *form.Field
	age   *form.Field
	now   func() time.Time
}

// New wires a deriver to f. It reports false when either field is missing,
// which is normal for variants that do not record a date of birth. When a
// date is already present the age is derived immediately.
func New(f *form.Form, opts ...Option) (*Deriver, bool) {
	cfg := config{
		birthField: DefaultBirthField,
		ageField:   DefaultAgeField,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if f == nil {
		return nil, false
	}

	birth, ok := f.Field(cfg.birthField)
	if !ok {
		return nil, false
	}
	ageField, ok := f.Field(cfg.ageField)
	if !ok {
		return nil, false
	}

	d := &Deriver{birth: birth, age: ageField, now: cfg.now}
	if strings.TrimSpace(birth.Value) != "" {
		d.Apply()
	}
	return d, true
}

// Changed re-derives the age when fieldID is the date-of-birth field.
func (d *Deriver) Changed(fieldID string) bool {
	if d == nil || fieldID != d.birth.ID {
		return false
	}
	d.Apply()
	return true
}

// Apply writes the derived age, or clears the age field when the date does
// not parse or lies in the future.
func (d *Deriver) Apply() {
	if d == nil {
		return
	}
	dob, err := time.Parse(DateLayout, strings.TrimSpace(d.birth.Value))
	if err != nil {
		d.age.Value = ""
		return
	}
	years := Years(dob, d.now())
	if years < 0 {
		d.age.Value = ""
		return
	}
	d.age.Value = strconv.Itoa(years)
}

// Years returns the whole years elapsed between dob and today, counting a
// year only once today's month and day reach the birth month and day.
func Years(dob, today time.Time) int {
	years := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		years--
	}
	return years
}

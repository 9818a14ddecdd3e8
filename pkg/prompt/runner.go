// Package prompt drives a case form session from the terminal. It asks for
// every field the user can currently reach, in document order, so groups
// revealed by an answer are asked for right after their trigger.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-caseform/pkg/age"
	"github.com/goliatone/go-caseform/pkg/form"
	"github.com/goliatone/go-caseform/pkg/notify"
	"github.com/goliatone/go-caseform/pkg/session"
	"github.com/goliatone/go-caseform/pkg/submit"
)

// Session is the part of *session.Session the runner needs.
type Session interface {
	CaseType() string
	View() []session.FieldState
	SetValue(fieldID, value string) error
	SetChecked(fieldID string, checked bool) error
	Choose(name, value string) error
	Submit(ctx context.Context) (submit.Receipt, error)
	Clear(ctx context.Context) error
}

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeSubmitted Outcome = "submitted"
	OutcomeSaved     Outcome = "saved"
)

// Menu entries shown once every reachable field has been asked.
const (
	ActionSubmit = "Submit case"
	ActionReview = "Review all fields"
	ActionClear  = "Clear form"
	ActionQuit   = "Save draft and quit"
)

var menu = []string{ActionSubmit, ActionReview, ActionClear, ActionQuit}

// Result reports a finished run.
type Result struct {
	Outcome Outcome
	Receipt submit.Receipt
}

// Option configures a Runner.
type Option func(*Runner)

// WithPromptDriver overrides the survey-backed driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner asks for field values and routes them into a session.
type Runner struct {
	driver PromptDriver
	logger *slog.Logger
}

// New returns a runner using survey unless WithPromptDriver is given.
func New(opts ...Option) *Runner {
	r := &Runner{
		driver: NewSurveyDriver(nil),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Notifier prints session notices through the driver.
func (r *Runner) Notifier() notify.Notifier {
	return notify.Func(func(n notify.Notice) {
		if err := r.driver.Info(context.Background(), n.Message); err != nil {
			r.logger.Warn("notice not shown", "kind", n.Kind, "error", err)
		}
	})
}

// Run asks for every reachable field and then offers the menu until the case
// is submitted or the user quits. ErrAborted is returned on Ctrl+C; pending
// edits stay in the session for the caller to flush.
func (r *Runner) Run(ctx context.Context, s Session) (Result, error) {
	if err := r.fill(ctx, s, nil); err != nil {
		return Result{}, err
	}

	for {
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message:      fmt.Sprintf("%s case: what next?", form.CaseLabel(s.CaseType())),
			Options:      menu,
			DefaultIndex: 0,
		})
		if err != nil {
			return Result{}, err
		}

		switch pick(menu, choice) {
		case ActionSubmit:
			receipt, err := s.Submit(ctx)
			var verr *session.ValidationError
			switch {
			case errors.As(err, &verr):
				only := make(map[string]struct{}, len(verr.Violations))
				for _, v := range verr.Violations {
					only[v.FieldID] = struct{}{}
				}
				if err := r.fill(ctx, s, only); err != nil {
					return Result{}, err
				}
			case err != nil:
				r.logger.Error("submit failed", "error", err)
			default:
				return Result{Outcome: OutcomeSubmitted, Receipt: receipt}, nil
			}
		case ActionReview:
			if err := r.fill(ctx, s, nil); err != nil {
				return Result{}, err
			}
		case ActionClear:
			if err := s.Clear(ctx); err != nil {
				return Result{}, err
			}
			if err := r.fill(ctx, s, nil); err != nil {
				return Result{}, err
			}
		case ActionQuit:
			return Result{Outcome: OutcomeSaved}, nil
		default:
			return Result{}, fmt.Errorf("prompt: unknown menu choice %d", choice)
		}
	}
}

// fill asks each interactive field once, re-reading the view after every
// answer. When only is non-nil just those field ids are asked.
func (r *Runner) fill(ctx context.Context, s Session, only map[string]struct{}) error {
	asked := make(map[string]struct{})
	for {
		view := s.View()
		next, ok := nextField(view, asked, only)
		if !ok {
			return nil
		}
		asked[askKey(next)] = struct{}{}

		if err := r.ask(ctx, s, view, next); err != nil {
			if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			r.logger.Warn("field not updated", "field", next.ID, "error", err)
			if infoErr := r.driver.Info(ctx, err.Error()); infoErr != nil {
				return infoErr
			}
		}
	}
}

func nextField(view []session.FieldState, asked, only map[string]struct{}) (session.FieldState, bool) {
	for _, fs := range view {
		if !fs.Interactive() {
			continue
		}
		if _, done := asked[askKey(fs)]; done {
			continue
		}
		if only != nil {
			if _, want := only[fs.ID]; !want {
				continue
			}
		}
		return fs, true
	}
	return session.FieldState{}, false
}

// askKey collapses a radio group into one question.
func askKey(fs session.FieldState) string {
	if fs.Kind == form.KindRadio && fs.Name != "" {
		return "radio:" + fs.Name
	}
	return "id:" + fs.ID
}

func (r *Runner) ask(ctx context.Context, s Session, view []session.FieldState, fs session.FieldState) error {
	message := label(fs)

	switch fs.Kind {
	case form.KindCheckbox:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: fs.Checked})
		if err != nil {
			return err
		}
		if checked == fs.Checked {
			return nil
		}
		return s.SetChecked(fs.ID, checked)

	case form.KindRadio:
		members := radioGroup(view, fs.Name)
		options := make([]string, 0, len(members))
		defaultIdx := -1
		for idx, member := range members {
			options = append(options, optionLabel(member.Label, member.Value))
			if member.Checked {
				defaultIdx = idx
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: groupLabel(fs), Options: options, DefaultIndex: defaultIdx})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(members) {
			return fmt.Errorf("prompt: no choice made for %s", fs.Name)
		}
		if members[idx].Checked {
			return nil
		}
		return s.Choose(fs.Name, members[idx].Value)

	case form.KindSelect:
		if len(fs.Options) == 0 {
			return fmt.Errorf("%w: %s", ErrNoOptions, fs.ID)
		}
		options := make([]string, 0, len(fs.Options))
		defaultIdx := 0
		for idx, opt := range fs.Options {
			options = append(options, optionLabel(opt.Label, opt.Value))
			if opt.Value == fs.Value {
				defaultIdx = idx
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: defaultIdx})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(fs.Options) {
			return fmt.Errorf("prompt: no choice made for %s", fs.ID)
		}
		if fs.Options[idx].Value == fs.Value {
			return nil
		}
		return s.SetValue(fs.ID, fs.Options[idx].Value)

	case form.KindTextArea:
		value, err := r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: fs.Value})
		if err != nil {
			return err
		}
		if value == fs.Value {
			return nil
		}
		return s.SetValue(fs.ID, value)

	default:
		value, err := r.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   fs.Value,
			Help:      inputHelp(fs.InputType),
			Validator: validatorFor(fs.InputType),
		})
		if err != nil {
			return err
		}
		if value == fs.Value {
			return nil
		}
		return s.SetValue(fs.ID, value)
	}
}

func radioGroup(view []session.FieldState, name string) []session.FieldState {
	var out []session.FieldState
	for _, fs := range view {
		if fs.Kind == form.KindRadio && fs.Name == name && fs.Interactive() {
			out = append(out, fs)
		}
	}
	return out
}

func label(fs session.FieldState) string {
	text := strings.TrimSpace(fs.Label)
	if text == "" {
		text = fs.Name
	}
	if text == "" {
		text = fs.ID
	}
	if fs.Required {
		text += " *"
	}
	return text
}

func groupLabel(fs session.FieldState) string {
	text := fs.Name
	if fs.Required {
		text += " *"
	}
	return text
}

func optionLabel(label, value string) string {
	if strings.TrimSpace(label) != "" {
		return label
	}
	if value == "" {
		return "(none)"
	}
	return value
}

func inputHelp(inputType string) string {
	switch inputType {
	case "date":
		return "YYYY-MM-DD"
	case "number":
		return "a whole number"
	default:
		return ""
	}
}

func validatorFor(inputType string) func(string) error {
	switch inputType {
	case "date":
		return func(v string) error {
			if strings.TrimSpace(v) == "" {
				return nil
			}
			if _, err := time.Parse(age.DateLayout, strings.TrimSpace(v)); err != nil {
				return errors.New("enter a date as YYYY-MM-DD")
			}
			return nil
		}
	case "number":
		return func(v string) error {
			if strings.TrimSpace(v) == "" {
				return nil
			}
			if _, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
				return errors.New("enter a whole number")
			}
			return nil
		}
	default:
		return nil
	}
}

func pick(options []string, idx int) string {
	if idx < 0 || idx >= len(options) {
		return ""
	}
	return options[idx]
}

// Package session runs one case form: it routes edits through the toggle
// rules and the age deriver, persists debounced drafts, restores them on open
// and drives submit and clear.
//
// Every public method and the debounced save hold the same mutex, so a
// session behaves like the single-threaded page it models.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-caseform/pkg/age"
	"github.com/goliatone/go-caseform/pkg/collect"
	"github.com/goliatone/go-caseform/pkg/draft"
	"github.com/goliatone/go-caseform/pkg/form"
	"github.com/goliatone/go-caseform/pkg/notify"
	"github.com/goliatone/go-caseform/pkg/submit"
	"github.com/goliatone/go-caseform/pkg/toggle"
)

// Session owns a form for its lifetime.
type Session struct {
	mu sync.Mutex

	form     *form.Form
	caseType string
	key      string

	rules *toggle.Interpreter
	age   *age.Deriver
	saver *draft.Saver

	store     draft.Store
	submitter submit.Submitter
	notifier  notify.Notifier
	messages  *notify.Messages
	logger    *slog.Logger
	metrics   *Metrics

	saveTimeout time.Duration
	restored    bool
	closed      bool
	lastSaveErr error
}

// Open binds the toggle rules and the age deriver to f and restores the draft
// slot of the form's case type. A missing slot is not an error. A slot that
// fails to decode is returned as draft.ErrMalformedDraft and leaves f
// untouched so the caller can discard the slot and open again.
func Open(ctx context.Context, f *form.Form, opts ...Option) (*Session, error) {
	if f == nil {
		return nil, errors.New("session: form is nil")
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.store == nil {
		cfg.store = draft.NewMemoryStore()
	}
	if cfg.submitter == nil {
		cfg.submitter = submit.NewLogSubmitter(submit.WithLogger(cfg.logger))
	}
	if cfg.messages == nil {
		msgs, err := notify.NewMessages()
		if err != nil {
			return nil, fmt.Errorf("session: messages: %w", err)
		}
		cfg.messages = msgs
	}

	caseType := f.CaseType()
	s := &Session{
		form:        f,
		caseType:    caseType,
		key:         draft.Key(caseType),
		store:       cfg.store,
		submitter:   cfg.submitter,
		notifier:    cfg.notifier,
		messages:    cfg.messages,
		logger:      cfg.logger.With("case_type", caseType),
		metrics:     cfg.metrics,
		saveTimeout: cfg.saveTimeout,
	}

	data, err := s.store.Get(ctx, s.key)
	switch {
	case errors.Is(err, draft.ErrNotFound):
		data = nil
	case err != nil:
		return nil, fmt.Errorf("session: read draft %s: %w", s.key, err)
	}
	var rec collect.Record
	if data != nil {
		rec, err = draft.Decode(data)
		if err != nil {
			s.metrics.draftOp(caseType, OpError)
			return nil, fmt.Errorf("session: restore %s: %w", s.key, err)
		}
	}

	s.rules, err = toggle.New(f, cfg.rules,
		toggle.WithLogger(s.logger),
		toggle.WithObserver(func(_ toggle.Rule, active bool) {
			s.metrics.evaluation(caseType, active)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("session: bind rules: %w", err)
	}
	s.age, _ = age.New(f, cfg.ageOpts...)

	saverOpts := append(append([]draft.SaverOption(nil), cfg.saverOpts...), draft.WithLocker(&s.mu))
	s.saver = draft.NewSaver(s.saveFromTimer, saverOpts...)

	s.logger.Debug("session opened",
		"rules_bound", len(s.rules.Bound()),
		"rules_skipped", len(s.rules.Skipped()),
	)

	if rec != nil {
		s.mu.Lock()
		s.restoreLocked(rec)
		s.mu.Unlock()
	}
	return s, nil
}

// restoreLocked replays rec in two phases: every value first, then every
// rule, so a target is never evaluated against a half-restored form.
func (s *Session) restoreLocked(rec collect.Record) {
	unknown := collect.Restore(s.form, rec)
	if len(unknown) > 0 {
		s.logger.Debug("draft keys without a field", "keys", unknown)
	}
	s.rules.RecomputeAll()
	s.age.Apply()
	s.restored = true
	s.metrics.draftOp(s.caseType, OpRestore)
	s.logger.Info("draft restored", "fields", len(rec))
	s.notifyLocked(notify.KindRestored, nil, "")
}

// CaseType returns the case type the session was opened for.
func (s *Session) CaseType() string { return s.caseType }

// Key returns the draft slot key.
func (s *Session) Key() string { return s.key }

// Restored reports whether Open replayed a draft.
func (s *Session) Restored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restored
}

// SetValue types value into a text, textarea, hidden or select field. A
// select only accepts one of its option values.
func (s *Session) SetValue(fieldID, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	field, err := s.editableLocked(fieldID)
	if err != nil {
		return err
	}
	if field.Kind.Checkable() {
		return fmt.Errorf("%w: %s is a %s", ErrFieldKind, fieldID, field.Kind)
	}
	if field.Kind == form.KindSelect && !field.HasOption(value) {
		return fmt.Errorf("%w: %q for %s", ErrUnknownOption, value, fieldID)
	}
	field.SetValue(value)
	s.changedLocked(field)
	return nil
}

// SetChecked toggles a checkbox, or checks a radio. Radios cannot be
// unchecked directly; check a sibling instead.
func (s *Session) SetChecked(fieldID string, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	field, err := s.editableLocked(fieldID)
	if err != nil {
		return err
	}
	if !field.Kind.Checkable() {
		return fmt.Errorf("%w: %s is a %s", ErrFieldKind, fieldID, field.Kind)
	}
	if field.Kind == form.KindRadio && !checked {
		return fmt.Errorf("%w: radio %s cannot be unchecked", ErrFieldKind, fieldID)
	}
	s.form.SetChecked(field, checked)
	s.changedLocked(field)
	return nil
}

// Choose checks the radio of group name whose value matches.
func (s *Session) Choose(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	members := s.form.Named(name)
	if len(members) == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	for _, member := range members {
		if member.Kind != form.KindRadio {
			return fmt.Errorf("%w: %s is not a radio group", ErrFieldKind, name)
		}
	}
	for _, member := range members {
		if member.Value != value {
			continue
		}
		if member.Disabled {
			return fmt.Errorf("%w: %s", ErrFieldDisabled, member.ID)
		}
		s.form.SetChecked(member, true)
		s.changedLocked(member)
		return nil
	}
	return fmt.Errorf("%w: %q for %s", ErrUnknownOption, value, name)
}

func (s *Session) editableLocked(fieldID string) (*form.Field, error) {
	if s.closed {
		return nil, ErrClosed
	}
	field, ok := s.form.Field(fieldID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}
	if field.Disabled {
		return nil, fmt.Errorf("%w: %s", ErrFieldDisabled, fieldID)
	}
	return field, nil
}

// changedLocked mirrors the page's change and input listeners: the rules
// keyed to the field run, the age follows the date of birth, and a draft save
// is (re)scheduled.
func (s *Session) changedLocked(field *form.Field) {
	s.rules.Changed(field.ID)
	s.age.Changed(field.ID)
	s.saver.Schedule()
}

// Submit validates required fields and hands the collected record to the
// submitter. A validation failure returns a *ValidationError and leaves the
// form and draft alone. On success the form is reset, rules and age are
// recomputed and the draft slot is deleted.
func (s *Session) Submit(ctx context.Context) (submit.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return submit.Receipt{}, ErrClosed
	}

	if violations := s.form.Validate(); len(violations) > 0 {
		verr := &ValidationError{Violations: violations}
		s.metrics.submission(s.caseType, OutcomeInvalid)
		s.logger.Info("submission blocked", "missing", verr.Names())
		s.notifyLocked(notify.KindValidation, verr.Names(), "")
		return submit.Receipt{}, verr
	}

	rec := collect.Collect(s.form)
	receipt, err := s.submitter.Submit(ctx, s.caseType, rec)
	if err != nil {
		s.metrics.submission(s.caseType, OutcomeFailed)
		s.logger.Error("submission failed", "error", err)
		s.notifyLocked(notify.KindFailed, nil, "")
		return submit.Receipt{}, fmt.Errorf("session: submit: %w", err)
	}
	s.metrics.submission(s.caseType, OutcomeAccepted)
	s.notifyLocked(notify.KindSaved, nil, receipt.ID)

	if err := s.resetLocked(ctx); err != nil {
		return receipt, err
	}
	return receipt, nil
}

// Clear resets the form and deletes the draft slot.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.resetLocked(ctx); err != nil {
		return err
	}
	s.notifyLocked(notify.KindCleared, nil, "")
	return nil
}

func (s *Session) resetLocked(ctx context.Context) error {
	s.saver.Cancel()
	s.form.Reset()
	s.rules.RecomputeAll()
	s.age.Apply()

	if err := s.store.Delete(ctx, s.key); err != nil {
		s.metrics.draftOp(s.caseType, OpError)
		return fmt.Errorf("session: delete draft %s: %w", s.key, err)
	}
	s.metrics.draftOp(s.caseType, OpDelete)
	return nil
}

// Snapshot returns what a save or submission would record right now.
func (s *Session) Snapshot() collect.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collect.Collect(s.form)
}

// SavePending reports whether a debounced save is waiting.
func (s *Session) SavePending() bool {
	return s.saver.Pending()
}

// LastSaveError returns the error of the most recent draft write, if any.
func (s *Session) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// Close writes a pending draft immediately and stops the saver. Other
// operations fail with ErrClosed afterwards; a second Close is a no-op.
//
// The pending save is cancelled and written under the session lock, so every
// edit accepted before Close is in the final draft.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	pending := s.saver.Cancel()
	s.saver.Stop()
	if pending {
		ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
		defer cancel()
		s.lastSaveErr = s.saveLocked(ctx)
	}
	s.logger.Debug("session closed", "flushed", pending)
	return s.lastSaveErr
}

// saveFromTimer runs with s.mu held by the saver.
func (s *Session) saveFromTimer() {
	if s.closed {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()
	s.lastSaveErr = s.saveLocked(ctx)
}

func (s *Session) saveLocked(ctx context.Context) error {
	rec := collect.Collect(s.form)
	data, err := draft.Encode(rec)
	if err != nil {
		s.metrics.draftOp(s.caseType, OpError)
		s.logger.Error("draft encode failed", "error", err)
		return err
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		s.metrics.draftOp(s.caseType, OpError)
		s.logger.Error("draft save failed", "key", s.key, "error", err)
		return fmt.Errorf("session: save draft %s: %w", s.key, err)
	}
	s.metrics.draftOp(s.caseType, OpSave)
	s.logger.Debug("draft saved", "key", s.key, "fields", len(rec))
	return nil
}

func (s *Session) notifyLocked(kind notify.Kind, fields []string, receipt string) {
	n, err := s.messages.Notice(kind, s.caseType, fields, receipt)
	if err != nil {
		s.logger.Warn("notice template failed", "kind", kind, "error", err)
		n = notify.Notice{Kind: kind, CaseType: s.caseType, Message: string(kind), Fields: fields, Receipt: receipt}
	}
	s.notifier.Notify(n)
}

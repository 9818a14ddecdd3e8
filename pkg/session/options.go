package session

import (
	"io"
	"log/slog"
	"time"

	"github.com/goliatone/go-caseform/pkg/age"
	"github.com/goliatone/go-caseform/pkg/draft"
	"github.com/goliatone/go-caseform/pkg/notify"
	"github.com/goliatone/go-caseform/pkg/submit"
	"github.com/goliatone/go-caseform/pkg/toggle"
)

// DefaultSaveTimeout bounds a debounced write, which runs without a caller
// context.
const DefaultSaveTimeout = 5 * time.Second

// Option configures a Session.
type Option func(*options)

type options struct {
	rules       []toggle.Rule
	store       draft.Store
	submitter   submit.Submitter
	notifier    notify.Notifier
	messages    *notify.Messages
	logger      *slog.Logger
	metrics     *Metrics
	saverOpts   []draft.SaverOption
	ageOpts     []age.Option
	saveTimeout time.Duration
}

func defaultOptions() options {
	return options{
		rules:       toggle.DefaultRules(),
		notifier:    notify.Discard,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		saveTimeout: DefaultSaveTimeout,
	}
}

// WithRules replaces the bundled rule table.
func WithRules(rules []toggle.Rule) Option {
	return func(o *options) {
		if rules != nil {
			o.rules = rules
		}
	}
}

// WithStore sets the draft store. The default is a fresh MemoryStore.
func WithStore(store draft.Store) Option {
	return func(o *options) {
		if store != nil {
			o.store = store
		}
	}
}

// WithSubmitter sets where finished cases go. The default logs them.
func WithSubmitter(s submit.Submitter) Option {
	return func(o *options) {
		if s != nil {
			o.submitter = s
		}
	}
}

// WithNotifier sets the feedback sink.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithMessages overrides the bundled notice templates.
func WithMessages(m *notify.Messages) Option {
	return func(o *options) {
		if m != nil {
			o.messages = m
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records activity on m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithSaverOptions tunes the debounced saver, e.g. its delay or scheduler.
func WithSaverOptions(opts ...draft.SaverOption) Option {
	return func(o *options) {
		o.saverOpts = append(o.saverOpts, opts...)
	}
}

// WithAgeOptions tunes the age deriver.
func WithAgeOptions(opts ...age.Option) Option {
	return func(o *options) {
		o.ageOpts = append(o.ageOpts, opts...)
	}
}

// WithSaveTimeout bounds each debounced write.
func WithSaveTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.saveTimeout = d
		}
	}
}

// Package submit hands a collected case record to whatever accepts finished
// cases. The bundled LogSubmitter stands in for a clinic backend.
package submit

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-caseform/pkg/collect"
)

// Receipt acknowledges an accepted case.
type Receipt struct {
	ID          string         `json:"id"`
	CaseType    string         `json:"caseType"`
	Fields      collect.Record `json:"fields"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// Submitter accepts a finished case.
type Submitter interface {
	Submit(ctx context.Context, caseType string, rec collect.Record) (Receipt, error)
}

// Func adapts a function to Submitter.
type Func func(ctx context.Context, caseType string, rec collect.Record) (Receipt, error)

func (fn Func) Submit(ctx context.Context, caseType string, rec collect.Record) (Receipt, error) {
	return fn(ctx, caseType, rec)
}

// Option configures a LogSubmitter.
type Option func(*LogSubmitter)

// WithLogger sets the destination of submission logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *LogSubmitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the receipt timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *LogSubmitter) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides receipt id generation.
func WithIDGenerator(next func() string) Option {
	return func(s *LogSubmitter) {
		if next != nil {
			s.newID = next
		}
	}
}

// LogSubmitter logs the case and returns a receipt. It never fails unless the
// context is done.
type LogSubmitter struct {
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewLogSubmitter returns a submitter that writes to a discard logger unless
// WithLogger is given.
func NewLogSubmitter(opts ...Option) *LogSubmitter {
	s := &LogSubmitter{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *LogSubmitter) Submit(ctx context.Context, caseType string, rec collect.Record) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, fmt.Errorf("submit: %w", err)
	}

	receipt := Receipt{
		ID:          s.newID(),
		CaseType:    caseType,
		Fields:      Sanitize(rec),
		SubmittedAt: s.now().UTC(),
	}

	attrs := make([]any, 0, len(receipt.Fields)+3)
	attrs = append(attrs,
		slog.String("receipt", receipt.ID),
		slog.String("case_type", caseType),
		slog.Int("fields", len(receipt.Fields)),
	)
	for _, key := range receipt.Fields.Keys() {
		attrs = append(attrs, slog.Any("field."+key, receipt.Fields[key]))
	}
	s.logger.InfoContext(ctx, "case submitted", attrs...)
	return receipt, nil
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitize returns a copy of rec with markup stripped from every string
// value. Entities the policy escapes are decoded again so the record stays
// plain text.
func Sanitize(rec collect.Record) collect.Record {
	out := rec.Clone()
	if out == nil {
		return collect.Record{}
	}
	for key, value := range out {
		text, ok := value.(string)
		if !ok || text == "" {
			continue
		}
		out[key] = SanitizeText(text)
	}
	return out
}

// SanitizeText strips markup from a single free-text value.
func SanitizeText(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return strings.TrimSpace(html.UnescapeString(textSanitizer().Sanitize(raw)))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// Package notify carries user feedback out of a form session. Messages are
// pongo2 templates so wording can change without touching session code.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Kind classifies a notice.
type Kind string

const (
	KindValidation Kind = "validation"
	KindSaved      Kind = "saved"
	KindFailed     Kind = "failed"
	KindCleared    Kind = "cleared"
	KindRestored   Kind = "restored"
)

// Kinds lists every kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindValidation, KindSaved, KindFailed, KindCleared, KindRestored}
}

// Notice is one piece of feedback.
type Notice struct {
	Kind     Kind
	CaseType string
	Message  string
	// Fields names the offending fields of a validation notice.
	Fields []string
	// Receipt is the submission id of a saved notice.
	Receipt string
}

// Notifier receives notices. Implementations must not call back into the
// session that produced the notice.
type Notifier interface {
	Notify(Notice)
}

// Func adapts a function to Notifier.
type Func func(Notice)

func (fn Func) Notify(n Notice) { fn(n) }

// Discard drops every notice.
var Discard Notifier = Func(func(Notice) {})

// WriterNotifier prints each message on its own line.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a notifier writing to w.
func NewWriter(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, notice.Message)
}

// Recorder keeps every notice in order. Tests use it to assert feedback.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of everything recorded.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Kinds returns the recorded kinds in order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Kind, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Kind)
	}
	return out
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

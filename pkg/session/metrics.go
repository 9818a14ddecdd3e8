package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// Draft operations.
const (
	OpSave    = "save"
	OpRestore = "restore"
	OpDelete  = "delete"
	OpError   = "error"
)

// Metrics counts session activity. A nil *Metrics records nothing.
type Metrics struct {
	DraftOps          *prometheus.CounterVec
	Submissions       *prometheus.CounterVec
	ToggleEvaluations *prometheus.CounterVec
}

// NewMetrics registers the session collectors on reg. Pass
// prometheus.DefaultRegisterer to expose them process-wide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DraftOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "caseform_draft_operations_total",
			Help: "Draft slot operations by case type and operation",
		}, []string{"case_type", "op"}),

		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "caseform_submissions_total",
			Help: "Submission attempts by case type and outcome",
		}, []string{"case_type", "outcome"}),

		ToggleEvaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "caseform_toggle_evaluations_total",
			Help: "Toggle rule evaluations by case type and resulting state",
		}, []string{"case_type", "active"}),
	}
}

func (m *Metrics) draftOp(caseType, op string) {
	if m != nil {
		m.DraftOps.WithLabelValues(caseType, op).Inc()
	}
}

func (m *Metrics) submission(caseType, outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(caseType, outcome).Inc()
	}
}

func (m *Metrics) evaluation(caseType string, active bool) {
	if m != nil {
		state := "false"
		if active {
			state = "true"
		}
		m.ToggleEvaluations.WithLabelValues(caseType, state).Inc()
	}
}

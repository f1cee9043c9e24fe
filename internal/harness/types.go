package harness

import (
	"strings"

	"github.com/XTiNCT-7/oop/internal/roster"
)

// Step outcomes recorded in the trace.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// TraceEvent records one performed step.
type TraceEvent struct {
	Seq      int64    `json:"seq"`
	Op       string   `json:"op"`
	Employee int      `json:"employee"`
	Outcome  string   `json:"outcome"`
	Amount   *float64 `json:"amount,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Transcript holds the printed lines in order.
	Transcript []string `json:"transcript"`

	// Trace contains one event per step.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Roster is the roster after all steps ran.
	Roster *roster.Roster `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Transcript: []string{},
		Trace:      []TraceEvent{},
		Errors:     []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Print appends lines to the transcript.
func (r *Result) Print(lines ...string) {
	r.Transcript = append(r.Transcript, lines...)
}

// TranscriptText returns the transcript as newline-terminated text.
func (r *Result) TranscriptText() string {
	if len(r.Transcript) == 0 {
		return ""
	}
	return strings.Join(r.Transcript, "\n") + "\n"
}

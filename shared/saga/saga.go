// Package saga holds the choreography vocabulary shared by the participants:
// the saga progress states, their transition rules and the event routing and
// de-duplication that every consumer runs through.
package saga

import (
	"fmt"
	"time"
)

// State is the progress of one saga instance, tracked apart from the
// user-visible enrollment status.
type State string

const (
	StateStarted     State = "STARTED"
	StateCompleted   State = "COMPLETED"
	StateFailed      State = "FAILED"
	StateCompensated State = "COMPENSATED"
	StateAborted     State = "ABORTED"
	StateOverridden  State = "OVERRIDDEN"
)

// transitions lists the legal moves out of each state. OVERRIDDEN is the
// administrative escape hatch and is reachable from anywhere.
var transitions = map[State][]State{
	"":               {StateStarted},
	StateStarted:     {StateStarted, StateCompleted, StateFailed, StateCompensated, StateAborted, StateOverridden},
	StateCompleted:   {StateOverridden},
	StateFailed:      {StateOverridden},
	StateCompensated: {StateOverridden},
	StateAborted:     {StateOverridden},
	StateOverridden:  {StateOverridden},
}

// IsTerminal reports whether saga events may still move the instance
func (s State) IsTerminal() bool {
	return s != "" && s != StateStarted
}

func (s State) String() string {
	return string(s)
}

// CanTransition reports whether from -> to is allowed
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition is one entry of a saga's history
type Transition struct {
	EnrollmentID string    `json:"enrollment_id"`
	Sequence     int       `json:"sequence"`
	From         State     `json:"from"`
	To           State     `json:"to"`
	Trigger      string    `json:"trigger"`
	EventID      string    `json:"event_id,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewTransition validates and builds a history entry
func NewTransition(enrollmentID string, from, to State, trigger, eventID, reason string) (Transition, error) {
	if !CanTransition(from, to) {
		return Transition{}, fmt.Errorf("saga transition %s -> %s is not allowed", displayState(from), to)
	}

	return Transition{
		EnrollmentID: enrollmentID,
		From:         from,
		To:           to,
		Trigger:      trigger,
		EventID:      eventID,
		Reason:       reason,
		OccurredAt:   time.Now().UTC(),
	}, nil
}

func displayState(s State) string {
	if s == "" {
		return "<new>"
	}
	return s.String()
}

// Triggers recorded on transitions that do not come from a bus event
const (
	TriggerInitiate = "initiate"
	TriggerRetry    = "retry"
	TriggerConfirm  = "manual-confirm"
)

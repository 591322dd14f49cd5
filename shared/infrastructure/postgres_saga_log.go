package infrastructure

import (
	"context"
	"time"

	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// PostgresSagaLog stores the transition history of saga instances.
// Appends take an sqlx.ExtContext so they join the transaction that
// writes the entity they describe.
type PostgresSagaLog struct {
	db *sqlx.DB
}

// NewPostgresSagaLog creates a new PostgresSagaLog
func NewPostgresSagaLog(db *sqlx.DB) *PostgresSagaLog {
	return &PostgresSagaLog{db: db}
}

// postgresTransition represents a transition in database
type postgresTransition struct {
	EnrollmentID string    `db:"enrollment_id"`
	Sequence     int       `db:"sequence"`
	FromState    string    `db:"from_state"`
	ToState      string    `db:"to_state"`
	Trigger      string    `db:"triggered_by"`
	EventID      string    `db:"event_id"`
	Reason       string    `db:"reason"`
	OccurredAt   time.Time `db:"occurred_at"`
}

// Append stores transitions after the last recorded sequence of their saga
func (l *PostgresSagaLog) Append(ctx context.Context, ext sqlx.ExtContext, transitions []saga.Transition) error {
	if len(transitions) == 0 {
		return nil
	}

	var current int
	err := sqlx.GetContext(ctx, ext, &current,
		"SELECT COALESCE(MAX(sequence), 0) FROM saga_transitions WHERE enrollment_id = $1",
		transitions[0].EnrollmentID)
	if err != nil {
		return errors.Wrap(err, "failed to get current saga sequence")
	}

	query := `
		INSERT INTO saga_transitions (
			enrollment_id, sequence, from_state, to_state, triggered_by,
			event_id, reason, occurred_at
		) VALUES (
			:enrollment_id, :sequence, :from_state, :to_state, :triggered_by,
			:event_id, :reason, :occurred_at
		)`

	for i, transition := range transitions {
		row := l.toPostgres(transition, current+i+1)
		if _, err := sqlx.NamedExecContext(ctx, ext, query, row); err != nil {
			return errors.Wrap(err, "failed to insert saga transition")
		}
	}

	return nil
}

// History returns the transitions of one saga, oldest first
func (l *PostgresSagaLog) History(ctx context.Context, enrollmentID string) ([]saga.Transition, error) {
	query := `
		SELECT enrollment_id, sequence, from_state, to_state, triggered_by,
			   event_id, reason, occurred_at
		FROM saga_transitions
		WHERE enrollment_id = $1
		ORDER BY sequence ASC`

	var rows []postgresTransition
	if err := l.db.SelectContext(ctx, &rows, query, enrollmentID); err != nil {
		return nil, errors.Wrap(err, "failed to get saga history")
	}

	history := make([]saga.Transition, len(rows))
	for i := range rows {
		history[i] = l.toDomain(&rows[i])
	}

	return history, nil
}

func (l *PostgresSagaLog) toPostgres(t saga.Transition, sequence int) *postgresTransition {
	return &postgresTransition{
		EnrollmentID: t.EnrollmentID,
		Sequence:     sequence,
		FromState:    t.From.String(),
		ToState:      t.To.String(),
		Trigger:      t.Trigger,
		EventID:      t.EventID,
		Reason:       t.Reason,
		OccurredAt:   t.OccurredAt,
	}
}

func (l *PostgresSagaLog) toDomain(row *postgresTransition) saga.Transition {
	return saga.Transition{
		EnrollmentID: row.EnrollmentID,
		Sequence:     row.Sequence,
		From:         saga.State(row.FromState),
		To:           saga.State(row.ToState),
		Trigger:      row.Trigger,
		EventID:      row.EventID,
		Reason:       row.Reason,
		OccurredAt:   row.OccurredAt,
	}
}

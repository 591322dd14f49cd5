package infrastructure

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSagaLog(t *testing.T) (*PostgresSagaLog, *sqlx.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db := sqlx.NewDb(sqlDB, "postgres")
	return NewPostgresSagaLog(db), db, mock
}

func TestPostgresSagaLog_Append(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	transitions := []saga.Transition{
		{EnrollmentID: "e1", From: saga.StateStarted, To: saga.StateCompleted, Trigger: "seat-reserved", EventID: "evt-9", OccurredAt: now},
	}

	t.Run("continues after the last sequence", func(t *testing.T) {
		log, db, mock := setupSagaLog(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(sequence), 0) FROM saga_transitions WHERE enrollment_id = $1")).
			WithArgs("e1").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(2))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO saga_transitions")).
			WithArgs("e1", 3, "STARTED", "COMPLETED", "seat-reserved", "evt-9", "", now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, log.Append(ctx, db, transitions))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure is wrapped", func(t *testing.T) {
		log, db, mock := setupSagaLog(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(sequence), 0)")).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO saga_transitions")).
			WillReturnError(errors.New("duplicate key"))

		err := log.Append(ctx, db, transitions)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert saga transition")
	})

	t.Run("nothing to append", func(t *testing.T) {
		log, db, mock := setupSagaLog(t)
		require.NoError(t, log.Append(ctx, db, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresSagaLog_History(t *testing.T) {
	log, _, mock := setupSagaLog(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"enrollment_id", "sequence", "from_state", "to_state", "triggered_by", "event_id", "reason", "occurred_at"}).
		AddRow("e1", 1, "", "STARTED", "initiate", "", "", now).
		AddRow("e1", 2, "STARTED", "COMPENSATED", "seat-reservation-failed", "evt-2", "course full", now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM saga_transitions")).WithArgs("e1").WillReturnRows(rows)

	history, err := log.History(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, saga.State(""), history[0].From)
	assert.Equal(t, saga.StateCompensated, history[1].To)
	assert.Equal(t, "course full", history[1].Reason)
}

package infrastructure

import (
	"context"
	"testing"

	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEnrollmentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEnrollmentRepository()

	e := startEnrollment(t)
	require.NoError(t, repo.Save(ctx, e))

	loaded, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	require.NoError(t, loaded.ConfirmFromSaga("evt-1", testStudent, testCourse))
	require.NoError(t, repo.Save(ctx, loaded))

	// a second reader still holds version 1
	stale, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	stale.Version.Value = 1
	require.NoError(t, stale.ForceConfirm())
	assert.True(t, apperrors.Is(repo.Save(ctx, stale), apperrors.ErrConcurrentModification))

	history, err := repo.History(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].Sequence)
	assert.Equal(t, saga.StateCompleted, history[1].To)
	assert.Equal(t, events.SeatReservedEvent, history[1].Trigger)

	byStudent, err := repo.FindByStudentID(ctx, "42")
	require.NoError(t, err)
	assert.Len(t, byStudent, 1)

	missing, err := repo.FindByStudentID(ctx, "43")
	require.NoError(t, err)
	assert.Empty(t, missing)

	byCourse, err := repo.FindByCourseID(ctx, "7")
	require.NoError(t, err)
	assert.Len(t, byCourse, 1)
}

func TestMemoryEnrollmentRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEnrollmentRepository()

	e := startEnrollment(t)
	require.NoError(t, repo.Save(ctx, e))

	stale, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)

	current, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	require.NoError(t, current.CancelFromSaga(events.PaymentFailedEvent, "evt-2"))
	require.NoError(t, repo.Save(ctx, current))

	assert.True(t, apperrors.Is(repo.Delete(ctx, stale), apperrors.ErrConcurrentModification))

	require.NoError(t, repo.Delete(ctx, current))

	gone, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	history, err := repo.History(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	byCourse, err := repo.FindByCourseID(ctx, "7")
	require.NoError(t, err)
	assert.Empty(t, byCourse)
}

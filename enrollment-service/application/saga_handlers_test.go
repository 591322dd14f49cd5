package application

import (
	"context"
	"testing"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/campusflow/enrollment-system/enrollment-service/mocks"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/events"
	sharedmocks "github.com/campusflow/enrollment-system/shared/mocks"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pendingEnrollment(t *testing.T) *domain.Enrollment {
	e, err := domain.StartEnrollment(*ada, *algebra)
	require.NoError(t, err)
	e.ClearEvents()
	e.ClearTransitions()
	return e
}

func stepEvent(topic string, e *domain.Enrollment) *events.Event {
	return events.NewEvent(e.ID, topic, events.SagaStepData{
		EnrollmentID: e.ID.String(),
		StudentID:    e.StudentID,
		CourseID:     e.CourseID,
	}).WithCorrelationID(e.ID)
}

func TestCompleteEnrollment_Execute(t *testing.T) {
	t.Run("confirms and announces", func(t *testing.T) {
		repo := mocks.NewMockEnrollmentRepository(t)
		students := mocks.NewMockStudentDirectory(t)
		courses := mocks.NewMockCourseCatalog(t)
		publisher := sharedmocks.NewMockPublisher(t)
		e := pendingEnrollment(t)

		repo.EXPECT().FindByID(mock.Anything, e.ID).Return(e, nil).Once()
		students.EXPECT().GetStudent(mock.Anything, "42").Return(ada, nil).Once()
		courses.EXPECT().GetCourse(mock.Anything, "7").Return(nil, errors.New("timeout")).Once()
		repo.EXPECT().Save(mock.Anything, e).Return(nil).Once()
		publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
			var data events.EnrollmentConfirmedData
			require.NoError(t, evt.UnmarshalPayload(&data))
			return evt.Topic.String() == events.EnrollmentConfirmedEvent &&
				data.StudentEmail == "ada@example.com" &&
				data.CourseName == domain.UnknownName &&
				data.Status == "ACTIVE"
		})).Return(nil).Once()

		uc := NewCompleteEnrollment(repo, students, courses, publisher, zap.NewNop())
		require.NoError(t, uc.Execute(context.Background(), stepEvent(events.SeatReservedEvent, e)))
		assert.Equal(t, domain.EnrollmentStatusConfirmed, e.Status)
		assert.Equal(t, saga.StateCompleted, e.SagaState)
	})

	t.Run("drops events for a finished enrollment", func(t *testing.T) {
		repo := mocks.NewMockEnrollmentRepository(t)
		students := mocks.NewMockStudentDirectory(t)
		courses := mocks.NewMockCourseCatalog(t)
		e := pendingEnrollment(t)
		require.NoError(t, e.CancelFromSaga(events.SeatReservationFailedEvent, "evt-0"))

		repo.EXPECT().FindByID(mock.Anything, e.ID).Return(e, nil).Once()
		students.EXPECT().GetStudent(mock.Anything, "42").Return(ada, nil).Once()
		courses.EXPECT().GetCourse(mock.Anything, "7").Return(algebra, nil).Once()

		uc := NewCompleteEnrollment(repo, students, courses, sharedmocks.NewMockPublisher(t), zap.NewNop())
		require.NoError(t, uc.Execute(context.Background(), stepEvent(events.SeatReservedEvent, e)))
		assert.Equal(t, domain.EnrollmentStatusCancelled, e.Status)
	})

	t.Run("unknown enrollment is dropped", func(t *testing.T) {
		repo := mocks.NewMockEnrollmentRepository(t)
		e := pendingEnrollment(t)
		repo.EXPECT().FindByID(mock.Anything, e.ID).Return(nil, nil).Once()

		uc := NewCompleteEnrollment(repo, mocks.NewMockStudentDirectory(t), mocks.NewMockCourseCatalog(t), sharedmocks.NewMockPublisher(t), zap.NewNop())
		assert.NoError(t, uc.Execute(context.Background(), stepEvent(events.SeatReservedEvent, e)))
	})

	t.Run("save failure is returned for redelivery", func(t *testing.T) {
		repo := mocks.NewMockEnrollmentRepository(t)
		students := mocks.NewMockStudentDirectory(t)
		courses := mocks.NewMockCourseCatalog(t)
		e := pendingEnrollment(t)

		repo.EXPECT().FindByID(mock.Anything, e.ID).Return(e, nil).Once()
		students.EXPECT().GetStudent(mock.Anything, "42").Return(ada, nil).Once()
		courses.EXPECT().GetCourse(mock.Anything, "7").Return(algebra, nil).Once()
		repo.EXPECT().Save(mock.Anything, e).Return(apperrors.ErrConcurrentModification).Once()

		uc := NewCompleteEnrollment(repo, students, courses, sharedmocks.NewMockPublisher(t), zap.NewNop())
		err := uc.Execute(context.Background(), stepEvent(events.SeatReservedEvent, e))
		assert.True(t, apperrors.Is(err, apperrors.ErrConcurrentModification))
	})

	t.Run("malformed payload", func(t *testing.T) {
		uc := NewCompleteEnrollment(mocks.NewMockEnrollmentRepository(t), mocks.NewMockStudentDirectory(t), mocks.NewMockCourseCatalog(t), sharedmocks.NewMockPublisher(t), zap.NewNop())
		event := events.NewEvent(models.GenerateUUID(), events.SeatReservedEvent, events.SagaStepData{StudentID: "42"})
		assert.ErrorIs(t, uc.Execute(context.Background(), event), events.ErrInvalidPayload)
	})
}

func TestCancelEnrollment_Execute(t *testing.T) {
	tests := []struct {
		name      string
		topic     string
		wantState saga.State
	}{
		{"payment failed", events.PaymentFailedEvent, saga.StateFailed},
		{"seat reservation failed", events.SeatReservationFailedEvent, saga.StateCompensated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockEnrollmentRepository(t)
			e := pendingEnrollment(t)

			repo.EXPECT().FindByID(mock.Anything, e.ID).Return(e, nil).Twice()
			repo.EXPECT().Save(mock.Anything, e).Return(nil).Once()

			uc := NewCancelEnrollment(repo, zap.NewNop())
			event := stepEvent(tt.topic, e)
			require.NoError(t, uc.Execute(context.Background(), event))
			assert.Equal(t, domain.EnrollmentStatusCancelled, e.Status)
			assert.Equal(t, tt.wantState, e.SagaState)

			// replay changes nothing and saves nothing
			require.NoError(t, uc.Execute(context.Background(), event))
			assert.Equal(t, tt.wantState, e.SagaState)
		})
	}
}

func TestRetryEnrollment_Execute(t *testing.T) {
	t.Run("re-publishes with fallbacks", func(t *testing.T) {
		repo := mocks.NewMockEnrollmentRepository(t)
		students := mocks.NewMockStudentDirectory(t)
		courses := mocks.NewMockCourseCatalog(t)
		publisher := sharedmocks.NewMockPublisher(t)
		e := pendingEnrollment(t)

		repo.EXPECT().FindByID(mock.Anything, e.ID).Return(e, nil).Once()
		students.EXPECT().GetStudent(mock.Anything, "42").Return(&domain.Student{ID: "42"}, nil).Once()
		courses.EXPECT().GetCourse(mock.Anything, "7").Return(algebra, nil).Once()
		repo.EXPECT().Save(mock.Anything, e).Return(nil).Once()
		publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
			var data events.EnrollmentInitiatedData
			require.NoError(t, evt.UnmarshalPayload(&data))
			return isInitiated(evt) &&
				data.StudentEmail == RetryFallbackEmail &&
				data.StudentName == domain.UnknownName &&
				data.CourseName == "Algebra"
		})).Return(nil).Once()

		uc := NewRetryEnrollment(repo, students, courses, publisher, zap.NewNop())
		result, err := uc.Execute(context.Background(), e.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "PENDING", result.Status)
	})

	t.Run("terminal enrollment", func(t *testing.T) {
		repo := mocks.NewMockEnrollmentRepository(t)
		e := pendingEnrollment(t)
		require.NoError(t, e.CancelFromSaga(events.PaymentFailedEvent, "evt-1"))
		repo.EXPECT().FindByID(mock.Anything, e.ID).Return(e, nil).Once()

		uc := NewRetryEnrollment(repo, mocks.NewMockStudentDirectory(t), mocks.NewMockCourseCatalog(t), sharedmocks.NewMockPublisher(t), zap.NewNop())
		_, err := uc.Execute(context.Background(), e.ID.String())
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState))
	})

	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewMockEnrollmentRepository(t)
		id := models.GenerateUUID()
		repo.EXPECT().FindByID(mock.Anything, id).Return(nil, nil).Once()

		uc := NewRetryEnrollment(repo, mocks.NewMockStudentDirectory(t), mocks.NewMockCourseCatalog(t), sharedmocks.NewMockPublisher(t), zap.NewNop())
		_, err := uc.Execute(context.Background(), id.String())
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("malformed id", func(t *testing.T) {
		uc := NewRetryEnrollment(mocks.NewMockEnrollmentRepository(t), mocks.NewMockStudentDirectory(t), mocks.NewMockCourseCatalog(t), sharedmocks.NewMockPublisher(t), zap.NewNop())
		_, err := uc.Execute(context.Background(), "12")
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	})
}

func TestConfirmEnrollment_Execute(t *testing.T) {
	repo := mocks.NewMockEnrollmentRepository(t)
	students := mocks.NewMockStudentDirectory(t)
	courses := mocks.NewMockCourseCatalog(t)
	e := pendingEnrollment(t)

	repo.EXPECT().FindByID(mock.Anything, e.ID).Return(e, nil).Once()
	repo.EXPECT().Save(mock.Anything, e).Return(nil).Once()
	students.EXPECT().GetStudent(mock.Anything, "42").Return(ada, nil).Once()
	courses.EXPECT().GetCourse(mock.Anything, "7").Return(algebra, nil).Once()

	uc := NewConfirmEnrollment(repo, students, courses, zap.NewNop())
	result, err := uc.Execute(context.Background(), e.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", result.Status)
	assert.Equal(t, "OVERRIDDEN", result.SagaState)
	assert.Equal(t, "Ada Lovelace", result.StudentName)
}

func TestGetEnrollment(t *testing.T) {
	repo := mocks.NewMockEnrollmentRepository(t)
	students := mocks.NewMockStudentDirectory(t)
	courses := mocks.NewMockCourseCatalog(t)
	e := pendingEnrollment(t)

	repo.EXPECT().FindByStudentID(mock.Anything, "42").Return([]*domain.Enrollment{e}, nil).Once()
	students.EXPECT().GetStudent(mock.Anything, "42").Return(nil, apperrors.ErrDependencyUnavailable).Once()
	courses.EXPECT().GetCourse(mock.Anything, "7").Return(nil, nil).Once()

	uc := NewGetEnrollment(repo, students, courses, zap.NewNop())
	views, err := uc.ByStudent(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, domain.UnknownName, views[0].StudentName)
	assert.Equal(t, domain.UnknownName, views[0].CourseTitle)

	repo.EXPECT().FindByID(mock.Anything, e.ID).Return(e, nil).Once()
	repo.EXPECT().History(mock.Anything, e.ID).Return([]saga.Transition{{EnrollmentID: e.ID.String(), Sequence: 1, To: saga.StateStarted}}, nil).Once()

	history, err := uc.History(context.Background(), e.ID.String())
	require.NoError(t, err)
	assert.Len(t, history, 1)

	repo.EXPECT().FindByCourseID(mock.Anything, "7").Return([]*domain.Enrollment{e}, nil).Once()
	students.EXPECT().GetStudent(mock.Anything, "42").Return(ada, nil).Once()
	courses.EXPECT().GetCourse(mock.Anything, "7").Return(algebra, nil).Once()

	byCourse, err := uc.ByCourse(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, byCourse, 1)
	assert.Equal(t, "Ada Lovelace", byCourse[0].StudentName)
}

func TestDeleteEnrollment_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("pending enrollment is refused", func(t *testing.T) {
		repo := mocks.NewMockEnrollmentRepository(t)
		e := pendingEnrollment(t)
		repo.EXPECT().FindByID(mock.Anything, e.ID).Return(e, nil).Once()

		err := NewDeleteEnrollment(repo, zap.NewNop()).Execute(ctx, e.ID.String())
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState))
	})

	t.Run("cancelled enrollment is deleted", func(t *testing.T) {
		repo := mocks.NewMockEnrollmentRepository(t)
		e := pendingEnrollment(t)
		require.NoError(t, e.CancelFromSaga(events.PaymentFailedEvent, "evt-9"))
		e.ClearTransitions()

		repo.EXPECT().FindByID(mock.Anything, e.ID).Return(e, nil).Once()
		repo.EXPECT().Delete(mock.Anything, e).Return(nil).Once()

		assert.NoError(t, NewDeleteEnrollment(repo, zap.NewNop()).Execute(ctx, e.ID.String()))
	})

	t.Run("concurrent update surfaces as conflict", func(t *testing.T) {
		repo := mocks.NewMockEnrollmentRepository(t)
		e := pendingEnrollment(t)
		require.NoError(t, e.ForceConfirm())

		repo.EXPECT().FindByID(mock.Anything, e.ID).Return(e, nil).Once()
		repo.EXPECT().Delete(mock.Anything, e).Return(apperrors.ErrConcurrentModification).Once()

		err := NewDeleteEnrollment(repo, zap.NewNop()).Execute(ctx, e.ID.String())
		assert.True(t, apperrors.Is(err, apperrors.ErrConcurrentModification))
	})

	t.Run("missing enrollment", func(t *testing.T) {
		repo := mocks.NewMockEnrollmentRepository(t)
		id := models.GenerateUUID()
		repo.EXPECT().FindByID(mock.Anything, id).Return(nil, nil).Once()

		err := NewDeleteEnrollment(repo, zap.NewNop()).Execute(ctx, id.String())
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

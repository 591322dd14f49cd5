package infrastructure

import (
	"context"
	"sort"
	"sync"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/pkg/errors"
)

var _ domain.EnrollmentRepository = (*MemoryEnrollmentRepository)(nil)

// MemoryEnrollmentRepository keeps enrollments in process, with the same
// version check as the postgres repository
type MemoryEnrollmentRepository struct {
	mu          sync.RWMutex
	enrollments map[models.ID]domain.Enrollment
	history     map[models.ID][]saga.Transition
}

func NewMemoryEnrollmentRepository() *MemoryEnrollmentRepository {
	return &MemoryEnrollmentRepository{
		enrollments: make(map[models.ID]domain.Enrollment),
		history:     make(map[models.ID][]saga.Transition),
	}
}

func (r *MemoryEnrollmentRepository) Save(ctx context.Context, enrollment *domain.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.enrollments[enrollment.ID]
	if enrollment.IsNew() {
		if exists {
			return apperrors.Storage(errors.New("duplicate key"), "failed to insert enrollment")
		}
	} else if !exists || stored.Version.Value != enrollment.Version.Previous() {
		return errors.Wrapf(apperrors.ErrConcurrentModification, "enrollment %s changed since version %d",
			enrollment.ID, enrollment.Version.Previous())
	}

	log := r.history[enrollment.ID]
	for _, transition := range enrollment.Transitions() {
		transition.Sequence = len(log) + 1
		log = append(log, transition)
	}
	r.history[enrollment.ID] = log

	r.enrollments[enrollment.ID] = snapshot(enrollment)
	enrollment.ClearTransitions()
	return nil
}

func (r *MemoryEnrollmentRepository) FindByID(ctx context.Context, id models.ID) (*domain.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.enrollments[id]
	if !ok {
		return nil, nil
	}
	return &stored, nil
}

func (r *MemoryEnrollmentRepository) FindAll(ctx context.Context) ([]*domain.Enrollment, error) {
	return r.filter(func(*domain.Enrollment) bool { return true }), nil
}

func (r *MemoryEnrollmentRepository) FindByStudentID(ctx context.Context, studentID string) ([]*domain.Enrollment, error) {
	return r.filter(func(e *domain.Enrollment) bool { return e.StudentID == studentID }), nil
}

func (r *MemoryEnrollmentRepository) FindByCourseID(ctx context.Context, courseID string) ([]*domain.Enrollment, error) {
	return r.filter(func(e *domain.Enrollment) bool { return e.CourseID == courseID }), nil
}

func (r *MemoryEnrollmentRepository) Delete(ctx context.Context, enrollment *domain.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.enrollments[enrollment.ID]
	if !exists || stored.Version.Value != enrollment.Version.Value {
		return errors.Wrapf(apperrors.ErrConcurrentModification, "enrollment %s changed since version %d",
			enrollment.ID, enrollment.Version.Value)
	}

	delete(r.enrollments, enrollment.ID)
	delete(r.history, enrollment.ID)
	return nil
}

func (r *MemoryEnrollmentRepository) History(ctx context.Context, id models.ID) ([]saga.Transition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]saga.Transition(nil), r.history[id]...), nil
}

func (r *MemoryEnrollmentRepository) filter(keep func(*domain.Enrollment) bool) []*domain.Enrollment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Enrollment, 0, len(r.enrollments))
	for _, stored := range r.enrollments {
		e := stored
		if keep(&e) {
			result = append(result, &e)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamps.CreatedAt.After(result[j].Timestamps.CreatedAt)
	})
	return result
}

// snapshot copies the persisted fields only
func snapshot(e *domain.Enrollment) domain.Enrollment {
	return domain.Enrollment{
		ID:             e.ID,
		StudentID:      e.StudentID,
		CourseID:       e.CourseID,
		EnrollmentDate: e.EnrollmentDate,
		Status:         e.Status,
		SagaState:      e.SagaState,
		FailureReason:  e.FailureReason,
		Timestamps:     e.Timestamps,
		Version:        e.Version,
	}
}

package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	sharedinfra "github.com/campusflow/enrollment-system/shared/infrastructure"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/campusflow/enrollment-system/shared/saga"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ domain.EnrollmentRepository = (*PostgresEnrollmentRepository)(nil)

// PostgresEnrollmentRepository implements EnrollmentRepository using PostgreSQL.
// An enrollment row and its new saga transitions are written in one transaction.
type PostgresEnrollmentRepository struct {
	db      *sqlx.DB
	sagaLog *sharedinfra.PostgresSagaLog
}

// NewPostgresEnrollmentRepository creates a new PostgresEnrollmentRepository
func NewPostgresEnrollmentRepository(db *sqlx.DB) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{
		db:      db,
		sagaLog: sharedinfra.NewPostgresSagaLog(db),
	}
}

// postgresEnrollment represents enrollment in database
type postgresEnrollment struct {
	ID             string    `db:"id"`
	StudentID      string    `db:"student_id"`
	CourseID       string    `db:"course_id"`
	EnrollmentDate time.Time `db:"enrollment_date"`
	Status         string    `db:"status"`
	SagaState      string    `db:"saga_state"`
	FailureReason  string    `db:"failure_reason"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	Version        int       `db:"version"`
}

const selectEnrollment = `
	SELECT id, student_id, course_id, enrollment_date, status, saga_state,
		   failure_reason, created_at, updated_at, version
	FROM enrollments`

// Save inserts a new enrollment or updates it with an optimistic version check
func (r *PostgresEnrollmentRepository) Save(ctx context.Context, enrollment *domain.Enrollment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.Storage(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if enrollment.IsNew() {
		err = r.insertEnrollment(ctx, tx, enrollment)
	} else {
		err = r.updateEnrollment(ctx, tx, enrollment)
	}
	if err != nil {
		return err
	}

	if err := r.sagaLog.Append(ctx, tx, enrollment.Transitions()); err != nil {
		return apperrors.Storage(err, "failed to append saga transitions")
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage(err, "failed to commit enrollment")
	}

	enrollment.ClearTransitions()
	return nil
}

func (r *PostgresEnrollmentRepository) insertEnrollment(ctx context.Context, tx *sqlx.Tx, enrollment *domain.Enrollment) error {
	query := `
		INSERT INTO enrollments (
			id, student_id, course_id, enrollment_date, status, saga_state,
			failure_reason, created_at, updated_at, version
		) VALUES (
			:id, :student_id, :course_id, :enrollment_date, :status, :saga_state,
			:failure_reason, :created_at, :updated_at, :version
		)`

	if _, err := tx.NamedExecContext(ctx, query, r.toPostgres(enrollment)); err != nil {
		return apperrors.Storage(err, "failed to insert enrollment")
	}

	return nil
}

func (r *PostgresEnrollmentRepository) updateEnrollment(ctx context.Context, tx *sqlx.Tx, enrollment *domain.Enrollment) error {
	query := `
		UPDATE enrollments
		SET status = :status, saga_state = :saga_state, failure_reason = :failure_reason,
			updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	result, err := tx.NamedExecContext(ctx, query, map[string]interface{}{
		"id":             enrollment.ID.String(),
		"status":         string(enrollment.Status),
		"saga_state":     enrollment.SagaState.String(),
		"failure_reason": string(enrollment.FailureReason),
		"updated_at":     enrollment.Timestamps.UpdatedAt,
		"version":        enrollment.Version.Value,
		"old_version":    enrollment.Version.Previous(),
	})
	if err != nil {
		return apperrors.Storage(err, "failed to update enrollment")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage(err, "failed to update enrollment")
	}
	if rows == 0 {
		return errors.Wrapf(apperrors.ErrConcurrentModification, "enrollment %s changed since version %d",
			enrollment.ID, enrollment.Version.Previous())
	}

	return nil
}

// FindByID finds an enrollment by ID. A missing enrollment is (nil, nil).
func (r *PostgresEnrollmentRepository) FindByID(ctx context.Context, id models.ID) (*domain.Enrollment, error) {
	var row postgresEnrollment
	err := r.db.GetContext(ctx, &row, selectEnrollment+" WHERE id = $1", id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperrors.Storage(err, "failed to find enrollment")
	}

	return r.toDomain(&row), nil
}

// FindAll returns every enrollment, newest first
func (r *PostgresEnrollmentRepository) FindAll(ctx context.Context) ([]*domain.Enrollment, error) {
	return r.selectMany(ctx, selectEnrollment+" ORDER BY created_at DESC")
}

// FindByStudentID returns the enrollments of one student, newest first
func (r *PostgresEnrollmentRepository) FindByStudentID(ctx context.Context, studentID string) ([]*domain.Enrollment, error) {
	return r.selectMany(ctx, selectEnrollment+" WHERE student_id = $1 ORDER BY created_at DESC", studentID)
}

// FindByCourseID returns the enrollments of one course, newest first
func (r *PostgresEnrollmentRepository) FindByCourseID(ctx context.Context, courseID string) ([]*domain.Enrollment, error) {
	return r.selectMany(ctx, selectEnrollment+" WHERE course_id = $1 ORDER BY created_at DESC", courseID)
}

// Delete removes the saga transitions and then the enrollment row, guarded by
// the version the caller loaded
func (r *PostgresEnrollmentRepository) Delete(ctx context.Context, enrollment *domain.Enrollment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.Storage(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM saga_transitions WHERE enrollment_id = $1", enrollment.ID.String()); err != nil {
		return apperrors.Storage(err, "failed to delete saga transitions")
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM enrollments WHERE id = $1 AND version = $2",
		enrollment.ID.String(), enrollment.Version.Value)
	if err != nil {
		return apperrors.Storage(err, "failed to delete enrollment")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage(err, "failed to delete enrollment")
	}
	if rows == 0 {
		return errors.Wrapf(apperrors.ErrConcurrentModification, "enrollment %s changed since version %d",
			enrollment.ID, enrollment.Version.Value)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage(err, "failed to commit enrollment deletion")
	}
	return nil
}

// History returns the saga transitions of an enrollment
func (r *PostgresEnrollmentRepository) History(ctx context.Context, id models.ID) ([]saga.Transition, error) {
	history, err := r.sagaLog.History(ctx, id.String())
	if err != nil {
		return nil, apperrors.Storage(err, "failed to load saga history")
	}
	return history, nil
}

func (r *PostgresEnrollmentRepository) selectMany(ctx context.Context, query string, args ...interface{}) ([]*domain.Enrollment, error) {
	var rows []postgresEnrollment
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.Storage(err, "failed to list enrollments")
	}

	enrollments := make([]*domain.Enrollment, len(rows))
	for i := range rows {
		enrollments[i] = r.toDomain(&rows[i])
	}
	return enrollments, nil
}

func (r *PostgresEnrollmentRepository) toPostgres(enrollment *domain.Enrollment) *postgresEnrollment {
	return &postgresEnrollment{
		ID:             enrollment.ID.String(),
		StudentID:      enrollment.StudentID,
		CourseID:       enrollment.CourseID,
		EnrollmentDate: enrollment.EnrollmentDate,
		Status:         string(enrollment.Status),
		SagaState:      enrollment.SagaState.String(),
		FailureReason:  string(enrollment.FailureReason),
		CreatedAt:      enrollment.Timestamps.CreatedAt,
		UpdatedAt:      enrollment.Timestamps.UpdatedAt,
		Version:        enrollment.Version.Value,
	}
}

func (r *PostgresEnrollmentRepository) toDomain(row *postgresEnrollment) *domain.Enrollment {
	return &domain.Enrollment{
		ID:             models.ID(row.ID),
		StudentID:      row.StudentID,
		CourseID:       row.CourseID,
		EnrollmentDate: row.EnrollmentDate,
		Status:         domain.EnrollmentStatus(row.Status),
		SagaState:      saga.State(row.SagaState),
		FailureReason:  domain.FailureReason(row.FailureReason),
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Version: models.Version{Value: row.Version},
	}
}

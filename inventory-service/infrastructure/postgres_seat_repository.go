package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/campusflow/enrollment-system/inventory-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/jmoiron/sqlx"
)

var _ domain.SeatRepository = (*PostgresSeatRepository)(nil)

// PostgresSeatRepository implements SeatRepository using PostgreSQL.
// The bounded UPDATE on courses is the only place a seat is taken.
type PostgresSeatRepository struct {
	db *sqlx.DB
}

// NewPostgresSeatRepository creates a new PostgresSeatRepository
func NewPostgresSeatRepository(db *sqlx.DB) *PostgresSeatRepository {
	return &PostgresSeatRepository{db: db}
}

type postgresCourseSeats struct {
	CourseID      string    `db:"course_id"`
	Capacity      int       `db:"capacity"`
	EnrolledCount int       `db:"enrolled_count"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type postgresReservation struct {
	EnrollmentID string    `db:"enrollment_id"`
	StudentID    string    `db:"student_id"`
	CourseID     string    `db:"course_id"`
	Status       string    `db:"status"`
	Reason       string    `db:"reason"`
	CreatedAt    time.Time `db:"created_at"`
}

const selectReservation = `
	SELECT enrollment_id, student_id, course_id, status, reason, created_at
	FROM seat_reservations WHERE enrollment_id = $1`

// Reserve claims the reservation row first, so a concurrent or later
// duplicate of the same enrollment waits on it and then reads its outcome.
func (r *PostgresSeatRepository) Reserve(ctx context.Context, request domain.SeatRequest) (domain.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Reservation{}, apperrors.Storage(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	claimed, err := tx.ExecContext(ctx, `
		INSERT INTO seat_reservations (enrollment_id, student_id, course_id, status, reason, created_at)
		VALUES ($1, $2, $3, $4, '', $5)
		ON CONFLICT (enrollment_id) DO NOTHING`,
		request.EnrollmentID, request.StudentID, request.CourseID, string(domain.ReservationRejected), now,
	)
	if err != nil {
		return domain.Reservation{}, apperrors.Storage(err, "failed to claim reservation")
	}
	if rows, err := claimed.RowsAffected(); err != nil {
		return domain.Reservation{}, apperrors.Storage(err, "failed to claim reservation")
	} else if rows == 0 {
		return r.storedOutcome(ctx, tx, request.EnrollmentID)
	}

	reservation := domain.Reservation{
		EnrollmentID: request.EnrollmentID,
		StudentID:    request.StudentID,
		CourseID:     request.CourseID,
		Status:       domain.ReservationReserved,
		CreatedAt:    now,
	}

	taken, err := tx.ExecContext(ctx, `
		UPDATE courses SET enrolled_count = enrolled_count + 1, updated_at = $2
		WHERE course_id = $1 AND enrolled_count < capacity`,
		request.CourseID, now,
	)
	if err != nil {
		return domain.Reservation{}, apperrors.Storage(err, "failed to take seat")
	}
	rows, err := taken.RowsAffected()
	if err != nil {
		return domain.Reservation{}, apperrors.Storage(err, "failed to take seat")
	}

	if rows == 0 {
		var registered bool
		err := tx.GetContext(ctx, &registered, `SELECT EXISTS (SELECT 1 FROM courses WHERE course_id = $1)`, request.CourseID)
		if err != nil {
			return domain.Reservation{}, apperrors.Storage(err, "failed to look up course")
		}

		reservation.Status = domain.ReservationRejected
		reservation.Reason = domain.RejectionCourseFull
		if !registered {
			reservation.Reason = domain.RejectionCourseNotRegistered
		}
	}

	_, err = tx.ExecContext(ctx, `UPDATE seat_reservations SET status = $2, reason = $3 WHERE enrollment_id = $1`,
		request.EnrollmentID, string(reservation.Status), string(reservation.Reason),
	)
	if err != nil {
		return domain.Reservation{}, apperrors.Storage(err, "failed to record reservation")
	}

	if err := tx.Commit(); err != nil {
		return domain.Reservation{}, apperrors.Storage(err, "failed to commit reservation")
	}

	return reservation, nil
}

func (r *PostgresSeatRepository) storedOutcome(ctx context.Context, tx *sqlx.Tx, enrollmentID string) (domain.Reservation, error) {
	var row postgresReservation
	if err := tx.GetContext(ctx, &row, selectReservation, enrollmentID); err != nil {
		return domain.Reservation{}, apperrors.Storage(err, "failed to read stored reservation")
	}

	reservation := toReservation(&row)
	reservation.Replayed = true
	return reservation, nil
}

// SetCapacity upserts the course. The conditional DO UPDATE leaves the row
// untouched, and returns nothing, when seats already taken exceed the new capacity.
func (r *PostgresSeatRepository) SetCapacity(ctx context.Context, courseID string, capacity int) (*domain.CourseSeats, error) {
	query := `
		INSERT INTO courses (course_id, capacity, enrolled_count, updated_at)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (course_id) DO UPDATE
		SET capacity = EXCLUDED.capacity, updated_at = EXCLUDED.updated_at
		WHERE courses.enrolled_count <= EXCLUDED.capacity
		RETURNING course_id, capacity, enrolled_count, updated_at`

	var row postgresCourseSeats
	err := r.db.GetContext(ctx, &row, query, courseID, capacity, time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.InvalidState("capacity is below the seats already taken for course " + courseID)
		}
		return nil, apperrors.Storage(err, "failed to set capacity")
	}

	return toCourseSeats(&row), nil
}

// FindSeats returns the counter of a course, nil when it is not registered
func (r *PostgresSeatRepository) FindSeats(ctx context.Context, courseID string) (*domain.CourseSeats, error) {
	var row postgresCourseSeats
	err := r.db.GetContext(ctx, &row,
		`SELECT course_id, capacity, enrolled_count, updated_at FROM courses WHERE course_id = $1`, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperrors.Storage(err, "failed to find course seats")
	}

	return toCourseSeats(&row), nil
}

// FindReservation returns the reservation of an enrollment, nil when there is none
func (r *PostgresSeatRepository) FindReservation(ctx context.Context, enrollmentID string) (*domain.Reservation, error) {
	var row postgresReservation
	err := r.db.GetContext(ctx, &row, selectReservation, enrollmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperrors.Storage(err, "failed to find reservation")
	}

	reservation := toReservation(&row)
	return &reservation, nil
}

func toCourseSeats(row *postgresCourseSeats) *domain.CourseSeats {
	return &domain.CourseSeats{
		CourseID:      row.CourseID,
		Capacity:      row.Capacity,
		EnrolledCount: row.EnrolledCount,
		UpdatedAt:     row.UpdatedAt,
	}
}

func toReservation(row *postgresReservation) domain.Reservation {
	return domain.Reservation{
		EnrollmentID: row.EnrollmentID,
		StudentID:    row.StudentID,
		CourseID:     row.CourseID,
		Status:       domain.ReservationStatus(row.Status),
		Reason:       domain.RejectionReason(row.Reason),
		CreatedAt:    row.CreatedAt,
	}
}

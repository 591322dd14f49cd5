package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/campusflow/enrollment-system/payments-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ domain.PaymentRepository = (*PostgresPaymentRepository)(nil)

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL
type PostgresPaymentRepository struct {
	db *sqlx.DB
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(db *sqlx.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// postgresPayment represents payment in database
type postgresPayment struct {
	ID           string     `db:"id"`
	EnrollmentID string     `db:"enrollment_id"`
	StudentID    string     `db:"student_id"`
	CourseID     string     `db:"course_id"`
	StudentName  string     `db:"student_name"`
	CourseName   string     `db:"course_name"`
	Amount       int64      `db:"amount"`
	Currency     string     `db:"currency"`
	Status       string     `db:"status"`
	PaymentDate  *time.Time `db:"payment_date"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	Version      int        `db:"version"`
}

const selectPayment = `
	SELECT id, enrollment_id, student_id, course_id, student_name, course_name,
		   amount, currency, status, payment_date, created_at, updated_at, version
	FROM payments`

// Save saves a payment to the database
func (r *PostgresPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	if payment.IsNew() {
		return r.insertPayment(ctx, payment)
	}
	return r.updatePayment(ctx, payment)
}

// insertPayment inserts a new payment. The unique enrollment_id index turns a
// duplicate enrollment-initiated into ErrPaymentExists.
func (r *PostgresPaymentRepository) insertPayment(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, enrollment_id, student_id, course_id, student_name, course_name,
			amount, currency, status, payment_date, created_at, updated_at, version
		) VALUES (
			:id, :enrollment_id, :student_id, :course_id, :student_name, :course_name,
			:amount, :currency, :status, :payment_date, :created_at, :updated_at, :version
		)
		ON CONFLICT (enrollment_id) DO NOTHING`

	result, err := r.db.NamedExecContext(ctx, query, r.toPostgres(payment))
	if err != nil {
		return apperrors.Storage(err, "failed to insert payment")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage(err, "failed to insert payment")
	}
	if rows == 0 {
		return errors.Wrapf(domain.ErrPaymentExists, "enrollment %s", payment.EnrollmentID)
	}

	return nil
}

// updatePayment updates an existing payment
func (r *PostgresPaymentRepository) updatePayment(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET status = :status, payment_date = :payment_date, updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":           payment.ID.String(),
		"status":       string(payment.Status),
		"payment_date": payment.PaymentDate,
		"updated_at":   payment.Timestamps.UpdatedAt,
		"version":      payment.Version.Value,
		"old_version":  payment.Version.Previous(), // Optimistic locking
	})
	if err != nil {
		return apperrors.Storage(err, "failed to update payment")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage(err, "failed to update payment")
	}
	if rows == 0 {
		return errors.Wrapf(apperrors.ErrConcurrentModification, "payment %s changed since version %d",
			payment.ID, payment.Version.Previous())
	}

	return nil
}

// FindByID finds a payment by ID
func (r *PostgresPaymentRepository) FindByID(ctx context.Context, id models.ID) (*domain.Payment, error) {
	return r.selectOne(ctx, selectPayment+" WHERE id = $1", id.String())
}

// FindByEnrollmentID finds the payment of an enrollment
func (r *PostgresPaymentRepository) FindByEnrollmentID(ctx context.Context, enrollmentID string) (*domain.Payment, error) {
	return r.selectOne(ctx, selectPayment+" WHERE enrollment_id = $1", enrollmentID)
}

// FindAll returns every payment, newest first
func (r *PostgresPaymentRepository) FindAll(ctx context.Context) ([]*domain.Payment, error) {
	var rows []postgresPayment
	err := r.db.SelectContext(ctx, &rows, selectPayment+" ORDER BY created_at DESC")
	if err != nil {
		return nil, apperrors.Storage(err, "failed to list payments")
	}

	payments := make([]*domain.Payment, len(rows))
	for i := range rows {
		payments[i] = r.toDomain(&rows[i])
	}

	return payments, nil
}

func (r *PostgresPaymentRepository) selectOne(ctx context.Context, query string, arg string) (*domain.Payment, error) {
	var row postgresPayment
	err := r.db.GetContext(ctx, &row, query, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Payment not found
		}
		return nil, apperrors.Storage(err, "failed to find payment")
	}

	return r.toDomain(&row), nil
}

// toPostgres converts domain payment to postgres model
func (r *PostgresPaymentRepository) toPostgres(payment *domain.Payment) *postgresPayment {
	return &postgresPayment{
		ID:           payment.ID.String(),
		EnrollmentID: payment.EnrollmentID,
		StudentID:    payment.StudentID,
		CourseID:     payment.CourseID,
		StudentName:  payment.StudentName,
		CourseName:   payment.CourseName,
		Amount:       payment.Amount.Amount,
		Currency:     payment.Amount.Currency,
		Status:       string(payment.Status),
		PaymentDate:  payment.PaymentDate,
		CreatedAt:    payment.Timestamps.CreatedAt,
		UpdatedAt:    payment.Timestamps.UpdatedAt,
		Version:      payment.Version.Value,
	}
}

// toDomain converts postgres model to domain payment
func (r *PostgresPaymentRepository) toDomain(row *postgresPayment) *domain.Payment {
	return &domain.Payment{
		ID:           models.ID(row.ID),
		EnrollmentID: row.EnrollmentID,
		StudentID:    row.StudentID,
		CourseID:     row.CourseID,
		StudentName:  row.StudentName,
		CourseName:   row.CourseName,
		Amount:       models.NewMoney(row.Amount, row.Currency),
		Status:       domain.PaymentStatus(row.Status),
		PaymentDate:  row.PaymentDate,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Version: models.Version{Value: row.Version},
	}
}

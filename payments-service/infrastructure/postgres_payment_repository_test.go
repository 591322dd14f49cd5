package infrastructure

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campusflow/enrollment-system/payments-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentColumns = []string{
	"id", "enrollment_id", "student_id", "course_id", "student_name", "course_name",
	"amount", "currency", "status", "payment_date", "created_at", "updated_at", "version",
}

const enrollmentID = "3b8e4c36-7f3a-4d53-a7a9-0f0f6e2a9d10"

func setupPaymentRepo(t *testing.T) (*PostgresPaymentRepository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewPostgresPaymentRepository(sqlx.NewDb(sqlDB, "postgres")), mock
}

func newPayment(t *testing.T) *domain.Payment {
	t.Helper()
	payment, err := domain.RecordPayment(events.EnrollmentInitiatedData{
		EnrollmentID: enrollmentID,
		StudentID:    "1",
		CourseID:     "101",
		StudentName:  "Ada",
		CourseName:   "Algebra",
	}, models.NewMoney(10000, "USD"))
	require.NoError(t, err)
	return payment
}

func TestPostgresPaymentRepository_SaveNew(t *testing.T) {
	tests := []struct {
		name          string
		rowsAffected  int64
		execErr       error
		expectedError error
	}{
		{name: "inserted", rowsAffected: 1},
		{name: "enrollment already has a payment", rowsAffected: 0, expectedError: domain.ErrPaymentExists},
		{name: "driver error", execErr: sql.ErrConnDone, expectedError: apperrors.ErrStorageFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupPaymentRepo(t)
			payment := newPayment(t)

			exec := mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
				WithArgs(payment.ID.String(), enrollmentID, "1", "101", "Ada", "Algebra",
					int64(10000), "USD", "PENDING", nil, sqlmock.AnyArg(), sqlmock.AnyArg(), 1)
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
			}

			err := repo.Save(context.Background(), payment)

			if tt.expectedError != nil {
				assert.True(t, apperrors.Is(err, tt.expectedError), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresPaymentRepository_SaveUpdate(t *testing.T) {
	repo, mock := setupPaymentRepo(t)
	payment := newPayment(t)
	require.NoError(t, payment.Complete())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments")).
		WithArgs("PAID", sqlmock.AnyArg(), sqlmock.AnyArg(), 2, payment.ID.String(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), payment))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPaymentRepository_SaveStaleVersion(t *testing.T) {
	repo, mock := setupPaymentRepo(t)
	payment := newPayment(t)
	require.NoError(t, payment.Fail())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Save(context.Background(), payment)

	assert.True(t, apperrors.Is(err, apperrors.ErrConcurrentModification))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPaymentRepository_FindByEnrollmentID(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		repo, mock := setupPaymentRepo(t)
		id := models.GenerateUUID()

		mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE enrollment_id = $1")).
			WithArgs(enrollmentID).
			WillReturnRows(sqlmock.NewRows(paymentColumns).AddRow(
				id.String(), enrollmentID, "1", "101", "Ada", "Algebra",
				int64(10000), "USD", "PAID", now, now, now, 2,
			))

		payment, err := repo.FindByEnrollmentID(ctx, enrollmentID)

		require.NoError(t, err)
		require.NotNil(t, payment)
		assert.Equal(t, id, payment.ID)
		assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
		assert.Equal(t, models.NewMoney(10000, "USD"), payment.Amount)
		require.NotNil(t, payment.PaymentDate)
		assert.Equal(t, 2, payment.Version.Value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupPaymentRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE enrollment_id = $1")).
			WithArgs(enrollmentID).
			WillReturnError(sql.ErrNoRows)

		payment, err := repo.FindByEnrollmentID(ctx, enrollmentID)

		assert.NoError(t, err)
		assert.Nil(t, payment)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemoryPaymentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPaymentRepository()

	payment := newPayment(t)
	require.NoError(t, repo.Save(ctx, payment))

	duplicate := newPayment(t)
	assert.ErrorIs(t, repo.Save(ctx, duplicate), domain.ErrPaymentExists)

	stored, err := repo.FindByEnrollmentID(ctx, enrollmentID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, payment.ID, stored.ID)

	require.NoError(t, stored.Complete())
	require.NoError(t, repo.Save(ctx, stored))

	// the caller's copy is now one version behind
	require.NoError(t, payment.Fail())
	assert.True(t, apperrors.Is(repo.Save(ctx, payment), apperrors.ErrConcurrentModification))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.PaymentStatusPaid, all[0].Status)
}

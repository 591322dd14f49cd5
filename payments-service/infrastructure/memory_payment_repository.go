package infrastructure

import (
	"context"
	"sort"
	"sync"

	"github.com/campusflow/enrollment-system/payments-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/pkg/errors"
)

var _ domain.PaymentRepository = (*MemoryPaymentRepository)(nil)

// MemoryPaymentRepository keeps payments in process with the same
// uniqueness and version rules as the postgres table
type MemoryPaymentRepository struct {
	mu           sync.RWMutex
	payments     map[models.ID]domain.Payment
	byEnrollment map[string]models.ID
}

func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{
		payments:     make(map[models.ID]domain.Payment),
		byEnrollment: make(map[string]models.ID),
	}
}

func (r *MemoryPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if payment.IsNew() {
		if _, exists := r.byEnrollment[payment.EnrollmentID]; exists {
			return errors.Wrapf(domain.ErrPaymentExists, "enrollment %s", payment.EnrollmentID)
		}
		r.byEnrollment[payment.EnrollmentID] = payment.ID
	} else if stored, ok := r.payments[payment.ID]; !ok || stored.Version.Value != payment.Version.Previous() {
		return errors.Wrapf(apperrors.ErrConcurrentModification, "payment %s changed since version %d",
			payment.ID, payment.Version.Previous())
	}

	stored := *payment
	stored.ClearEvents()
	r.payments[payment.ID] = stored
	return nil
}

func (r *MemoryPaymentRepository) FindByID(ctx context.Context, id models.ID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	return &stored, nil
}

func (r *MemoryPaymentRepository) FindByEnrollmentID(ctx context.Context, enrollmentID string) (*domain.Payment, error) {
	r.mu.RLock()
	id, ok := r.byEnrollment[enrollmentID]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *MemoryPaymentRepository) FindAll(ctx context.Context) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payments := make([]*domain.Payment, 0, len(r.payments))
	for _, stored := range r.payments {
		p := stored
		payments = append(payments, &p)
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].Timestamps.CreatedAt.After(payments[j].Timestamps.CreatedAt)
	})
	return payments, nil
}

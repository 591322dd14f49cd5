package application

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/campusflow/enrollment-system/inventory-service/infrastructure"
	"github.com/campusflow/enrollment-system/shared/events"
	sharedinfra "github.com/campusflow/enrollment-system/shared/infrastructure"
	"github.com/campusflow/enrollment-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReserveSeat_ConcurrentPaymentsNeverOversell(t *testing.T) {
	const (
		capacity = 7
		students = 50
	)

	ctx := context.Background()
	repo := infrastructure.NewMemorySeatRepository()
	_, err := repo.SetCapacity(ctx, "101", capacity)
	require.NoError(t, err)

	bus := sharedinfra.NewMemoryEventBus(1, zap.NewNop())
	uc := NewReserveSeat(repo, bus, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < students; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			enrollmentID := fmt.Sprintf("e-%d", i)
			event := events.NewEvent(models.ID("p-"+enrollmentID), events.PaymentSuccessEvent, events.SagaStepData{
				EnrollmentID: enrollmentID,
				StudentID:    fmt.Sprintf("%d", i),
				CourseID:     "101",
			}).WithCorrelationID(models.ID(enrollmentID))
			assert.NoError(t, uc.Execute(ctx, event))
		}(i)
	}
	wg.Wait()

	reserved := bus.PublishedOn(events.SeatReservedEvent)
	failed := bus.PublishedOn(events.SeatReservationFailedEvent)
	assert.Len(t, reserved, capacity)
	assert.Len(t, failed, students-capacity)

	seen := map[string]bool{}
	for _, evt := range append(reserved, failed...) {
		id := evt.CorrelationID.String()
		assert.False(t, seen[id], "enrollment %s got two outcomes", id)
		seen[id] = true
	}
	assert.Len(t, seen, students)

	seats, err := repo.FindSeats(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, capacity, seats.EnrolledCount)
	assert.Equal(t, 0, seats.Available())
}

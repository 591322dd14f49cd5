package application

import (
	"context"

	"github.com/campusflow/enrollment-system/notification-service/domain"
	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/campusflow/enrollment-system/shared/logging"
	"github.com/campusflow/enrollment-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SendConfirmation emails the student once the enrollment saga completes.
// Delivery is best effort and never fails the handler.
type SendConfirmation struct {
	notifier domain.Notifier
	logger   *zap.Logger
}

// NewSendConfirmation creates a new SendConfirmation use case
func NewSendConfirmation(notifier domain.Notifier, logger *zap.Logger) *SendConfirmation {
	return &SendConfirmation{
		notifier: notifier,
		logger:   logger,
	}
}

// Execute handles enrollment-confirmed
func (uc *SendConfirmation) Execute(ctx context.Context, event *events.Event) error {
	var data events.EnrollmentConfirmedData
	if err := event.UnmarshalPayload(&data); err != nil {
		return errors.Wrap(err, "failed to decode enrollment-confirmed payload")
	}

	fields := []zap.Field{
		logging.EnrollmentID(data.EnrollmentID),
		zap.String("course_id", data.CourseID),
	}

	if data.Status != events.ConfirmedStatus {
		uc.logger.Info("ignoring enrollment event", append(fields, zap.String("status", data.Status))...)
		return nil
	}

	if data.StudentEmail == "" {
		uc.logger.Warn("cannot send enrollment confirmation, student email is missing", fields...)
		uc.record(ctx, "skipped")
		return nil
	}

	message := domain.ConfirmationMessage(data)
	if err := uc.notifier.Send(ctx, message); err != nil {
		uc.logger.Error("failed to send enrollment confirmation", append(fields, zap.Error(err))...)
		uc.record(ctx, "failed")
		return nil
	}

	uc.logger.Info("enrollment confirmation sent", append(fields, zap.String("subject", message.Subject))...)
	uc.record(ctx, "sent")
	return nil
}

func (uc *SendConfirmation) record(ctx context.Context, outcome string) {
	telemetry.RecordCounter(ctx, "saga_notifications_sent_total", "Enrollment confirmations attempted", 1,
		attribute.String("outcome", outcome),
	)
}

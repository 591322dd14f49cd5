package infrastructure

import (
	"context"

	"github.com/campusflow/enrollment-system/notification-service/domain"
	"go.uber.org/zap"
)

var _ domain.Notifier = (*LogNotifier)(nil)

// LogNotifier writes messages to the log instead of sending them
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, message domain.Message) error {
	n.logger.Info("email",
		zap.String("to", message.To),
		zap.String("subject", message.Subject),
		zap.String("body", message.Body),
	)
	return nil
}

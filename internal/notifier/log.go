package notifier

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier records notifications instead of delivering them. It is
// the fallback when neither a message queue nor an SMTP relay is
// configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, to, subject, body string) error {
	n.logger.Info("notification suppressed, no delivery backend configured",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

package notifier

import (
	"context"
	"encoding/json"

	"github.com/car-service/apiserver/internal/mq"
	"go.uber.org/zap"
)

// NotificationChannel is the queue/topic carrying outbound notifications.
const NotificationChannel = "notifications"

// QueueNotifier publishes notifications to a message queue instead of
// delivering them inline. A separate notifier worker consumes the queue,
// keeping delivery latency out of the request path.
type QueueNotifier struct {
	queue *mq.MQ
}

func NewQueueNotifier(queue *mq.MQ) *QueueNotifier {
	return &QueueNotifier{queue: queue}
}

func (n *QueueNotifier) Notify(ctx context.Context, to, subject, body string) error {
	data, err := json.Marshal(Notification{To: to, Subject: subject, Body: body})
	if err != nil {
		return err
	}
	_, err = n.queue.Publish(ctx, data, nil)
	return err
}

// Worker consumes queued notifications and delivers them through the
// wrapped sender. Malformed messages are dropped with a log line so they
// do not wedge the queue; delivery failures are nacked for redelivery.
type Worker struct {
	queue  *mq.MQ
	sender Notifier
	logger *zap.Logger
}

func NewWorker(queue *mq.MQ, sender Notifier, logger *zap.Logger) *Worker {
	return &Worker{queue: queue, sender: sender, logger: logger}
}

// Run blocks consuming the notification channel until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	return w.queue.Subscribe(ctx, func(ctx context.Context, msg mq.Message) error {
		var notification Notification
		if err := json.Unmarshal(msg.Data, &notification); err != nil {
			w.logger.Warn("dropping malformed notification",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			return nil
		}
		if err := w.sender.Notify(ctx, notification.To, notification.Subject, notification.Body); err != nil {
			w.logger.Error("notification delivery failed",
				zap.String("to", notification.To),
				zap.Error(err))
			return err
		}
		w.logger.Info("notification delivered", zap.String("to", notification.To))
		return nil
	})
}

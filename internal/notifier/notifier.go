package notifier

import "context"

// Notifier delivers a message to a destination address. Callers treat
// delivery as best-effort: errors are logged by the caller, never
// propagated to the request that triggered the notification.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

// Notification is the payload carried over the queue between the API
// server and the notifier worker.
type Notification struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

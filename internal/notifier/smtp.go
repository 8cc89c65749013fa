package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/car-service/apiserver/config"
)

// SMTPNotifier sends plain-text email through an SMTP relay with
// STARTTLS and plain authentication.
type SMTPNotifier struct {
	cfg config.SMTPConfig
}

func NewSMTPNotifier(cfg config.SMTPConfig) (*SMTPNotifier, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("smtp server is required")
	}
	if strings.TrimSpace(cfg.Username) == "" {
		return nil, errors.New("smtp username is required")
	}
	return &SMTPNotifier{cfg: cfg}, nil
}

// Notify sends one email. The context deadline is not honored by
// net/smtp itself, so callers should keep their own timeout around the
// call; a canceled context short-circuits before dialing.
func (n *SMTPNotifier) Notify(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := mail.Address{Name: n.cfg.From, Address: n.cfg.Username}
	headers := []string{
		"From: " + from.String(),
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	return smtp.SendMail(addr, auth, n.cfg.Username, []string{to}, []byte(message))
}

// Package notify delivers one-time passcodes. Delivery is best-effort from
// the signup path: a failed send is logged, never surfaced, and never rolls
// back the issued token.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/gingerhq/ginger-backend/internal/config"
	"gopkg.in/gomail.v2"
)

type Notifier interface {
	SendOtp(email, code string) error
}

// FromConfig picks the SMTP notifier when mail settings are present and the
// log notifier otherwise (local/demo runs).
func FromConfig(cfg *config.Config) Notifier {
	if cfg.MailHost == "" {
		return LogNotifier{}
	}
	return &MailNotifier{
		host:     cfg.MailHost,
		port:     cfg.MailPort,
		sender:   cfg.MailSender,
		password: cfg.MailPassword,
	}
}

// LogNotifier writes the code to the log instead of sending it.
type LogNotifier struct{}

func (LogNotifier) SendOtp(email, code string) error {
	slog.Info("otp issued", "email", email, "code", code)
	return nil
}

// MailNotifier sends the code over SMTP.
type MailNotifier struct {
	host     string
	port     int
	sender   string
	password string
}

func (n *MailNotifier) SendOtp(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.sender)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your GINGER verification code")
	m.SetBody("text/plain", fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code))

	d := gomail.NewDialer(n.host, n.port, n.sender, n.password)
	return d.DialAndSend(m)
}

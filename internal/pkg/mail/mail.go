package mail

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer sends a single email. Implementations must be safe for
// concurrent use; callers that do not care about the outcome should go
// through Dispatch.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Dispatch sends in the background and only logs a failure. Order
// placement and similar flows must not roll back because a provider
// bounced (see the handlers that call this).
func Dispatch(m Mailer, to, subject, htmlBody string) {
	go func() {
		if err := m.Send(context.Background(), to, subject, htmlBody); err != nil {
			log.Printf("mail: send to %s failed: %v", to, err)
		}
	}()
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPMailer delivers over plain SMTP with AUTH.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg.String()))
}

// NopMailer is used when SMTP is not configured; sends are logged and
// dropped so flows that email as a side effect still work locally.
type NopMailer struct{}

func (NopMailer) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("mail: smtp not configured, dropping %q to %s", subject, to)
	return nil
}

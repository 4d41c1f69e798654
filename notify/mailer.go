// Package notify runs named wall-clock jobs that ask the chat orchestrator
// for a message and relay it over email. The notifier is best-effort by
// design: its failures are logged, never propagated.
package notify

import (
	"gopkg.in/gomail.v2"
)

// Mailer delivers one email.
type Mailer interface {
	Send(subject, body, recipient string) error
}

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer configures a mailer for the given relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(subject, body, recipient string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

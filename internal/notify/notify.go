// Package notify delivers confirmation codes out-of-band. Delivery is an
// external collaborator, so everything hides behind CodeSender.
package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

type CodeSender interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// SMTPSender mails the code through a plain SMTP relay.
type SMTPSender struct {
	Addr string // host:port
	From string
}

func NewSMTPSender(host string, port int, from string) *SMTPSender {
	return &SMTPSender{
		Addr: fmt.Sprintf("%s:%d", host, port),
		From: from,
	}
}

func (s *SMTPSender) SendConfirmationCode(_ context.Context, email, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Take your token\r\n\r\n%s\r\n",
		s.From, email, code,
	)
	if err := smtp.SendMail(s.Addr, nil, s.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

// LogSender writes the code to the log instead of sending mail. Development
// fallback when no SMTP host is configured.
type LogSender struct{}

func (LogSender) SendConfirmationCode(_ context.Context, email, code string) error {
	zap.L().Info("confirmation code (dev delivery)",
		zap.String("email", email),
		zap.String("code", code),
	)
	return nil
}

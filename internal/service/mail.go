package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers password reset codes. Delivery is best effort.
type Mailer interface {
	SendResetCode(ctx context.Context, to, code string) error
}

type SMTPConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	SenderAddress string
}

type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPMailer(c SMTPConfig) *SMTPMailer {
	from := c.SenderAddress
	if from == "" {
		from = c.Username
	}

	return &SMTPMailer{
		from:   from,
		dialer: gomail.NewDialer(c.Host, c.Port, c.Username, c.Password),
	}
}

func (m *SMTPMailer) SendResetCode(ctx context.Context, to, code string) error {
	if to == "" || to == m.from {
		return errors.New("invalid email address")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your password reset code")
	msg.SetBody("text/html", fmt.Sprintf("Your password reset code is <b>%v</b>.\n\nThis code will expire in 15 minutes", code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail, %w", err)
	}

	return nil
}

// LogMailer writes codes to the log instead of sending them. Used when no
// SMTP host is configured.
type LogMailer struct{}

func (LogMailer) SendResetCode(_ context.Context, to, code string) error {
	zap.L().Info("Password reset code issued", zap.String("to", to), zap.String("code", code))
	return nil
}

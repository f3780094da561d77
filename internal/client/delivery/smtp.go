package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string `env:"HOST" json:"host"`
	Port     int    `env:"PORT" json:"port"`
	Username string `env:"USERNAME" json:"username"`
	Password string `env:"PASSWORD" json:"password"`
	From     string `env:"FROM" json:"from"`
}

// Enabled reports whether a relay host has been configured at all.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

func (c SMTPConfig) validate() error {
	if c.Host == "" {
		return errors.New("missing SMTP host")
	}
	if c.Port == 0 {
		return errors.New("missing SMTP port")
	}
	if c.From == "" {
		return errors.New("missing SMTP from address")
	}
	return nil
}

// SMTPConfigFromEnv reads IGNITE_SMTP_* variables.
func SMTPConfigFromEnv() (SMTPConfig, error) {
	return env.ParseAsWithOptions[SMTPConfig](env.Options{Prefix: "IGNITE_SMTP_"})
}

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender mails codes through an SMTP relay.
type SMTPSender struct {
	from   string
	dialer mailDialer
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &SMTPSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

func (s *SMTPSender) SendCode(ctx context.Context, email, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your Ignite verification code")
	msg.SetBody("text/plain", fmt.Sprintf("Your verification code is %s.\n", code))

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp delivery to %s: %w", email, err)
	}
	return nil
}

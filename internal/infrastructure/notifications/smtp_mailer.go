package notifications

import (
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shubham23mamgain/bringit/internal/logging"
	"github.com/wneessen/go-mail"
)

// SMTPConfig holds mail relay settings; an empty Host selects mock mode
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends plain-text mail through an SMTP relay
type SMTPMailer struct {
	cfg    SMTPConfig
	send   func(*mail.Msg) error
	logger log.Logger
}

// NewSMTPMailer creates a new mailer
func NewSMTPMailer(cfg SMTPConfig, logger log.Logger) *SMTPMailer {
	m := &SMTPMailer{
		cfg:    cfg,
		logger: logging.Component(logger, "mail"),
	}
	m.send = m.dialAndSend
	return m
}

// SendEmail delivers a plain-text message
func (m *SMTPMailer) SendEmail(to, subject, body string) error {
	if m.cfg.Host == "" {
		_ = level.Info(m.logger).Log("msg", "mock email", "to", to, "subject", subject, "body", body)
		return nil
	}

	msg, err := m.buildMessage(to, subject, body)
	if err != nil {
		return err
	}
	if err := m.send(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(stripCRLF(subject))
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (m *SMTPMailer) dialAndSend(msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}

func stripCRLF(s string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(s)
}

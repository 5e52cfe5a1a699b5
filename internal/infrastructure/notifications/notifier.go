package notifications

import (
	"github.com/shubham23mamgain/bringit/domain"
)

// SMSSender delivers text messages
type SMSSender interface {
	SendSMS(to, message string) error
}

// EmailSender delivers mail
type EmailSender interface {
	SendEmail(to, subject, body string) error
}

// Notifier implements domain.NotificationService over one SMS and one mail
// transport
type Notifier struct {
	sms  SMSSender
	mail EmailSender
}

// NewNotifier creates a new notification service
func NewNotifier(sms SMSSender, mail EmailSender) domain.NotificationService {
	return &Notifier{sms: sms, mail: mail}
}

// SendSMS implements domain.NotificationService
func (n *Notifier) SendSMS(to, message string) error {
	return n.sms.SendSMS(to, message)
}

// SendEmail implements domain.NotificationService
func (n *Notifier) SendEmail(to, subject, body string) error {
	return n.mail.SendEmail(to, subject, body)
}

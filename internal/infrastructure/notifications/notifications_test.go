package notifications

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/wneessen/go-mail"
)

func TestTwilioSMSSender_MockMode(t *testing.T) {
	var buf bytes.Buffer
	sender := NewTwilioSMSSender(TwilioConfig{}, log.NewLogfmtLogger(&buf))

	require.NoError(t, sender.SendSMS("+15550001", "hello"))
	assert.Contains(t, buf.String(), "mock sms")
	assert.Contains(t, buf.String(), "+15550001")
}

func TestTwilioSMSSender_Send(t *testing.T) {
	tests := []struct {
		name    string
		apiErr  error
		wantErr bool
	}{
		{name: "delivered"},
		{name: "api failure", apiErr: errors.New("boom"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := NewTwilioSMSSender(TwilioConfig{AccountSID: "AC1", AuthToken: "t", FromNumber: "+15550000"}, log.NewNopLogger())
			var got *twilioApi.CreateMessageParams
			sender.createMessage = func(p *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
				got = p
				return &twilioApi.ApiV2010Message{}, tt.apiErr
			}

			err := sender.SendSMS("+15550001", "hello")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, got)
			assert.Equal(t, "+15550001", *got.To)
			assert.Equal(t, "+15550000", *got.From)
			assert.Equal(t, "hello", *got.Body)
		})
	}
}

func TestSMTPMailer_MockMode(t *testing.T) {
	var buf bytes.Buffer
	mailer := NewSMTPMailer(SMTPConfig{}, log.NewLogfmtLogger(&buf))

	require.NoError(t, mailer.SendEmail("ada@example.com", "Reset", "link"))
	assert.Contains(t, buf.String(), "mock email")
}

func TestSMTPMailer_Send(t *testing.T) {
	mailer := NewSMTPMailer(SMTPConfig{Host: "mail.local", Port: 2525, Username: "u", Password: "p", From: "shop@example.com"}, log.NewNopLogger())

	var sent *mail.Msg
	mailer.send = func(msg *mail.Msg) error {
		sent = msg
		return nil
	}

	require.NoError(t, mailer.SendEmail("ada@example.com", "Reset\r\nBcc: x@y", "click here"))
	require.NotNil(t, sent)

	rcpts, err := sent.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"ada@example.com"}, rcpts)
	assert.Equal(t, []string{"Reset Bcc: x@y"}, sent.GetGenHeader(mail.HeaderSubject))

	var raw bytes.Buffer
	_, err = sent.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "click here")
	assert.NotContains(t, raw.String(), "\r\nBcc:")

	mailer.send = func(*mail.Msg) error { return errors.New("refused") }
	assert.Error(t, mailer.SendEmail("ada@example.com", "s", "b"))
}

func TestSMTPMailer_InvalidRecipient(t *testing.T) {
	mailer := NewSMTPMailer(SMTPConfig{Host: "mail.local", Port: 2525, From: "shop@example.com"}, log.NewNopLogger())
	mailer.send = func(*mail.Msg) error {
		t.Fatal("message must not be sent")
		return nil
	}

	assert.Error(t, mailer.SendEmail("not an address", "s", "b"))
}

type recordingSender struct {
	sms, mail []string
}

func (r *recordingSender) SendSMS(to, _ string) error      { r.sms = append(r.sms, to); return nil }
func (r *recordingSender) SendEmail(to, _, _ string) error { r.mail = append(r.mail, to); return nil }

func TestNotifierRoutes(t *testing.T) {
	rec := &recordingSender{}
	n := NewNotifier(rec, rec)

	require.NoError(t, n.SendSMS("+1", "m"))
	require.NoError(t, n.SendEmail("a@b", "s", "b"))
	assert.Equal(t, []string{"+1"}, rec.sms)
	assert.Equal(t, []string{"a@b"}, rec.mail)
}

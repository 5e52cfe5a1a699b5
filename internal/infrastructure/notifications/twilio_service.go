package notifications

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shubham23mamgain/bringit/internal/logging"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioConfig holds SMS credentials; an empty FromNumber selects mock mode
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// TwilioSMSSender sends SMS through the Twilio REST API
type TwilioSMSSender struct {
	createMessage func(*twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
	fromNumber    string
	logger        log.Logger
}

// NewTwilioSMSSender creates a new Twilio SMS sender
func NewTwilioSMSSender(cfg TwilioConfig, logger log.Logger) *TwilioSMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioSMSSender{
		createMessage: client.Api.CreateMessage,
		fromNumber:    cfg.FromNumber,
		logger:        logging.Component(logger, "sms"),
	}
}

// SendSMS delivers message to the given number
func (t *TwilioSMSSender) SendSMS(to, message string) error {
	// If credentials are not configured, log instead of sending
	if t.fromNumber == "" {
		_ = level.Info(t.logger).Log("msg", "mock sms", "to", to, "body", message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.createMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

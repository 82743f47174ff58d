package services

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/config"
	"github.com/talentbridge/command-center-backend/errs"
	"github.com/talentbridge/command-center-backend/models"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// smsAPI is the slice of the Twilio client the sender needs.
type smsAPI interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SMSMessage is one personalized outbound text.
type SMSMessage struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// SMSSender fans out texts through Twilio. It mirrors the mailer's bulk
// shape: per-recipient attempts, tally result, audit row per attempt.
type SMSSender struct {
	api   smsAPI
	from  string
	audit NotificationAuditor
}

// NewSMSSender builds an SMSSender from config. Missing Twilio credentials
// leave the sender disabled rather than failing startup.
func NewSMSSender(cfg map[string]string, audit NotificationAuditor) *SMSSender {
	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(cfg, "TWILIO_FROM_NUMBER", "")
	if sid == "" || token == "" || from == "" {
		return &SMSSender{audit: audit}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return &SMSSender{
		api:   client.Api,
		from:  from,
		audit: audit,
	}
}

// Enabled reports whether Twilio credentials were configured.
func (s *SMSSender) Enabled() bool {
	return s.api != nil
}

// SendBulk delivers one text per message and returns the tally.
func (s *SMSSender) SendBulk(kind string, messages []SMSMessage) (BulkResult, error) {
	if !s.Enabled() {
		return BulkResult{}, errs.NewSMSNotConfiguredError("TWILIO_ACCOUNT_SID")
	}

	result := BulkResult{Errors: []string{}}
	for _, message := range messages {
		params := &openapi.CreateMessageParams{}
		params.SetTo(message.To)
		params.SetFrom(s.from)
		params.SetBody(message.Body)

		_, err := s.api.CreateMessage(params)

		notification := &models.Notification{
			Recipient: message.To,
			Channel:   models.ChannelSMS,
			Kind:      kind,
			Status:    models.DeliverySent,
		}
		if err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", message.To, err))
			notification.Status = models.DeliveryFailed
			msg := err.Error()
			notification.Error = &msg
			log.Warn().Err(err).Str("recipient", message.To).Str("kind", kind).Msg("sms delivery failed")
		} else {
			result.SuccessCount++
		}
		if s.audit != nil {
			if auditErr := s.audit.Add(notification); auditErr != nil {
				log.Warn().Err(auditErr).Str("recipient", message.To).Msg("failed to record notification audit row")
			}
		}
	}
	return result, nil
}

package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/config"
	"github.com/talentbridge/command-center-backend/errs"
	"github.com/talentbridge/command-center-backend/models"
)

const resendBaseURL = "https://api.resend.com"

// ResendEmailRequest represents the request payload for the Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from the Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from the Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ApprovalRecipient is one student in a profile-approval dispatch.
type ApprovalRecipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RejectionRecipient is one student in a profile-rejection dispatch.
type RejectionRecipient struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Reasons []string `json:"reasons"`
}

// BulkResult is the delivery tally of a bulk dispatch. Individual failures
// are folded into the tally rather than aborting the batch.
type BulkResult struct {
	SuccessCount int      `json:"successCount"`
	FailedCount  int      `json:"failedCount"`
	Errors       []string `json:"errors"`
}

// NotificationAuditor records one audit row per send attempt.
type NotificationAuditor interface {
	Add(notification *models.Notification) error
}

// Mailer sends email through the Resend API. BaseURL is a field so tests
// can point it at a local server.
type Mailer struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
	audit   NotificationAuditor
}

// NewMailer builds a Mailer from config. A mailer with missing credentials
// is still returned; sends fail with a configuration error.
func NewMailer(cfg map[string]string, audit NotificationAuditor) *Mailer {
	return &Mailer{
		apiKey:  config.GetString(cfg, "RESEND_API_KEY", ""),
		from:    config.GetString(cfg, "RESEND_FROM_EMAIL", ""),
		baseURL: config.GetString(cfg, "RESEND_BASE_URL", resendBaseURL),
		client:  &http.Client{},
		audit:   audit,
	}
}

// ConfigStatus reports whether outbound email is usable.
func (m *Mailer) ConfigStatus() error {
	if m.apiKey == "" {
		return errs.NewEmailNotConfiguredError("RESEND_API_KEY")
	}
	if m.from == "" {
		return errs.NewEmailNotConfiguredError("RESEND_FROM_EMAIL")
	}
	return nil
}

// SendEmail sends a single email via the Resend API.
func (m *Mailer) SendEmail(subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if err := m.ConfigStatus(); err != nil {
		return err
	}

	payload := ResendEmailRequest{
		From:    m.from,
		To:      recipients,
		Subject: subject,
		Html:    body,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}

// SendProfileApprovals delivers one approval email per recipient and
// returns the tally. A single failed delivery never aborts the batch.
func (m *Mailer) SendProfileApprovals(recipients []ApprovalRecipient) BulkResult {
	result := BulkResult{Errors: []string{}}
	for _, recipient := range recipients {
		subject := "Your profile has been approved"
		body := approvalBody(recipient.Name)
		err := m.SendEmail(subject, body, []string{recipient.Email})
		m.tally(&result, "profile_approval", recipient.Email, subject, err)
	}
	return result
}

// SendProfileRejections delivers one rejection email per recipient, listing
// the review reasons, and returns the tally.
func (m *Mailer) SendProfileRejections(recipients []RejectionRecipient) BulkResult {
	result := BulkResult{Errors: []string{}}
	for _, recipient := range recipients {
		subject := "Update on your profile review"
		body := rejectionBody(recipient.Name, recipient.Reasons)
		err := m.SendEmail(subject, body, []string{recipient.Email})
		m.tally(&result, "profile_rejection", recipient.Email, subject, err)
	}
	return result
}

func (m *Mailer) tally(result *BulkResult, kind, recipient, subject string, sendErr error) {
	notification := &models.Notification{
		Recipient: recipient,
		Channel:   models.ChannelEmail,
		Kind:      kind,
		Subject:   subject,
		Status:    models.DeliverySent,
	}
	if sendErr != nil {
		result.FailedCount++
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", recipient, sendErr))
		notification.Status = models.DeliveryFailed
		msg := sendErr.Error()
		notification.Error = &msg
		log.Warn().Err(sendErr).Str("recipient", recipient).Str("kind", kind).Msg("email delivery failed")
	} else {
		result.SuccessCount++
	}
	if m.audit != nil {
		if err := m.audit.Add(notification); err != nil {
			log.Warn().Err(err).Str("recipient", recipient).Msg("failed to record notification audit row")
		}
	}
}

func approvalBody(name string) string {
	display := html.EscapeString(name)
	if display == "" {
		display = "there"
	}
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>Great news: your profile has been approved. Employers in the program can
now see your profile and you will start receiving match suggestions.</p>
<p>— The Command Center team</p>`, display)
}

func rejectionBody(name string, reasons []string) string {
	display := html.EscapeString(name)
	if display == "" {
		display = "there"
	}
	var items strings.Builder
	for _, reason := range reasons {
		items.WriteString("<li>" + html.EscapeString(reason) + "</li>")
	}
	reasonBlock := ""
	if items.Len() > 0 {
		reasonBlock = fmt.Sprintf("<p>The review noted the following:</p><ul>%s</ul>", items.String())
	}
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>Thank you for submitting your profile. After review we are not able to
approve it in its current form.</p>
%s
<p>You can update your profile and resubmit at any time.</p>
<p>— The Command Center team</p>`, display, reasonBlock)
}

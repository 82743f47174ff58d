package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/errs"
	"github.com/talentbridge/command-center-backend/services"
)

// Notification dispatch types accepted by sendNotifications.
const (
	dispatchProfileApproval  = "profile_approval"
	dispatchProfileRejection = "profile_rejection"
)

// bulkMailer is the slice of the mailer the handler depends on.
type bulkMailer interface {
	ConfigStatus() error
	SendProfileApprovals(recipients []services.ApprovalRecipient) services.BulkResult
	SendProfileRejections(recipients []services.RejectionRecipient) services.BulkResult
}

// bulkTexter is the slice of the SMS sender the handler depends on.
type bulkTexter interface {
	Enabled() bool
	SendBulk(kind string, messages []services.SMSMessage) (services.BulkResult, error)
}

type emailHandler struct {
	responder Responder
	logger    zerolog.Logger
	mailer    bulkMailer
	sms       bulkTexter
}

func newEmailHandler(mailer *services.Mailer, smsSender *services.SMSSender) emailHandler {
	logger := log.With().Str("handlerName", "emailHandler").Logger()

	return emailHandler{
		responder: NewResponder(logger),
		logger:    logger,
		mailer:    mailer,
		sms:       smsSender,
	}
}

// dispatchRequest defers the students payload so its shape can be checked
// before anything is sent.
type dispatchRequest struct {
	Type     string          `json:"type"`
	Students json.RawMessage `json:"students"`
}

// DispatchResponse reports an attempted bulk dispatch.
type DispatchResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Result  services.BulkResult `json:"result"`
}

// sendNotifications godoc
//
//	@Summary		Bulk notification dispatch
//	@Description	Sends a templated email to every student in the payload
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	DispatchResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/send-email [post]
func (h emailHandler) sendNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req dispatchRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode dispatch request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		// All payload validation happens before the first send attempt.
		if req.Type == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("type"))
			return
		}
		if len(req.Students) == 0 || !isJSONArray(req.Students) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("students", "must be an array"))
			return
		}

		var result services.BulkResult
		switch req.Type {
		case dispatchProfileApproval:
			var recipients []services.ApprovalRecipient
			if err := json.Unmarshal(req.Students, &recipients); err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("students", "malformed recipient list"))
				return
			}
			result = h.mailer.SendProfileApprovals(recipients)
		case dispatchProfileRejection:
			var recipients []services.RejectionRecipient
			if err := json.Unmarshal(req.Students, &recipients); err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("students", "malformed recipient list"))
				return
			}
			result = h.mailer.SendProfileRejections(recipients)
		default:
			h.responder.WriteError(w, errs.NewInvalidFieldError("type", "unknown notification type"))
			return
		}

		// Per-recipient failures are part of the tally; the dispatch itself
		// succeeded once every send was attempted.
		h.responder.WriteJSON(w, DispatchResponse{
			Success: true,
			Message: fmt.Sprintf("dispatch attempted for %d recipients", result.SuccessCount+result.FailedCount),
			Result:  result,
		})
	}
}

// testConfiguration godoc
//
//	@Summary		Outbound email configuration check
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/send-email [get]
func (h emailHandler) testConfiguration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.mailer.ConfigStatus(); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"message": "email service is configured",
		})
	}
}

type smsDispatchRequest struct {
	Kind     string                `json:"kind"`
	Messages []services.SMSMessage `json:"messages"`
}

func (h emailHandler) sendSMS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req smsDispatchRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode sms dispatch body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Kind == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("kind"))
			return
		}
		if len(req.Messages) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("messages"))
			return
		}

		result, err := h.sms.SendBulk(req.Kind, req.Messages)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, DispatchResponse{
			Success: true,
			Message: fmt.Sprintf("dispatch attempted for %d recipients", result.SuccessCount+result.FailedCount),
			Result:  result,
		})
	}
}

// isJSONArray reports whether raw starts a JSON array, ignoring leading
// whitespace.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/config"
)

type settingsHandler struct {
	responder Responder
	logger    zerolog.Logger
	deps      handlerDeps
}

func newSettingsHandler(deps handlerDeps) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()

	return settingsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		deps:      deps,
	}
}

// IntegrationStatus reports whether an outbound integration is usable,
// without exposing any of its credentials.
type IntegrationStatus struct {
	Configured bool   `json:"configured"`
	Detail     string `json:"detail,omitempty"`
}

// SettingsResponse is the admin settings view. It carries only redacted
// integration state and non-secret runtime values.
type SettingsResponse struct {
	Environment  string                       `json:"environment"`
	StartupTime  time.Time                    `json:"startup_time"`
	FromAddress  string                       `json:"from_address,omitempty"`
	Integrations map[string]IntegrationStatus `json:"integrations"`
}

func (h settingsHandler) getSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := IntegrationStatus{Configured: true}
		if err := h.deps.mailer.ConfigStatus(); err != nil {
			email = IntegrationStatus{Configured: false, Detail: err.Error()}
		}

		sms := IntegrationStatus{Configured: h.deps.smsSender.Enabled()}
		if !sms.Configured {
			sms.Detail = "twilio credentials not set"
		}

		storage := IntegrationStatus{Configured: h.deps.documentStore.Enabled()}
		if !storage.Configured {
			storage.Detail = "documents bucket not set"
		}

		ai := IntegrationStatus{Configured: h.deps.aiService.Enabled()}
		if !ai.Configured {
			ai.Detail = "openai api key not set"
		}

		h.responder.WriteJSON(w, SettingsResponse{
			Environment: config.GetString(h.deps.config, "ENVIRONMENT", "development"),
			StartupTime: h.deps.startupTime,
			FromAddress: config.GetString(h.deps.config, "RESEND_FROM_EMAIL", ""),
			Integrations: map[string]IntegrationStatus{
				"email":   email,
				"sms":     sms,
				"storage": storage,
				"ai":      ai,
			},
		})
	}
}

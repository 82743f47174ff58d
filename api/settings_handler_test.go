package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/talentbridge/command-center-backend/services"
)

func TestGetSettingsReportsConfiguredFromAddress(t *testing.T) {
	cfg := map[string]string{
		"ENVIRONMENT":       "production",
		"RESEND_API_KEY":    "test-key",
		"RESEND_FROM_EMAIL": "Command Center <team@example.com>",
	}

	documentStore, err := services.NewDocumentStore(context.Background(), map[string]string{})
	if err != nil {
		t.Fatalf("building document store: %v", err)
	}
	aiService, err := services.NewAIService(map[string]string{}, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("building ai service: %v", err)
	}

	handler := newSettingsHandler(handlerDeps{
		mailer:        services.NewMailer(cfg, nil),
		smsSender:     services.NewSMSSender(map[string]string{}, nil),
		documentStore: documentStore,
		aiService:     aiService,
		config:        cfg,
		startupTime:   time.Now(),
	})

	recorder := httptest.NewRecorder()
	handler.getSettings()(recorder, httptest.NewRequest(http.MethodGet, "/settings", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}

	var settings SettingsResponse
	if err := json.NewDecoder(recorder.Body).Decode(&settings); err != nil {
		t.Fatalf("decoding settings: %v", err)
	}
	if settings.FromAddress != cfg["RESEND_FROM_EMAIL"] {
		t.Errorf("from address = %q, want %q", settings.FromAddress, cfg["RESEND_FROM_EMAIL"])
	}
	if settings.Environment != "production" {
		t.Errorf("environment = %q, want production", settings.Environment)
	}
	if !settings.Integrations["email"].Configured {
		t.Error("email integration reported unconfigured despite credentials")
	}
	for _, name := range []string{"sms", "storage", "ai"} {
		if settings.Integrations[name].Configured {
			t.Errorf("%s integration reported configured with no credentials", name)
		}
	}
}

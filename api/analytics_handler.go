package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/database"
	"github.com/talentbridge/command-center-backend/errs"
	"github.com/talentbridge/command-center-backend/models"
)

type analyticsHandler struct {
	responder     Responder
	logger        zerolog.Logger
	analyticsRepo *database.AnalyticsRepo
}

func newAnalyticsHandler(analyticsRepo *database.AnalyticsRepo) analyticsHandler {
	logger := log.With().Str("handlerName", "analyticsHandler").Logger()

	return analyticsHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		analyticsRepo: analyticsRepo,
	}
}

// AnalyticsOverview bundles event totals per type with the most recent raw
// events.
type AnalyticsOverview struct {
	EventCounts  map[string]int64         `json:"event_counts"`
	RecentEvents []*models.AnalyticsEvent `json:"recent_events"`
}

func (h analyticsHandler) getOverview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview := AnalyticsOverview{
			EventCounts:  h.analyticsRepo.CountByType(),
			RecentEvents: h.analyticsRepo.FindRecent(queryLimit(r, defaultListLimit)),
		}
		if overview.EventCounts == nil {
			overview.EventCounts = map[string]int64{}
		}
		if overview.RecentEvents == nil {
			overview.RecentEvents = []*models.AnalyticsEvent{}
		}
		h.responder.WriteJSON(w, overview)
	}
}

func (h analyticsHandler) recordEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var event models.AnalyticsEvent
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&event); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode analytics event body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if event.EventType == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("event_type"))
			return
		}

		// Attribute the event to the caller unless one was supplied
		// explicitly.
		if event.OrganizerID == nil {
			if access, ok := AccessFromCtx(r.Context()); ok {
				id := access.OrganizerID
				event.OrganizerID = &id
			}
		}

		if err := h.analyticsRepo.Add(&event); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("record analytics event", "analytics event", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, event)
	}
}

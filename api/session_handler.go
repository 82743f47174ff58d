package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/config"
	"github.com/talentbridge/command-center-backend/database"
	"github.com/talentbridge/command-center-backend/errs"
	"github.com/talentbridge/command-center-backend/models"
)

// sessionCookieTTL bounds the browser cookie, not the JWT inside it; the
// token carries its own expiry.
const sessionCookieTTL = 7 * 24 * time.Hour

// sessionOrganizers is the slice of the organizer repo the session handler
// needs.
type sessionOrganizers interface {
	FindByAuthSubject(subject string) (*models.Organizer, error)
	FindByID(id uuid.UUID) (*models.Organizer, error)
	TouchLastLogin(id uuid.UUID) error
}

type sessionHandler struct {
	responder  Responder
	logger     zerolog.Logger
	secret     []byte
	secureOnly bool
	organizers sessionOrganizers
}

func newSessionHandler(cfg map[string]string, organizerRepo *database.OrganizerRepo) sessionHandler {
	logger := log.With().Str("handlerName", "sessionHandler").Logger()

	return sessionHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		secret:     []byte(config.GetString(cfg, "AUTH_JWT_SECRET", "")),
		secureOnly: config.GetString(cfg, "ENVIRONMENT", "development") != "development",
		organizers: organizerRepo,
	}
}

// callback receives the auth backend's redirect, exchanges the token for a
// session cookie, and lands the user on the dashboard. Any failure drops
// the user back on the login page rather than rendering an error.
func (h sessionHandler) callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("access_token")
		if token == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		subject, err := verifySubject(h.secret, token)
		if err != nil {
			h.logger.Warn().Err(err).Msg("callback token rejected")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		organizer, err := h.organizers.FindByAuthSubject(subject)
		if err != nil || organizer == nil || !organizer.IsActive {
			if err != nil {
				h.logger.Warn().Err(err).Str("subject", subject).Msg("callback organizer lookup failed")
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err := h.organizers.TouchLastLogin(organizer.ID); err != nil {
			h.logger.Warn().Err(err).Str("organizerID", organizer.ID.String()).Msg("failed to record login time")
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(sessionCookieTTL),
			HttpOnly: true,
			Secure:   h.secureOnly,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// me returns the authenticated organizer's own record.
func (h sessionHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access, ok := AccessFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("no active session"))
			return
		}

		organizer, err := h.organizers.FindByID(access.OrganizerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find organizer", "organizer", err))
			return
		}

		h.responder.WriteJSON(w, organizer)
	}
}

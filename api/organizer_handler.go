package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/database"
	"github.com/talentbridge/command-center-backend/errs"
	"github.com/talentbridge/command-center-backend/models"
)

// organizerStore is the slice of the organizer repo the handler needs.
type organizerStore interface {
	FindRecent(limit int) []*models.Organizer
	FindByID(id uuid.UUID) (*models.Organizer, error)
	Add(organizer *models.Organizer) error
	Update(organizer *models.Organizer) error
	Delete(id uuid.UUID) error
}

type organizerHandler struct {
	responder     Responder
	logger        zerolog.Logger
	organizerRepo organizerStore
}

func newOrganizerHandler(organizerRepo *database.OrganizerRepo) organizerHandler {
	logger := log.With().Str("handlerName", "organizerHandler").Logger()

	return organizerHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		organizerRepo: organizerRepo,
	}
}

// OrganizerCollection represents a page of organizer accounts
type OrganizerCollection struct {
	Organizers []*models.Organizer `json:"organizers"`
	Total      int                 `json:"total"`
}

func (h organizerHandler) getAllOrganizers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		organizers := h.organizerRepo.FindRecent(queryLimit(r, defaultListLimit))
		if organizers == nil {
			organizers = []*models.Organizer{}
		}
		h.responder.WriteJSON(w, OrganizerCollection{Organizers: organizers, Total: len(organizers)})
	}
}

func (h organizerHandler) getOrganizer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		organizerID, err := pathID(r, "organizerID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		organizer, err := h.organizerRepo.FindByID(organizerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find organizer", "organizer", err))
			return
		}

		h.responder.WriteJSON(w, organizer)
	}
}

func (h organizerHandler) createOrganizer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var organizer models.Organizer
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&organizer); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode organizer request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		organizer.Email = strings.TrimSpace(organizer.Email)
		if organizer.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if organizer.AuthSubject == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("auth_subject"))
			return
		}
		if organizer.Role == "" {
			organizer.Role = models.RoleOrganizer
		}
		if !models.ValidRole(organizer.Role) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("role", "unknown role"))
			return
		}

		if err := h.organizerRepo.Add(&organizer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create organizer", "organizer", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, organizer)
	}
}

func (h organizerHandler) updateOrganizer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		organizerID, err := pathID(r, "organizerID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.organizerRepo.FindByID(organizerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find organizer", "organizer", err))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		// IsActive decodes through a pointer so an omitted field can be
		// told apart from an explicit false; a PUT that never mentions
		// is_active must not deactivate the account.
		var body struct {
			models.Organizer
			IsActive *bool `json:"is_active"`
		}
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&body); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode organizer request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		organizer := body.Organizer

		if organizer.Role != "" && !models.ValidRole(organizer.Role) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("role", "unknown role"))
			return
		}

		organizer.ID = organizerID
		organizer.CreatedAt = existing.CreatedAt
		organizer.LastLogin = existing.LastLogin
		if organizer.Email == "" {
			organizer.Email = existing.Email
		}
		if organizer.FullName == "" {
			organizer.FullName = existing.FullName
		}
		if organizer.Role == "" {
			organizer.Role = existing.Role
		}
		if organizer.AuthSubject == "" {
			organizer.AuthSubject = existing.AuthSubject
		}
		if body.IsActive != nil {
			organizer.IsActive = *body.IsActive
		} else {
			organizer.IsActive = existing.IsActive
		}

		if err := h.organizerRepo.Update(&organizer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update organizer", "organizer", err))
			return
		}

		updatedOrganizer, err := h.organizerRepo.FindByID(organizerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated organizer", "organizer", err))
			return
		}

		h.responder.WriteJSON(w, updatedOrganizer)
	}
}

func (h organizerHandler) deleteOrganizer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		organizerID, err := pathID(r, "organizerID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// An admin cannot remove their own account; deactivation is the
		// supported path for retiring a live login.
		if access, ok := AccessFromCtx(r.Context()); ok && access.OrganizerID == organizerID {
			h.responder.WriteError(w, errs.NewBadRequestError("cannot delete your own account"))
			return
		}

		if _, err := h.organizerRepo.FindByID(organizerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find organizer", "organizer", err))
			return
		}

		if err := h.organizerRepo.Delete(organizerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete organizer", "organizer", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "organizer deleted successfully",
		})
	}
}

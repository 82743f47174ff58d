package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/database"
	"github.com/talentbridge/command-center-backend/errs"
	"github.com/talentbridge/command-center-backend/models"
)

type applicationHandler struct {
	responder       Responder
	logger          zerolog.Logger
	applicationRepo *database.ApplicationRepo
}

func newApplicationHandler(applicationRepo *database.ApplicationRepo) applicationHandler {
	logger := log.With().Str("handlerName", "applicationHandler").Logger()

	return applicationHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		applicationRepo: applicationRepo,
	}
}

// ApplicationCollection represents a page of applications
type ApplicationCollection struct {
	Applications []*models.Application `json:"applications"`
	Total        int                   `json:"total"`
}

func (h applicationHandler) getAllApplications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var applications []*models.Application
		if status := r.URL.Query().Get("status"); status != "" {
			if !models.ValidApplicationStatus(status) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
				return
			}
			applications = h.applicationRepo.FindByStatus(status)
		} else {
			applications = h.applicationRepo.FindRecent(queryLimit(r, defaultListLimit))
		}

		if applications == nil {
			applications = []*models.Application{}
		}
		h.responder.WriteJSON(w, ApplicationCollection{Applications: applications, Total: len(applications)})
	}
}

func (h applicationHandler) getApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID, err := pathID(r, "applicationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		application, err := h.applicationRepo.FindByID(applicationID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find application", "application", err))
			return
		}

		h.responder.WriteJSON(w, application)
	}
}

func (h applicationHandler) createApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var application models.Application
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&application); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode application request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if application.StudentID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("student_id"))
			return
		}
		if application.JobPostingID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("job_posting_id"))
			return
		}
		if application.Status == "" {
			application.Status = models.ApplicationStatusSubmitted
		}
		if !models.ValidApplicationStatus(application.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
			return
		}
		application.Student = nil
		application.JobPosting = nil

		if err := h.applicationRepo.Add(&application); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create application", "application", err))
			return
		}

		createdApplication, err := h.applicationRepo.FindByID(application.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created application", "application", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, createdApplication)
	}
}

func (h applicationHandler) updateApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID, err := pathID(r, "applicationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.applicationRepo.FindByID(applicationID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find application", "application", err))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var application models.Application
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&application); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode application request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if application.Status != "" && !models.ValidApplicationStatus(application.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
			return
		}

		application.ID = applicationID
		application.CreatedAt = existing.CreatedAt
		application.AppliedAt = existing.AppliedAt
		application.Student = nil
		application.JobPosting = nil
		if application.StudentID == uuid.Nil {
			application.StudentID = existing.StudentID
		}
		if application.JobPostingID == uuid.Nil {
			application.JobPostingID = existing.JobPostingID
		}
		if application.Status == "" {
			application.Status = existing.Status
		}

		if err := h.applicationRepo.Update(&application); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update application", "application", err))
			return
		}

		updatedApplication, err := h.applicationRepo.FindByID(applicationID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated application", "application", err))
			return
		}

		h.responder.WriteJSON(w, updatedApplication)
	}
}

func (h applicationHandler) deleteApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID, err := pathID(r, "applicationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.applicationRepo.FindByID(applicationID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find application", "application", err))
			return
		}

		if err := h.applicationRepo.Delete(applicationID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete application", "application", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "application deleted successfully",
		})
	}
}

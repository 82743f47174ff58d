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

type employerHandler struct {
	responder      Responder
	logger         zerolog.Logger
	employerRepo   *database.EmployerRepo
	jobPostingRepo *database.JobPostingRepo
}

func newEmployerHandler(employerRepo *database.EmployerRepo, jobPostingRepo *database.JobPostingRepo) employerHandler {
	logger := log.With().Str("handlerName", "employerHandler").Logger()

	return employerHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		employerRepo:   employerRepo,
		jobPostingRepo: jobPostingRepo,
	}
}

// EmployerCollection represents a page of employers
type EmployerCollection struct {
	Employers []*models.Employer `json:"employers"`
	Total     int                `json:"total"`
}

func (h employerHandler) getAllEmployers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var employers []*models.Employer
		if status := r.URL.Query().Get("status"); status != "" {
			if !models.ValidEmployerStatus(status) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
				return
			}
			employers = h.employerRepo.FindByStatus(status)
		} else {
			employers = h.employerRepo.FindRecent(queryLimit(r, defaultListLimit))
		}

		if employers == nil {
			employers = []*models.Employer{}
		}
		h.responder.WriteJSON(w, EmployerCollection{Employers: employers, Total: len(employers)})
	}
}

func (h employerHandler) getEmployer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employerID, err := pathID(r, "employerID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		employer, err := h.employerRepo.FindByID(employerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find employer", "employer", err))
			return
		}

		h.responder.WriteJSON(w, employer)
	}
}

// getEmployerJobPostings lists every posting owned by one employer.
func (h employerHandler) getEmployerJobPostings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employerID, err := pathID(r, "employerID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.employerRepo.FindByID(employerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find employer", "employer", err))
			return
		}

		postings := h.jobPostingRepo.FindByEmployer(employerID)
		if postings == nil {
			postings = []*models.JobPosting{}
		}
		h.responder.WriteJSON(w, JobPostingCollection{JobPostings: postings, Total: len(postings)})
	}
}

func (h employerHandler) createEmployer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var employer models.Employer
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&employer); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode employer request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if employer.CompanyName == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("company_name"))
			return
		}
		if employer.ContactEmail == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("contact_email"))
			return
		}
		if employer.Status == "" {
			employer.Status = models.EmployerStatusPending
		}
		if !models.ValidEmployerStatus(employer.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
			return
		}

		if err := h.employerRepo.Add(&employer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create employer", "employer", err))
			return
		}

		createdEmployer, err := h.employerRepo.FindByID(employer.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created employer", "employer", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, createdEmployer)
	}
}

func (h employerHandler) updateEmployer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employerID, err := pathID(r, "employerID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.employerRepo.FindByID(employerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find employer", "employer", err))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var employer models.Employer
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&employer); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode employer request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if employer.Status != "" && !models.ValidEmployerStatus(employer.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
			return
		}

		employer.ID = employerID
		employer.CreatedAt = existing.CreatedAt
		if employer.Status == "" {
			employer.Status = existing.Status
		}

		if err := h.employerRepo.Update(&employer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update employer", "employer", err))
			return
		}

		updatedEmployer, err := h.employerRepo.FindByID(employerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated employer", "employer", err))
			return
		}

		h.responder.WriteJSON(w, updatedEmployer)
	}
}

func (h employerHandler) deleteEmployer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employerID, err := pathID(r, "employerID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.employerRepo.FindByID(employerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find employer", "employer", err))
			return
		}

		if err := h.employerRepo.Delete(employerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete employer", "employer", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "employer deleted successfully",
		})
	}
}

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

// jobPostingStore is the slice of the job posting repo the handler needs.
type jobPostingStore interface {
	FindRecent(limit int) []*models.JobPosting
	FindByStatus(status string) []*models.JobPosting
	FindByID(id uuid.UUID) (*models.JobPosting, error)
	Add(posting *models.JobPosting) error
	Update(posting *models.JobPosting) error
	Delete(id uuid.UUID) error
}

// employerFinder resolves the employer a posting belongs to.
type employerFinder interface {
	FindByID(id uuid.UUID) (*models.Employer, error)
}

type jobPostingHandler struct {
	responder      Responder
	logger         zerolog.Logger
	jobPostingRepo jobPostingStore
	employerRepo   employerFinder
}

func newJobPostingHandler(jobPostingRepo *database.JobPostingRepo, employerRepo *database.EmployerRepo) jobPostingHandler {
	logger := log.With().Str("handlerName", "jobPostingHandler").Logger()

	return jobPostingHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		jobPostingRepo: jobPostingRepo,
		employerRepo:   employerRepo,
	}
}

// JobPostingCollection represents a page of job postings
type JobPostingCollection struct {
	JobPostings []*models.JobPosting `json:"job_postings"`
	Total       int                  `json:"total"`
}

// getAllJobPostings retrieves postings with their employer, newest first
// @Summary Get all job postings
// @Tags JobPostings
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} JobPostingCollection "List of job postings"
// @Router /job-postings [get]
func (h jobPostingHandler) getAllJobPostings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var postings []*models.JobPosting
		if status := r.URL.Query().Get("status"); status != "" {
			if !models.ValidJobPostingStatus(status) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
				return
			}
			postings = h.jobPostingRepo.FindByStatus(status)
		} else {
			postings = h.jobPostingRepo.FindRecent(queryLimit(r, defaultListLimit))
		}

		if postings == nil {
			postings = []*models.JobPosting{}
		}
		h.responder.WriteJSON(w, JobPostingCollection{JobPostings: postings, Total: len(postings)})
	}
}

func (h jobPostingHandler) getJobPosting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobPostingID, err := pathID(r, "jobPostingID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		posting, err := h.jobPostingRepo.FindByID(jobPostingID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find job posting", "job posting", err))
			return
		}

		h.responder.WriteJSON(w, posting)
	}
}

// createJobPosting creates a new posting under an existing employer
// @Summary Create job posting
// @Tags JobPostings
// @Accept json
// @Produce json
// @Param posting body models.JobPosting true "Job posting data"
// @Success 201 {object} models.JobPosting "Created job posting"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid posting data or unknown employer"
// @Router /job-posting [post]
func (h jobPostingHandler) createJobPosting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var posting models.JobPosting
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&posting); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode job posting request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if posting.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if posting.EmployerID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("employer_id"))
			return
		}
		if posting.Status == "" {
			posting.Status = models.JobStatusDraft
		}
		if !models.ValidJobPostingStatus(posting.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
			return
		}

		// Every posting belongs to exactly one existing employer
		if _, err := h.employerRepo.FindByID(posting.EmployerID); err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("employer_id", "employer does not exist"))
			return
		}

		// Avoid writing through the association on create
		posting.Employer = nil

		if err := h.jobPostingRepo.Add(&posting); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create job posting", "job posting", err))
			return
		}

		createdPosting, err := h.jobPostingRepo.FindByID(posting.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created job posting", "job posting", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, createdPosting)
	}
}

func (h jobPostingHandler) updateJobPosting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobPostingID, err := pathID(r, "jobPostingID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.jobPostingRepo.FindByID(jobPostingID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find job posting", "job posting", err))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		// Remote decodes through a pointer so an omitted field keeps the
		// stored value instead of resetting it to false.
		var body struct {
			models.JobPosting
			Remote *bool `json:"remote"`
		}
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&body); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode job posting request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		posting := body.JobPosting

		if posting.Status != "" && !models.ValidJobPostingStatus(posting.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
			return
		}

		posting.ID = jobPostingID
		posting.CreatedAt = existing.CreatedAt
		posting.Employer = nil
		if posting.EmployerID == uuid.Nil {
			posting.EmployerID = existing.EmployerID
		}
		if posting.Status == "" {
			posting.Status = existing.Status
		}
		if body.Remote != nil {
			posting.Remote = *body.Remote
		} else {
			posting.Remote = existing.Remote
		}

		if err := h.jobPostingRepo.Update(&posting); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update job posting", "job posting", err))
			return
		}

		updatedPosting, err := h.jobPostingRepo.FindByID(jobPostingID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated job posting", "job posting", err))
			return
		}

		h.responder.WriteJSON(w, updatedPosting)
	}
}

func (h jobPostingHandler) deleteJobPosting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobPostingID, err := pathID(r, "jobPostingID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.jobPostingRepo.FindByID(jobPostingID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find job posting", "job posting", err))
			return
		}

		if err := h.jobPostingRepo.Delete(jobPostingID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete job posting", "job posting", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "job posting deleted successfully",
		})
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/database"
	"github.com/talentbridge/command-center-backend/errs"
	"github.com/talentbridge/command-center-backend/models"
	"github.com/talentbridge/command-center-backend/services"
)

// aiRunner is the slice of the AI service the handler depends on.
type aiRunner interface {
	Enabled() bool
	EnhanceJobPosting(ctx context.Context, jobID uuid.UUID) (*models.JobPosting, error)
	ValidateStudent(ctx context.Context, studentID uuid.UUID) (*models.Student, error)
	EmbedStudent(ctx context.Context, studentID uuid.UUID) error
	SuggestMatches(ctx context.Context, jobID uuid.UUID, limit int) ([]*models.Match, error)
}

type aiHandler struct {
	responder       Responder
	logger          zerolog.Logger
	ai              aiRunner
	interactionRepo *database.AIInteractionRepo
}

func newAIHandler(aiService *services.AIService, interactionRepo *database.AIInteractionRepo) aiHandler {
	logger := log.With().Str("handlerName", "aiHandler").Logger()

	return aiHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		ai:              aiService,
		interactionRepo: interactionRepo,
	}
}

type jobTargetRequest struct {
	JobID uuid.UUID `json:"job_id"`
	Limit int       `json:"limit,omitempty"`
}

type studentTargetRequest struct {
	StudentID uuid.UUID `json:"student_id"`
}

func (h aiHandler) decodeTarget(w http.ResponseWriter, r *http.Request, target any) bool {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
		return false
	}
	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(target); err != nil {
		h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode request body")
		h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
		return false
	}
	return true
}

func (h aiHandler) requireEnabled(w http.ResponseWriter) bool {
	if !h.ai.Enabled() {
		h.responder.WriteError(w, errs.NewAINotConfiguredError())
		return false
	}
	return true
}

func (h aiHandler) enhanceJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.requireEnabled(w) {
			return
		}
		var req jobTargetRequest
		if !h.decodeTarget(w, r, &req) {
			return
		}
		if req.JobID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("job_id"))
			return
		}

		posting, err := h.ai.EnhanceJobPosting(r.Context(), req.JobID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, posting)
	}
}

func (h aiHandler) validateStudent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.requireEnabled(w) {
			return
		}
		var req studentTargetRequest
		if !h.decodeTarget(w, r, &req) {
			return
		}
		if req.StudentID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("student_id"))
			return
		}

		student, err := h.ai.ValidateStudent(r.Context(), req.StudentID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, student)
	}
}

func (h aiHandler) embedStudent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.requireEnabled(w) {
			return
		}
		var req studentTargetRequest
		if !h.decodeTarget(w, r, &req) {
			return
		}
		if req.StudentID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("student_id"))
			return
		}

		if err := h.ai.EmbedStudent(r.Context(), req.StudentID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "student embedded successfully",
		})
	}
}

func (h aiHandler) suggestMatches() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.requireEnabled(w) {
			return
		}
		var req jobTargetRequest
		if !h.decodeTarget(w, r, &req) {
			return
		}
		if req.JobID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("job_id"))
			return
		}
		if req.Limit <= 0 {
			req.Limit = 10
		}

		matches, err := h.ai.SuggestMatches(r.Context(), req.JobID, req.Limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if matches == nil {
			matches = []*models.Match{}
		}
		h.responder.WriteJSON(w, MatchCollection{Matches: matches, Total: len(matches)})
	}
}

func (h aiHandler) getInteractions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var interactions []*models.AIInteraction
		if kind := r.URL.Query().Get("kind"); kind != "" {
			interactions = h.interactionRepo.FindByKind(kind)
		} else {
			interactions = h.interactionRepo.FindRecent(queryLimit(r, defaultListLimit))
		}
		if interactions == nil {
			interactions = []*models.AIInteraction{}
		}
		h.responder.WriteJSON(w, map[string]any{
			"interactions": interactions,
			"total":        len(interactions),
		})
	}
}

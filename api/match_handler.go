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

type matchHandler struct {
	responder Responder
	logger    zerolog.Logger
	matchRepo *database.MatchRepo
}

func newMatchHandler(matchRepo *database.MatchRepo) matchHandler {
	logger := log.With().Str("handlerName", "matchHandler").Logger()

	return matchHandler{
		responder: NewResponder(logger),
		logger:    logger,
		matchRepo: matchRepo,
	}
}

// MatchCollection represents a page of matches
type MatchCollection struct {
	Matches []*models.Match `json:"matches"`
	Total   int             `json:"total"`
}

func (h matchHandler) getAllMatches() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var matches []*models.Match
		query := r.URL.Query()
		switch {
		case query.Get("status") != "":
			status := query.Get("status")
			if !models.ValidMatchStatus(status) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
				return
			}
			matches = h.matchRepo.FindByStatus(status)
		case query.Get("student_id") != "":
			studentID, err := uuid.Parse(query.Get("student_id"))
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid student_id"))
				return
			}
			matches = h.matchRepo.FindByStudent(studentID)
		default:
			matches = h.matchRepo.FindRecent(queryLimit(r, defaultListLimit))
		}

		if matches == nil {
			matches = []*models.Match{}
		}
		h.responder.WriteJSON(w, MatchCollection{Matches: matches, Total: len(matches)})
	}
}

func (h matchHandler) getMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := pathID(r, "matchID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		match, err := h.matchRepo.FindByID(matchID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find match", "match", err))
			return
		}

		h.responder.WriteJSON(w, match)
	}
}

func (h matchHandler) createMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var match models.Match
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&match); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode match request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if match.StudentID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("student_id"))
			return
		}
		if match.EmployerID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("employer_id"))
			return
		}
		if match.Status == "" {
			match.Status = models.MatchStatusSuggested
		}
		if !models.ValidMatchStatus(match.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
			return
		}

		// Foreign keys validate the references; write through associations
		// is not wanted here.
		match.Student = nil
		match.Employer = nil
		match.JobPosting = nil

		if err := h.matchRepo.Add(&match); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create match", "match", err))
			return
		}

		createdMatch, err := h.matchRepo.FindByID(match.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created match", "match", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, createdMatch)
	}
}

func (h matchHandler) updateMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := pathID(r, "matchID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.matchRepo.FindByID(matchID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find match", "match", err))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var match models.Match
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&match); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode match request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if match.Status != "" && !models.ValidMatchStatus(match.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
			return
		}

		match.ID = matchID
		match.CreatedAt = existing.CreatedAt
		match.Student = nil
		match.Employer = nil
		match.JobPosting = nil
		if match.StudentID == uuid.Nil {
			match.StudentID = existing.StudentID
		}
		if match.EmployerID == uuid.Nil {
			match.EmployerID = existing.EmployerID
		}
		if match.Status == "" {
			match.Status = existing.Status
		}

		if err := h.matchRepo.Update(&match); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update match", "match", err))
			return
		}

		updatedMatch, err := h.matchRepo.FindByID(matchID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated match", "match", err))
			return
		}

		h.responder.WriteJSON(w, updatedMatch)
	}
}

func (h matchHandler) deleteMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := pathID(r, "matchID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.matchRepo.FindByID(matchID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find match", "match", err))
			return
		}

		if err := h.matchRepo.Delete(matchID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete match", "match", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "match deleted successfully",
		})
	}
}

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
	"github.com/talentbridge/command-center-backend/services"
)

// presigner is the slice of the document store the handler depends on.
type presigner interface {
	Enabled() bool
	UploadURL(ctx context.Context, studentID uuid.UUID, kind, contentType string) (string, error)
	DownloadURL(ctx context.Context, studentID uuid.UUID, kind string) (string, error)
}

type documentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	documents   presigner
	studentRepo *database.StudentRepo
}

func newDocumentHandler(documentStore *services.DocumentStore, studentRepo *database.StudentRepo) documentHandler {
	logger := log.With().Str("handlerName", "documentHandler").Logger()

	return documentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		documents:   documentStore,
		studentRepo: studentRepo,
	}
}

type uploadURLRequest struct {
	StudentID   uuid.UUID `json:"student_id"`
	Kind        string    `json:"kind"`
	ContentType string    `json:"content_type"`
}

// PresignedURLResponse carries a short-lived S3 URL.
type PresignedURLResponse struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

func (h documentHandler) uploadURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.documents.Enabled() {
			h.responder.WriteError(w, errs.NewStorageNotConfiguredError())
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req uploadURLRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode upload url request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.StudentID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("student_id"))
			return
		}
		if !services.ValidDocumentKind(req.Kind) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("kind", "must be resume or transcript"))
			return
		}

		if _, err := h.studentRepo.FindByID(req.StudentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find student", "student", err))
			return
		}

		url, err := h.documents.UploadURL(r.Context(), req.StudentID, req.Kind, req.ContentType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, PresignedURLResponse{URL: url, Kind: req.Kind})
	}
}

func (h documentHandler) downloadURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.documents.Enabled() {
			h.responder.WriteError(w, errs.NewStorageNotConfiguredError())
			return
		}

		query := r.URL.Query()
		studentID, err := uuid.Parse(query.Get("student_id"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("student_id", "must be a uuid"))
			return
		}
		kind := query.Get("kind")
		if !services.ValidDocumentKind(kind) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("kind", "must be resume or transcript"))
			return
		}

		if _, err := h.studentRepo.FindByID(studentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find student", "student", err))
			return
		}

		url, err := h.documents.DownloadURL(r.Context(), studentID, kind)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, PresignedURLResponse{URL: url, Kind: kind})
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/database"
	"github.com/talentbridge/command-center-backend/errs"
	"github.com/talentbridge/command-center-backend/models"
)

const defaultListLimit = 50

type studentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	studentRepo *database.StudentRepo
}

func newStudentHandler(studentRepo *database.StudentRepo) studentHandler {
	logger := log.With().Str("handlerName", "studentHandler").Logger()

	return studentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		studentRepo: studentRepo,
	}
}

// StudentCollection represents a page of students
type StudentCollection struct {
	Students []*models.Student `json:"students"`
	Total    int               `json:"total"`
}

// getAllStudents retrieves students, newest first
// @Summary Get all students
// @Description Retrieves students, optionally filtered to one status
// @Tags Students
// @Accept json
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Maximum rows to return"
// @Success 200 {object} StudentCollection "List of students"
// @Router /students [get]
func (h studentHandler) getAllStudents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var students []*models.Student
		if status := r.URL.Query().Get("status"); status != "" {
			if !models.ValidStudentStatus(status) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
				return
			}
			students = h.studentRepo.FindByStatus(status)
		} else {
			students = h.studentRepo.FindRecent(queryLimit(r, defaultListLimit))
		}

		if students == nil {
			students = []*models.Student{}
		}
		h.responder.WriteJSON(w, StudentCollection{Students: students, Total: len(students)})
	}
}

// listStudentRows serves the trusted server-side listing as a bare array.
// It uses the same secured read path as every other list; no elevated
// credential is involved.
func (h studentHandler) listStudentRows() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students := h.studentRepo.FindRecent(queryLimit(r, defaultListLimit))
		if students == nil {
			students = []*models.Student{}
		}
		h.responder.WriteJSON(w, students)
	}
}

// getStudent retrieves a specific student by ID
// @Summary Get student
// @Tags Students
// @Produce json
// @Param studentID path string true "Student ID" format(uuid)
// @Success 200 {object} models.Student "Student details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid studentID"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /student/{studentID} [get]
func (h studentHandler) getStudent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID, err := pathID(r, "studentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		student, err := h.studentRepo.FindByID(studentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find student", "student", err))
			return
		}

		h.responder.WriteJSON(w, student)
	}
}

// createStudent creates a new student
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param student body models.Student true "Student data"
// @Success 201 {object} models.Student "Created student"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid student data"
// @Router /student [post]
func (h studentHandler) createStudent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var student models.Student
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&student); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode student request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if student.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if student.FirstName == "" && student.LastName == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("first_name"))
			return
		}
		if student.University == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("university"))
			return
		}
		if student.Status == "" {
			student.Status = models.StudentStatusPending
		}
		if !models.ValidStudentStatus(student.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
			return
		}

		if err := h.studentRepo.Add(&student); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create student", "student", err))
			return
		}

		// Reload to pick up database-assigned defaults and timestamps
		createdStudent, err := h.studentRepo.FindByID(student.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created student", "student", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, createdStudent)
	}
}

// updateStudent updates an existing student
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param studentID path string true "Student ID" format(uuid)
// @Param student body models.Student true "Updated student data"
// @Success 200 {object} models.Student "Updated student"
// @Failure 400 {object} ErrorResponse "Bad Request"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /student/{studentID} [put]
func (h studentHandler) updateStudent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID, err := pathID(r, "studentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.studentRepo.FindByID(studentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find student", "student", err))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var student models.Student
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&student); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode student request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if student.Status != "" && !models.ValidStudentStatus(student.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "unknown status"))
			return
		}

		// Preserve server-owned fields across the form round trip
		student.ID = studentID
		student.CreatedAt = existing.CreatedAt
		student.Embedding = existing.Embedding
		if student.Status == "" {
			student.Status = existing.Status
		}

		if err := h.studentRepo.Update(&student); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update student", "student", err))
			return
		}

		updatedStudent, err := h.studentRepo.FindByID(studentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated student", "student", err))
			return
		}

		h.responder.WriteJSON(w, updatedStudent)
	}
}

// deleteStudent deletes a student by ID
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param studentID path string true "Student ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /student/{studentID} [delete]
func (h studentHandler) deleteStudent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID, err := pathID(r, "studentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.studentRepo.FindByID(studentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find student", "student", err))
			return
		}

		if err := h.studentRepo.Delete(studentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete student", "student", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "student deleted successfully",
		})
	}
}

// pathID parses a uuid path parameter, returning an ApiErr on failure.
func pathID(r *http.Request, param string) (uuid.UUID, error) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + param)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + param)
	}
	return id, nil
}

// queryLimit parses the limit query parameter with a default.
func queryLimit(r *http.Request, defaultLimit int) int {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return defaultLimit
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return defaultLimit
	}
	return limit
}

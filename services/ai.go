package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/config"
	"github.com/talentbridge/command-center-backend/database"
	"github.com/talentbridge/command-center-backend/errs"
	"github.com/talentbridge/command-center-backend/models"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const defaultAIModel = "gpt-4o-mini"

// Store slices the AI service needs from the data layer. Narrow interfaces
// keep the service testable with fakes.
type aiStudentStore interface {
	FindByID(id uuid.UUID) (*models.Student, error)
	Update(student *models.Student) error
	UpdateEmbedding(id uuid.UUID, embedding pgvector.Vector) error
	FindNearest(embedding pgvector.Vector, limit int) ([]database.StudentNeighbor, error)
}

type aiJobStore interface {
	FindByID(id uuid.UUID) (*models.JobPosting, error)
	Update(posting *models.JobPosting) error
}

type aiMatchStore interface {
	Add(match *models.Match) error
}

type aiInteractionStore interface {
	Add(interaction *models.AIInteraction) error
}

// AIService runs language-model work: job posting enhancement, student
// profile validation, embeddings and match suggestion. Every model call is
// recorded as an AIInteraction row.
type AIService struct {
	llm          llms.Model
	embedder     embeddings.Embedder
	model        string
	students     aiStudentStore
	jobs         aiJobStore
	matches      aiMatchStore
	interactions aiInteractionStore
}

// NewAIService builds an AIService from config. Without an OPENAI_API_KEY
// the service is returned disabled; every call fails with a configuration
// error.
func NewAIService(cfg map[string]string, students *database.StudentRepo, jobs *database.JobPostingRepo, matches *database.MatchRepo, interactions *database.AIInteractionRepo) (*AIService, error) {
	service := &AIService{
		model:        config.GetString(cfg, "OPENAI_MODEL", defaultAIModel),
		students:     students,
		jobs:         jobs,
		matches:      matches,
		interactions: interactions,
	}

	apiKey := config.GetString(cfg, "OPENAI_API_KEY", "")
	if apiKey == "" {
		return service, nil
	}

	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(service.model))
	if err != nil {
		return nil, fmt.Errorf("initializing openai client: %w", err)
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}
	service.llm = llm
	service.embedder = embedder
	return service, nil
}

// Enabled reports whether a model backend was configured.
func (s *AIService) Enabled() bool {
	return s.llm != nil
}

type enhancementResult struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// EnhanceJobPosting rewrites a posting's title and description for clarity
// and stores the result on the posting's enhancement fields.
func (s *AIService) EnhanceJobPosting(ctx context.Context, jobID uuid.UUID) (*models.JobPosting, error) {
	if !s.Enabled() {
		return nil, errs.NewAINotConfiguredError()
	}

	posting, err := s.jobs.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Rewrite this job posting to be clearer and more appealing to students.
Respond with JSON only: {"title": string, "description": string, "score": number from 0 to 100 rating the original posting quality}.

Title: %s
Description: %s
Requirements: %s`, posting.Title, posting.Description, strings.Join(posting.Requirements, "; "))

	response, err := s.complete(ctx, models.AIKindJobEnhancement, &posting.ID, prompt)
	if err != nil {
		return nil, err
	}

	var result enhancementResult
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &result); err != nil {
		return nil, errs.NewAICompletionError("job enhancement", fmt.Errorf("unparseable model response: %w", err))
	}

	score := clampScore(result.Score)
	posting.EnhancedTitle = &result.Title
	posting.EnhancedDescription = &result.Description
	posting.EnhancementScore = &score
	if err := s.jobs.Update(posting); err != nil {
		return nil, err
	}
	return posting, nil
}

type validationResult struct {
	Score float64 `json:"score"`
	Notes string  `json:"notes"`
}

// ValidateStudent scores a student profile for completeness and stores the
// score and reviewer notes.
func (s *AIService) ValidateStudent(ctx context.Context, studentID uuid.UUID) (*models.Student, error) {
	if !s.Enabled() {
		return nil, errs.NewAINotConfiguredError()
	}

	student, err := s.students.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Assess this student profile for completeness and employability signal.
Respond with JSON only: {"score": number from 0 to 100, "notes": string with concrete suggestions}.

%s`, studentProfileText(student))

	response, err := s.complete(ctx, models.AIKindStudentValidation, &student.ID, prompt)
	if err != nil {
		return nil, err
	}

	var result validationResult
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &result); err != nil {
		return nil, errs.NewAICompletionError("student validation", fmt.Errorf("unparseable model response: %w", err))
	}

	score := clampScore(result.Score)
	student.ValidationScore = &score
	student.ValidationNotes = &result.Notes
	if err := s.students.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}

// EmbedStudent computes and stores the profile embedding used by match
// suggestion.
func (s *AIService) EmbedStudent(ctx context.Context, studentID uuid.UUID) error {
	if !s.Enabled() {
		return errs.NewAINotConfiguredError()
	}

	student, err := s.students.FindByID(studentID)
	if err != nil {
		return err
	}

	started := time.Now()
	vector, err := s.embedder.EmbedQuery(ctx, studentProfileText(student))
	s.record(models.AIKindEmbedding, &student.ID, "student profile embedding", "", started, err)
	if err != nil {
		return errs.NewAICompletionError("embedding", err)
	}

	return s.students.UpdateEmbedding(student.ID, pgvector.NewVector(vector))
}

// SuggestMatches embeds a job posting's text and creates suggested Match
// rows for the nearest approved students. Scores are (1 - cosine distance)
// scaled to 0-100 and clamped.
func (s *AIService) SuggestMatches(ctx context.Context, jobID uuid.UUID, limit int) ([]*models.Match, error) {
	if !s.Enabled() {
		return nil, errs.NewAINotConfiguredError()
	}
	if limit <= 0 {
		limit = 10
	}

	posting, err := s.jobs.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	jobText := fmt.Sprintf("%s\n%s\nSkills: %s", posting.Title, posting.Description, strings.Join(posting.Skills, ", "))
	started := time.Now()
	vector, err := s.embedder.EmbedQuery(ctx, jobText)
	s.record(models.AIKindEmbedding, &posting.ID, "job posting embedding", "", started, err)
	if err != nil {
		return nil, errs.NewAICompletionError("embedding", err)
	}

	neighbors, err := s.students.FindNearest(pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, err
	}

	matches := make([]*models.Match, 0, len(neighbors))
	for _, neighbor := range neighbors {
		jobPostingID := posting.ID
		match := &models.Match{
			StudentID:    neighbor.Student.ID,
			EmployerID:   posting.EmployerID,
			JobPostingID: &jobPostingID,
			MatchScore:   clampScore((1 - neighbor.Distance) * 100),
			Status:       models.MatchStatusSuggested,
		}
		if err := s.matches.Add(match); err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// complete runs one prompt through the model and records the interaction.
func (s *AIService) complete(ctx context.Context, kind string, entityID *uuid.UUID, prompt string) (string, error) {
	started := time.Now()
	response, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt)
	s.record(kind, entityID, prompt, response, started, err)
	if err != nil {
		return "", errs.NewAICompletionError(kind, err)
	}
	return response, nil
}

func (s *AIService) record(kind string, entityID *uuid.UUID, prompt, response string, started time.Time, callErr error) {
	if s.interactions == nil {
		return
	}
	interaction := &models.AIInteraction{
		Kind:      kind,
		EntityID:  entityID,
		Model:     s.model,
		Prompt:    truncate(prompt, 2000),
		Response:  truncate(response, 2000),
		LatencyMS: time.Since(started).Milliseconds(),
		Succeeded: callErr == nil,
	}
	if err := s.interactions.Add(interaction); err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("failed to record ai interaction")
	}
}

func studentProfileText(student *models.Student) string {
	return fmt.Sprintf(`Name: %s
University: %s
Degree: %s (graduating %d)
Skills: %s
Interests: %s
Availability: %s
Bio: %s`,
		student.FullName(),
		student.University,
		student.Degree,
		student.GraduationYear,
		strings.Join(student.Skills, ", "),
		strings.Join(student.Interests, ", "),
		student.Availability,
		student.Bio,
	)
}

// stripCodeFence unwraps ```json ... ``` blocks some models insist on.
func stripCodeFence(response string) string {
	trimmed := strings.TrimSpace(response)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

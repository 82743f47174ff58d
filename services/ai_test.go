package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/talentbridge/command-center-backend/database"
	"github.com/talentbridge/command-center-backend/models"
	"github.com/tmc/langchaingo/llms"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, message := range messages {
		for _, part := range message.Parts {
			if text, ok := part.(llms.TextContent); ok {
				f.prompts = append(f.prompts, text.Text)
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return f.vector, f.err
}

type fakeAIStudentStore struct {
	students   map[uuid.UUID]*models.Student
	updated    []*models.Student
	embeddings map[uuid.UUID]pgvector.Vector
	neighbors  []database.StudentNeighbor
}

func (s *fakeAIStudentStore) FindByID(id uuid.UUID) (*models.Student, error) {
	student, ok := s.students[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return student, nil
}

func (s *fakeAIStudentStore) Update(student *models.Student) error {
	s.updated = append(s.updated, student)
	return nil
}

func (s *fakeAIStudentStore) UpdateEmbedding(id uuid.UUID, embedding pgvector.Vector) error {
	if s.embeddings == nil {
		s.embeddings = make(map[uuid.UUID]pgvector.Vector)
	}
	s.embeddings[id] = embedding
	return nil
}

func (s *fakeAIStudentStore) FindNearest(embedding pgvector.Vector, limit int) ([]database.StudentNeighbor, error) {
	if limit < len(s.neighbors) {
		return s.neighbors[:limit], nil
	}
	return s.neighbors, nil
}

type fakeAIJobStore struct {
	postings map[uuid.UUID]*models.JobPosting
	updated  []*models.JobPosting
}

func (s *fakeAIJobStore) FindByID(id uuid.UUID) (*models.JobPosting, error) {
	posting, ok := s.postings[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return posting, nil
}

func (s *fakeAIJobStore) Update(posting *models.JobPosting) error {
	s.updated = append(s.updated, posting)
	return nil
}

type fakeAIMatchStore struct {
	added []*models.Match
}

func (s *fakeAIMatchStore) Add(match *models.Match) error {
	s.added = append(s.added, match)
	return nil
}

type fakeInteractionStore struct {
	rows []*models.AIInteraction
}

func (s *fakeInteractionStore) Add(interaction *models.AIInteraction) error {
	s.rows = append(s.rows, interaction)
	return nil
}

func testAIService(llm llms.Model, embedder *fakeEmbedder, students *fakeAIStudentStore, jobs *fakeAIJobStore, matches *fakeAIMatchStore, interactions *fakeInteractionStore) *AIService {
	return &AIService{
		llm:          llm,
		embedder:     embedder,
		model:        defaultAIModel,
		students:     students,
		jobs:         jobs,
		matches:      matches,
		interactions: interactions,
	}
}

func TestEnhanceJobPosting(t *testing.T) {
	jobID := uuid.New()
	jobs := &fakeAIJobStore{postings: map[uuid.UUID]*models.JobPosting{
		jobID: {ID: jobID, Title: "dev", Description: "write code"},
	}}
	llm := &fakeLLM{response: "```json\n{\"title\": \"Software Developer\", \"description\": \"Build product features\", \"score\": 140}\n```"}
	interactions := &fakeInteractionStore{}
	service := testAIService(llm, &fakeEmbedder{}, &fakeAIStudentStore{}, jobs, &fakeAIMatchStore{}, interactions)

	posting, err := service.EnhanceJobPosting(context.Background(), jobID)
	if err != nil {
		t.Fatalf("EnhanceJobPosting() error = %v", err)
	}
	if posting.EnhancedTitle == nil || *posting.EnhancedTitle != "Software Developer" {
		t.Errorf("enhanced title = %v, want Software Developer", posting.EnhancedTitle)
	}
	if posting.EnhancementScore == nil || *posting.EnhancementScore != 100 {
		t.Errorf("score = %v, want clamped to 100", posting.EnhancementScore)
	}
	if len(jobs.updated) != 1 {
		t.Errorf("updates = %d, want 1", len(jobs.updated))
	}
	if len(interactions.rows) != 1 || interactions.rows[0].Kind != models.AIKindJobEnhancement || !interactions.rows[0].Succeeded {
		t.Errorf("interactions = %+v, want one successful job_enhancement row", interactions.rows)
	}
}

func TestEnhanceJobPostingUnparseableResponse(t *testing.T) {
	jobID := uuid.New()
	jobs := &fakeAIJobStore{postings: map[uuid.UUID]*models.JobPosting{
		jobID: {ID: jobID, Title: "dev"},
	}}
	llm := &fakeLLM{response: "sorry, I can't do that"}
	service := testAIService(llm, &fakeEmbedder{}, &fakeAIStudentStore{}, jobs, &fakeAIMatchStore{}, &fakeInteractionStore{})

	if _, err := service.EnhanceJobPosting(context.Background(), jobID); err == nil {
		t.Fatal("EnhanceJobPosting() = nil, want error on unparseable response")
	}
	if len(jobs.updated) != 0 {
		t.Errorf("posting was updated despite unparseable response")
	}
}

func TestValidateStudent(t *testing.T) {
	studentID := uuid.New()
	students := &fakeAIStudentStore{students: map[uuid.UUID]*models.Student{
		studentID: {ID: studentID, FirstName: "Ada", LastName: "Lovelace"},
	}}
	llm := &fakeLLM{response: `{"score": -10, "notes": "add a bio"}`}
	interactions := &fakeInteractionStore{}
	service := testAIService(llm, &fakeEmbedder{}, students, &fakeAIJobStore{}, &fakeAIMatchStore{}, interactions)

	student, err := service.ValidateStudent(context.Background(), studentID)
	if err != nil {
		t.Fatalf("ValidateStudent() error = %v", err)
	}
	if student.ValidationScore == nil || *student.ValidationScore != 0 {
		t.Errorf("score = %v, want clamped to 0", student.ValidationScore)
	}
	if student.ValidationNotes == nil || *student.ValidationNotes != "add a bio" {
		t.Errorf("notes = %v, want add a bio", student.ValidationNotes)
	}
	if len(interactions.rows) != 1 || interactions.rows[0].Kind != models.AIKindStudentValidation {
		t.Errorf("interactions = %+v, want one student_validation row", interactions.rows)
	}
}

func TestEmbedStudent(t *testing.T) {
	studentID := uuid.New()
	students := &fakeAIStudentStore{students: map[uuid.UUID]*models.Student{
		studentID: {ID: studentID, FirstName: "Ada"},
	}}
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2, 0.3}}
	interactions := &fakeInteractionStore{}
	service := testAIService(&fakeLLM{}, embedder, students, &fakeAIJobStore{}, &fakeAIMatchStore{}, interactions)

	if err := service.EmbedStudent(context.Background(), studentID); err != nil {
		t.Fatalf("EmbedStudent() error = %v", err)
	}
	if _, ok := students.embeddings[studentID]; !ok {
		t.Error("no embedding stored for student")
	}
	if len(interactions.rows) != 1 || interactions.rows[0].Kind != models.AIKindEmbedding {
		t.Errorf("interactions = %+v, want one embedding row", interactions.rows)
	}
}

func TestSuggestMatchesScoresFromDistance(t *testing.T) {
	jobID := uuid.New()
	employerID := uuid.New()
	jobs := &fakeAIJobStore{postings: map[uuid.UUID]*models.JobPosting{
		jobID: {ID: jobID, EmployerID: employerID, Title: "dev"},
	}}
	near := models.Student{ID: uuid.New()}
	far := models.Student{ID: uuid.New()}
	students := &fakeAIStudentStore{neighbors: []database.StudentNeighbor{
		{Student: near, Distance: 0.25},
		{Student: far, Distance: 1.5},
	}}
	matchStore := &fakeAIMatchStore{}
	service := testAIService(&fakeLLM{}, &fakeEmbedder{vector: []float32{0.5}}, students, jobs, matchStore, &fakeInteractionStore{})

	matches, err := service.SuggestMatches(context.Background(), jobID, 10)
	if err != nil {
		t.Fatalf("SuggestMatches() error = %v", err)
	}
	if len(matches) != 2 || len(matchStore.added) != 2 {
		t.Fatalf("matches = %d (stored %d), want 2", len(matches), len(matchStore.added))
	}

	if got := matches[0].MatchScore; got != 75 {
		t.Errorf("near score = %v, want 75", got)
	}
	// Distance beyond 1 would go negative; the score clamps at 0.
	if got := matches[1].MatchScore; got != 0 {
		t.Errorf("far score = %v, want 0", got)
	}
	for _, match := range matches {
		if match.Status != models.MatchStatusSuggested {
			t.Errorf("status = %q, want %q", match.Status, models.MatchStatusSuggested)
		}
		if match.EmployerID != employerID {
			t.Errorf("employer = %s, want %s", match.EmployerID, employerID)
		}
		if match.JobPostingID == nil || *match.JobPostingID != jobID {
			t.Errorf("job posting id = %v, want %s", match.JobPostingID, jobID)
		}
	}
}

func TestDisabledServiceRejectsCalls(t *testing.T) {
	service := &AIService{model: defaultAIModel}

	if service.Enabled() {
		t.Fatal("Enabled() = true without a configured backend")
	}
	if _, err := service.EnhanceJobPosting(context.Background(), uuid.New()); err == nil {
		t.Error("EnhanceJobPosting() = nil, want configuration error")
	}
	if err := service.EmbedStudent(context.Background(), uuid.New()); err == nil {
		t.Error("EmbedStudent() = nil, want configuration error")
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"{\"a\": 1}":                       `{"a": 1}`,
		"```json\n{\"a\": 1}\n```":         `{"a": 1}`,
		"```\n{\"a\": 1}\n```":             `{"a": 1}`,
		"  \n```json\n{\"a\": 1}\n```\n  ": `{"a": 1}`,
	}
	for input, want := range cases {
		if got := stripCodeFence(input); got != want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	if got := truncate("résumé", 100); got != "résumé" {
		t.Errorf("truncate under limit = %q, want the input unchanged", got)
	}
	// "é" is two bytes; a cut at 2 lands mid-rune and must back up.
	if got := truncate("résumé", 2); got != "r" {
		t.Errorf("truncate(%q, 2) = %q, want %q", "résumé", got, "r")
	}
	if got := truncate("résumé", 3); got != "ré" {
		t.Errorf("truncate(%q, 3) = %q, want %q", "résumé", got, "ré")
	}
	if !utf8.ValidString(truncate(strings.Repeat("日", 10), 8)) {
		t.Error("truncate produced an invalid UTF-8 string")
	}
}

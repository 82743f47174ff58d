package api

import (
	"time"

	"github.com/talentbridge/command-center-backend/database"
	"github.com/talentbridge/command-center-backend/services"
)

// handlerDeps carries the outbound collaborators handlers need beyond the
// database.
type handlerDeps struct {
	mailer        *services.Mailer
	smsSender     *services.SMSSender
	documentStore *services.DocumentStore
	aiService     *services.AIService
	config        map[string]string
	startupTime   time.Time
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, deps handlerDeps) *routeHandlers {
	return &routeHandlers{
		healthHandler:      newHealthHandler(deps.startupTime),
		sessionHandler:     newSessionHandler(deps.config, database.OrganizerRepo()),
		studentHandler:     newStudentHandler(database.StudentRepo()),
		employerHandler:    newEmployerHandler(database.EmployerRepo(), database.JobPostingRepo()),
		jobPostingHandler:  newJobPostingHandler(database.JobPostingRepo(), database.EmployerRepo()),
		matchHandler:       newMatchHandler(database.MatchRepo()),
		applicationHandler: newApplicationHandler(database.ApplicationRepo()),
		organizerHandler:   newOrganizerHandler(database.OrganizerRepo()),
		metricsHandler:     newMetricsHandler(database.MetricsRepo()),
		analyticsHandler:   newAnalyticsHandler(database.AnalyticsRepo()),
		settingsHandler:    newSettingsHandler(deps),
		aiHandler:          newAIHandler(deps.aiService, database.AIInteractionRepo()),
		emailHandler:       newEmailHandler(deps.mailer, deps.smsSender),
		documentHandler:    newDocumentHandler(deps.documentStore, database.StudentRepo()),
	}
}

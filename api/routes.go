package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers every route. The access gate runs before routing;
// admin-prefixed paths additionally require the admin role inside the gate.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	// Public endpoints (allow-listed in the gate)
	r.Get("/api/health", handlers.healthHandler.check())
	r.Get("/auth/callback", handlers.sessionHandler.callback())

	// Session
	r.Get("/me", handlers.sessionHandler.me())

	// Student endpoints
	r.Get("/students", handlers.studentHandler.getAllStudents())
	r.Get("/student/{studentID}", handlers.studentHandler.getStudent())
	r.Post("/student", handlers.studentHandler.createStudent())
	r.Put("/student/{studentID}", handlers.studentHandler.updateStudent())
	r.Delete("/student/{studentID}", handlers.studentHandler.deleteStudent())
	r.Get("/api/students", handlers.studentHandler.listStudentRows())

	// Employer endpoints
	r.Get("/employers", handlers.employerHandler.getAllEmployers())
	r.Get("/employer/{employerID}", handlers.employerHandler.getEmployer())
	r.Get("/employer/{employerID}/job-postings", handlers.employerHandler.getEmployerJobPostings())
	r.Post("/employer", handlers.employerHandler.createEmployer())
	r.Put("/employer/{employerID}", handlers.employerHandler.updateEmployer())
	r.Delete("/employer/{employerID}", handlers.employerHandler.deleteEmployer())

	// Job posting endpoints
	r.Get("/job-postings", handlers.jobPostingHandler.getAllJobPostings())
	r.Get("/job-posting/{jobPostingID}", handlers.jobPostingHandler.getJobPosting())
	r.Post("/job-posting", handlers.jobPostingHandler.createJobPosting())
	r.Put("/job-posting/{jobPostingID}", handlers.jobPostingHandler.updateJobPosting())
	r.Delete("/job-posting/{jobPostingID}", handlers.jobPostingHandler.deleteJobPosting())

	// Match endpoints
	r.Get("/matches", handlers.matchHandler.getAllMatches())
	r.Get("/match/{matchID}", handlers.matchHandler.getMatch())
	r.Post("/match", handlers.matchHandler.createMatch())
	r.Put("/match/{matchID}", handlers.matchHandler.updateMatch())
	r.Delete("/match/{matchID}", handlers.matchHandler.deleteMatch())

	// Application endpoints
	r.Get("/applications", handlers.applicationHandler.getAllApplications())
	r.Get("/application/{applicationID}", handlers.applicationHandler.getApplication())
	r.Post("/application", handlers.applicationHandler.createApplication())
	r.Put("/application/{applicationID}", handlers.applicationHandler.updateApplication())
	r.Delete("/application/{applicationID}", handlers.applicationHandler.deleteApplication())

	// Dashboard metrics
	r.Get("/metrics/dashboard", handlers.metricsHandler.getDashboard())

	// Notification dispatch
	r.Post("/api/send-email", handlers.emailHandler.sendNotifications())
	r.Get("/api/send-email", handlers.emailHandler.testConfiguration())
	r.Post("/api/send-sms", handlers.emailHandler.sendSMS())

	// Student documents
	r.Post("/documents/upload-url", handlers.documentHandler.uploadURL())
	r.Get("/documents/download-url", handlers.documentHandler.downloadURL())

	// Admin: organizer management
	r.Get("/users", handlers.organizerHandler.getAllOrganizers())
	r.Get("/users/{organizerID}", handlers.organizerHandler.getOrganizer())
	r.Post("/users", handlers.organizerHandler.createOrganizer())
	r.Put("/users/{organizerID}", handlers.organizerHandler.updateOrganizer())
	r.Delete("/users/{organizerID}", handlers.organizerHandler.deleteOrganizer())

	// Admin: analytics
	r.Get("/analytics", handlers.analyticsHandler.getOverview())
	r.Post("/analytics/events", handlers.analyticsHandler.recordEvent())

	// Admin: settings
	r.Get("/settings", handlers.settingsHandler.getSettings())

	// Admin: AI
	r.Post("/ai/enhance-job", handlers.aiHandler.enhanceJob())
	r.Post("/ai/validate-student", handlers.aiHandler.validateStudent())
	r.Post("/ai/embed-student", handlers.aiHandler.embedStudent())
	r.Post("/ai/suggest-matches", handlers.aiHandler.suggestMatches())
	r.Get("/ai/interactions", handlers.aiHandler.getInteractions())
}

package database

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Database aggregates every repository over a shared GORM instance.
type Database struct {
	studentRepo       *StudentRepo
	employerRepo      *EmployerRepo
	jobPostingRepo    *JobPostingRepo
	matchRepo         *MatchRepo
	organizerRepo     *OrganizerRepo
	applicationRepo   *ApplicationRepo
	notificationRepo  *NotificationRepo
	analyticsRepo     *AnalyticsRepo
	aiInteractionRepo *AIInteractionRepo
	metricsRepo       *MetricsRepo
}

// New initializes a Database with each repository using a shared GORM
// database instance.
func New(db *gorm.DB) Database {
	return Database{
		studentRepo:       NewStudentRepo(db),
		employerRepo:      NewEmployerRepo(db),
		jobPostingRepo:    NewJobPostingRepo(db),
		matchRepo:         NewMatchRepo(db),
		organizerRepo:     NewOrganizerRepo(db),
		applicationRepo:   NewApplicationRepo(db),
		notificationRepo:  NewNotificationRepo(db),
		analyticsRepo:     NewAnalyticsRepo(db),
		aiInteractionRepo: NewAIInteractionRepo(db),
		metricsRepo:       NewMetricsRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) StudentRepo() *StudentRepo {
	return d.studentRepo
}

func (d Database) EmployerRepo() *EmployerRepo {
	return d.employerRepo
}

func (d Database) JobPostingRepo() *JobPostingRepo {
	return d.jobPostingRepo
}

func (d Database) MatchRepo() *MatchRepo {
	return d.matchRepo
}

func (d Database) OrganizerRepo() *OrganizerRepo {
	return d.organizerRepo
}

func (d Database) ApplicationRepo() *ApplicationRepo {
	return d.applicationRepo
}

func (d Database) NotificationRepo() *NotificationRepo {
	return d.notificationRepo
}

func (d Database) AnalyticsRepo() *AnalyticsRepo {
	return d.analyticsRepo
}

func (d Database) AIInteractionRepo() *AIInteractionRepo {
	return d.aiInteractionRepo
}

func (d Database) MetricsRepo() *MetricsRepo {
	return d.metricsRepo
}

// readSoft is the single place the list-read policy lives: a failed read
// degrades to an empty result so the dashboard keeps rendering. Write paths
// propagate their errors and must not use this.
func readSoft[T any](operation, entity string, rows []T, err error) []T {
	if err != nil {
		log.Warn().
			Err(err).
			Str("operation", operation).
			Str("entity", entity).
			Msg("read degraded to empty result")
		return nil
	}
	return rows
}

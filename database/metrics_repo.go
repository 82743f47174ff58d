package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type MetricsRepo struct {
	db *gorm.DB
}

func NewMetricsRepo(db *gorm.DB) *MetricsRepo {
	return &MetricsRepo{db}
}

// DashboardMetrics is the fixed-shape aggregate behind the dashboard
// overview page.
type DashboardMetrics struct {
	TotalStudents        int `json:"total_students"`
	ApprovedStudents     int `json:"approved_students"`
	PendingStudents      int `json:"pending_students"`
	TotalEmployers       int `json:"total_employers"`
	ApprovedEmployers    int `json:"approved_employers"`
	TotalJobPostings     int `json:"total_job_postings"`
	PublishedJobPostings int `json:"published_job_postings"`
	PendingJobPostings   int `json:"pending_job_postings"`
	TotalMatches         int `json:"total_matches"`

	RecentStudents []*models.Student `json:"recent_students"`
}

// DashboardMetrics fetches the status columns of each primary table in
// parallel and tallies them in memory. Any sub-query failure degrades the
// whole aggregate to its zero value; the dashboard renders zeros rather
// than an error page.
func (r *MetricsRepo) DashboardMetrics(ctx context.Context) DashboardMetrics {
	var (
		studentStatuses  []string
		employerStatuses []string
		jobStatuses      []string
		matchCount       int64
		recentStudents   []*models.Student
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Student{}).
			Pluck("status", &studentStatuses).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Employer{}).
			Pluck("status", &employerStatuses).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.JobPosting{}).
			Pluck("status", &jobStatuses).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Match{}).
			Count(&matchCount).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).
			Order("created_at DESC").Limit(5).Find(&recentStudents).Error
	})

	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("dashboard metrics degraded to zero aggregate")
		return DashboardMetrics{RecentStudents: []*models.Student{}}
	}

	metrics := DashboardMetrics{
		TotalStudents:    len(studentStatuses),
		TotalEmployers:   len(employerStatuses),
		TotalJobPostings: len(jobStatuses),
		TotalMatches:     int(matchCount),
		RecentStudents:   recentStudents,
	}
	for _, status := range studentStatuses {
		switch status {
		case models.StudentStatusApproved:
			metrics.ApprovedStudents++
		case models.StudentStatusPending:
			metrics.PendingStudents++
		}
	}
	for _, status := range employerStatuses {
		if status == models.EmployerStatusApproved {
			metrics.ApprovedEmployers++
		}
	}
	for _, status := range jobStatuses {
		switch status {
		case models.JobStatusPublished:
			metrics.PublishedJobPostings++
		case models.JobStatusPendingReview:
			metrics.PendingJobPostings++
		}
	}
	if metrics.RecentStudents == nil {
		metrics.RecentStudents = []*models.Student{}
	}
	return metrics
}

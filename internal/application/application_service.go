package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/go-jobboard-api/internal/domain/repository"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
	mailtpl "github.com/oksasatya/go-jobboard-api/pkg/mailer/templates"
)

type ApplicationService struct {
	Apps     repo.ApplicationRepository
	Jobs     repo.JobRepository
	Notifier Notifier
	Logger   *logrus.Logger
	// StrictTransitions rejects status changes that skip the hiring chain.
	StrictTransitions bool
}

func NewApplicationService(apps repo.ApplicationRepository, jobs repo.JobRepository, n Notifier, logger *logrus.Logger, strict bool) *ApplicationService {
	return &ApplicationService{Apps: apps, Jobs: jobs, Notifier: n, Logger: logger, StrictTransitions: strict}
}

// Apply submits the seeker's application to an active job. A second
// application to the same job is reported by storage as a conflict.
func (s *ApplicationService) Apply(ctx context.Context, seekerID, jobID, coverLetter string) (*entity.Application, error) {
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("job")
		}
		return nil, err
	}
	if !job.IsActive {
		return nil, apperr.NotFound("job")
	}

	coverLetter = strings.TrimSpace(coverLetter)
	if coverLetter == "" {
		coverLetter = entity.DefaultCoverLetter(job.Title, job.Company)
	}

	a := &entity.Application{
		JobID:       job.ID,
		SeekerID:    seekerID,
		CoverLetter: coverLetter,
		Status:      entity.StatusApplied,
	}
	if err := s.Apps.Create(ctx, a); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("you have already applied for this job")
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"application_id": a.ID, "job_id": job.ID, "user_id": seekerID}).Info("application submitted")
	}

	if a.Seeker != nil {
		notify(ctx, s.Notifier, s.Logger, a.Seeker.Email, mailtpl.ApplicationReceived,
			mailtpl.NewApplicationReceivedData(a.Seeker.Name, job.Title, job.Company))
	}
	return a, nil
}

// ListMine lists the seeker's applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, seekerID string, status entity.ApplicationStatus, page PageInput) ([]entity.Application, helpers.Pagination, error) {
	p := page.normalize()
	apps, total, err := s.Apps.List(ctx, repo.ApplicationFilter{SeekerID: seekerID, Status: status, Page: p.window()})
	if err != nil {
		return nil, helpers.Pagination{}, err
	}
	return apps, p.pagination(total), nil
}

// ListForJob lists a job's applicants for the employer who owns it.
func (s *ApplicationService) ListForJob(ctx context.Context, employerID, jobID string, status entity.ApplicationStatus, page PageInput) (*entity.Job, []entity.Application, helpers.Pagination, error) {
	job, err := s.Jobs.GetOwnedBy(ctx, jobID, employerID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil, helpers.Pagination{}, apperr.Denied("job")
		}
		return nil, nil, helpers.Pagination{}, err
	}
	p := page.normalize()
	apps, total, err := s.Apps.List(ctx, repo.ApplicationFilter{JobID: job.ID, Status: status, Page: p.window()})
	if err != nil {
		return nil, nil, helpers.Pagination{}, err
	}
	return job, apps, p.pagination(total), nil
}

// UpdateStatus sets the status of an application on one of the employer's
// jobs. The seeker is notified on every successful call.
func (s *ApplicationService) UpdateStatus(ctx context.Context, employerID, id string, status entity.ApplicationStatus) (*entity.Application, error) {
	if !status.Valid() {
		return nil, apperr.Invalid("status", "is not a valid application status")
	}
	cur, err := s.Apps.GetOwnedByEmployer(ctx, id, employerID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Denied("application")
		}
		return nil, err
	}
	if s.StrictTransitions && !cur.Status.CanTransition(status) {
		return nil, apperr.ErrInvalidTransition
	}

	a, err := s.Apps.UpdateStatus(ctx, cur.ID, status)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"application_id": a.ID,
			"user_id":        employerID,
			"from":           cur.Status,
			"to":             status,
		}).Info("application status updated")
	}

	if a.Seeker != nil && a.Job != nil {
		notify(ctx, s.Notifier, s.Logger, a.Seeker.Email, mailtpl.ApplicationStatus,
			mailtpl.NewApplicationStatusData(a.Seeker.Name, a.Job.Title, a.Job.Company, string(a.Status)))
	}
	return a, nil
}

type ApplicationStats struct {
	StatusCounts []entity.StatusCount `json:"statusCounts"`
	Total        int                  `json:"totalApplications"`
}

// Stats groups by status the applications the user submitted or received.
func (s *ApplicationService) Stats(ctx context.Context, userID string) (*ApplicationStats, error) {
	counts, total, err := s.Apps.StatsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ApplicationStats{StatusCounts: counts, Total: total}, nil
}

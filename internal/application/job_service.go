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
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

type JobService struct {
	Jobs   repo.JobRepository
	Index  JobIndex // optional
	Logger *logrus.Logger
}

func NewJobService(jobs repo.JobRepository, index JobIndex, logger *logrus.Logger) *JobService {
	return &JobService{Jobs: jobs, Index: index, Logger: logger}
}

type JobInput struct {
	Title        string
	Description  string
	Company      string
	Salary       string
	Location     string
	Type         entity.JobType
	Category     string
	Experience   string
	Requirements string
	Benefits     string
}

// JobPatch is a partial update; nil fields are left alone.
type JobPatch struct {
	Title        *string
	Description  *string
	Company      *string
	Salary       *string
	Location     *string
	Type         *entity.JobType
	Category     *string
	Experience   *string
	Requirements *string
	Benefits     *string
	IsActive     *bool
}

func (p JobPatch) apply(j *entity.Job) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&j.Title, p.Title)
	set(&j.Description, p.Description)
	set(&j.Company, p.Company)
	set(&j.Salary, p.Salary)
	set(&j.Location, p.Location)
	set(&j.Category, p.Category)
	set(&j.Experience, p.Experience)
	set(&j.Requirements, p.Requirements)
	set(&j.Benefits, p.Benefits)
	if p.Type != nil {
		j.Type = *p.Type
	}
	if p.IsActive != nil {
		j.IsActive = *p.IsActive
	}
	if j.Experience == "" {
		j.Experience = entity.DefaultExperience
	}
}

type JobQuery struct {
	Search     string
	Location   string
	Type       entity.JobType
	Category   string
	Experience string
	PageInput
}

// List returns active jobs only.
func (s *JobService) List(ctx context.Context, q JobQuery) ([]entity.Job, helpers.Pagination, error) {
	p := q.PageInput.normalize()
	active := true
	jobs, total, err := s.Jobs.List(ctx, repo.JobFilter{
		Active:     &active,
		Search:     strings.TrimSpace(q.Search),
		Location:   strings.TrimSpace(q.Location),
		Type:       q.Type,
		Category:   strings.TrimSpace(q.Category),
		Experience: strings.TrimSpace(q.Experience),
		Page:       p.window(),
	})
	if err != nil {
		return nil, helpers.Pagination{}, err
	}
	return jobs, p.pagination(total), nil
}

// Search ranks active jobs by relevance through the index. Without an index,
// or when the index fails, it degrades to the database substring filter.
func (s *JobService) Search(ctx context.Context, q string, size int) ([]entity.Job, error) {
	q = strings.TrimSpace(q)
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	if s.Index != nil && q != "" {
		ids, err := s.Index.Search(ctx, q, size)
		if err == nil {
			return s.hydrate(ctx, ids), nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("job search index failed, using database")
		}
	}
	jobs, _, err := s.List(ctx, JobQuery{Search: q, PageInput: PageInput{Page: 1, Limit: size}})
	return jobs, err
}

func (s *JobService) hydrate(ctx context.Context, ids []string) []entity.Job {
	out := make([]entity.Job, 0, len(ids))
	for _, id := range ids {
		j, err := s.Jobs.GetByID(ctx, id)
		if err != nil {
			// index can lag behind deletes
			continue
		}
		if j.IsActive {
			out = append(out, *j)
		}
	}
	return out
}

func (s *JobService) Get(ctx context.Context, id string) (*entity.Job, error) {
	return s.Jobs.GetByID(ctx, id)
}

// ListForEmployer lists the actor's own jobs. status is "active", "inactive"
// or empty for both.
func (s *JobService) ListForEmployer(ctx context.Context, employerID, status string, page PageInput) ([]entity.Job, helpers.Pagination, error) {
	p := page.normalize()
	jobs, total, err := s.Jobs.List(ctx, repo.JobFilter{
		EmployerID: employerID,
		Active:     activeFilter(status),
		Page:       p.window(),
	})
	if err != nil {
		return nil, helpers.Pagination{}, err
	}
	return jobs, p.pagination(total), nil
}

func activeFilter(status string) *bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active":
		v := true
		return &v
	case "inactive":
		v := false
		return &v
	}
	return nil
}

func (s *JobService) Create(ctx context.Context, employerID string, in JobInput) (*entity.Job, error) {
	if !in.Type.Valid() {
		return nil, apperr.Invalid("type", "is not a valid job type")
	}
	j := &entity.Job{IsActive: true, EmployerID: employerID}
	JobPatch{
		Title: &in.Title, Description: &in.Description, Company: &in.Company, Salary: &in.Salary,
		Location: &in.Location, Type: &in.Type, Category: &in.Category, Experience: &in.Experience,
		Requirements: &in.Requirements, Benefits: &in.Benefits,
	}.apply(j)
	if err := s.Jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"job_id": j.ID, "user_id": employerID}).Info("job created")
	}
	s.reindex(ctx, j)
	return j, nil
}

// owned loads a job the employer owns. Missing and foreign jobs look the same.
func (s *JobService) owned(ctx context.Context, employerID, id string) (*entity.Job, error) {
	j, err := s.Jobs.GetOwnedBy(ctx, id, employerID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Denied("job")
		}
		return nil, err
	}
	return j, nil
}

func (s *JobService) Update(ctx context.Context, employerID, id string, patch JobPatch) (*entity.Job, error) {
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, apperr.Invalid("type", "is not a valid job type")
	}
	j, err := s.owned(ctx, employerID, id)
	if err != nil {
		return nil, err
	}
	patch.apply(j)
	if err := s.Jobs.Update(ctx, j); err != nil {
		return nil, err
	}
	s.reindex(ctx, j)
	return j, nil
}

func (s *JobService) Delete(ctx context.Context, employerID, id string) error {
	if _, err := s.owned(ctx, employerID, id); err != nil {
		return err
	}
	if err := s.Jobs.Delete(ctx, id); err != nil {
		return err
	}
	s.unindex(ctx, id)
	return nil
}

// Toggle flips the job's active flag and returns the updated job.
func (s *JobService) Toggle(ctx context.Context, employerID, id string) (*entity.Job, error) {
	j, err := s.owned(ctx, employerID, id)
	if err != nil {
		return nil, err
	}
	j.IsActive = !j.IsActive
	if err := s.Jobs.SetActive(ctx, id, j.IsActive); err != nil {
		return nil, err
	}
	s.reindex(ctx, j)
	return j, nil
}

func (s *JobService) reindex(ctx context.Context, j *entity.Job) {
	syncIndex(ctx, s.Index, s.Logger, j)
}

func (s *JobService) unindex(ctx context.Context, id string) {
	dropIndex(ctx, s.Index, s.Logger, id)
}

func syncIndex(ctx context.Context, index JobIndex, log *logrus.Logger, j *entity.Job) {
	if index == nil {
		return
	}
	if err := index.Put(ctx, j); err != nil && log != nil {
		log.WithFields(logrus.Fields{"job_id": j.ID, "error": err.Error()}).Warn("job index update failed")
	}
}

func dropIndex(ctx context.Context, index JobIndex, log *logrus.Logger, id string) {
	if index == nil {
		return
	}
	if err := index.Remove(ctx, id); err != nil && log != nil {
		log.WithFields(logrus.Fields{"job_id": id, "error": err.Error()}).Warn("job index delete failed")
	}
}

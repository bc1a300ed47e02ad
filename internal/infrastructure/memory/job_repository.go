package memory

import (
	"context"
	"sort"
	"time"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/domain/repository"
)

type jobRepo struct{ s *Store }

func (r *jobRepo) Create(_ context.Context, j *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[j.EmployerID]; !ok {
		return apperr.NotFound("employer")
	}
	r.s.stamp(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	stored := *j
	stored.Employer = nil
	stored.Applications = 0
	r.s.jobs[j.ID] = &stored
	*j = r.s.jobView(&stored)
	return nil
}

func (r *jobRepo) GetByID(_ context.Context, id string) (*entity.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, apperr.NotFound("job")
	}
	out := r.s.jobView(j)
	return &out, nil
}

func (r *jobRepo) GetOwnedBy(_ context.Context, id, employerID string) (*entity.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok || j.EmployerID != employerID {
		return nil, apperr.NotFound("job")
	}
	out := r.s.jobView(j)
	return &out, nil
}

func (r *jobRepo) Update(_ context.Context, j *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.jobs[j.ID]
	if !ok {
		return apperr.NotFound("job")
	}
	stored := *j
	stored.EmployerID = cur.EmployerID
	stored.CreatedAt = cur.CreatedAt
	stored.UpdatedAt = r.s.now()
	stored.Employer = nil
	stored.Applications = 0
	r.s.jobs[j.ID] = &stored
	*j = r.s.jobView(&stored)
	return nil
}

func (r *jobRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return apperr.NotFound("job")
	}
	j.IsActive = active
	j.UpdatedAt = r.s.now()
	return nil
}

func (r *jobRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[id]; !ok {
		return apperr.NotFound("job")
	}
	r.s.deleteJobLocked(id)
	return nil
}

func matchJob(j *entity.Job, f repository.JobFilter) bool {
	if f.EmployerID != "" && j.EmployerID != f.EmployerID {
		return false
	}
	if f.Active != nil && j.IsActive != *f.Active {
		return false
	}
	if f.Search != "" && !containsFold(j.Title, f.Search) && !containsFold(j.Description, f.Search) &&
		!containsFold(j.Company, f.Search) && !containsFold(j.Requirements, f.Search) {
		return false
	}
	if f.Location != "" && !containsFold(j.Location, f.Location) {
		return false
	}
	if f.Type != "" && j.Type != f.Type {
		return false
	}
	if f.Category != "" && !containsFold(j.Category, f.Category) {
		return false
	}
	if f.Experience != "" && !containsFold(j.Experience, f.Experience) {
		return false
	}
	return true
}

func (r *jobRepo) List(_ context.Context, f repository.JobFilter) ([]entity.Job, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0, len(r.s.jobs))
	for id, j := range r.s.jobs {
		if matchJob(j, f) {
			ids = append(ids, id)
		}
	}
	r.s.newestFirst(ids, func(id string) time.Time { return r.s.jobs[id].CreatedAt })
	total := len(ids)
	ids = window(ids, f.Page)
	out := make([]entity.Job, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.jobView(r.s.jobs[id]))
	}
	return out, total, nil
}

func (r *jobRepo) Count(_ context.Context, active *bool) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, j := range r.s.jobs {
		if active == nil || j.IsActive == *active {
			n++
		}
	}
	return n, nil
}

func (r *jobRepo) CountByType(_ context.Context) ([]entity.TypeCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := map[entity.JobType]int{}
	for _, j := range r.s.jobs {
		counts[j.Type]++
	}
	out := make([]entity.TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, entity.TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

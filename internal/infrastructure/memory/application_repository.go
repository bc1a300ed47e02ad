package memory

import (
	"context"
	"time"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/domain/repository"
)

type applicationRepo struct{ s *Store }

func (r *applicationRepo) Create(_ context.Context, a *entity.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[a.JobID]; !ok {
		return apperr.NotFound("job")
	}
	if _, ok := r.s.users[a.SeekerID]; !ok {
		return apperr.NotFound("user")
	}
	for _, cur := range r.s.apps {
		if cur.JobID == a.JobID && cur.SeekerID == a.SeekerID {
			return apperr.Conflict("already applied for this job")
		}
	}
	if a.Status == "" {
		a.Status = entity.StatusApplied
	}
	r.s.stamp(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	stored := *a
	stored.Job, stored.Seeker = nil, nil
	r.s.apps[a.ID] = &stored
	*a = r.s.applicationView(&stored)
	return nil
}

func (r *applicationRepo) GetOwnedByEmployer(_ context.Context, id, employerID string) (*entity.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.apps[id]
	if !ok {
		return nil, apperr.NotFound("application")
	}
	j, ok := r.s.jobs[a.JobID]
	if !ok || j.EmployerID != employerID {
		return nil, apperr.NotFound("application")
	}
	out := r.s.applicationView(a)
	return &out, nil
}

func (r *applicationRepo) UpdateStatus(_ context.Context, id string, status entity.ApplicationStatus) (*entity.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.apps[id]
	if !ok {
		return nil, apperr.NotFound("application")
	}
	a.Status = status
	a.UpdatedAt = r.s.now()
	out := r.s.applicationView(a)
	return &out, nil
}

func (r *applicationRepo) List(_ context.Context, f repository.ApplicationFilter) ([]entity.Application, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0, len(r.s.apps))
	for id, a := range r.s.apps {
		if f.JobID != "" && a.JobID != f.JobID {
			continue
		}
		if f.SeekerID != "" && a.SeekerID != f.SeekerID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		ids = append(ids, id)
	}
	r.s.newestFirst(ids, func(id string) time.Time { return r.s.apps[id].CreatedAt })
	total := len(ids)
	ids = window(ids, f.Page)
	out := make([]entity.Application, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.applicationView(r.s.apps[id]))
	}
	return out, total, nil
}

func ordered(counts map[entity.ApplicationStatus]int) []entity.StatusCount {
	out := make([]entity.StatusCount, 0, len(counts))
	for _, st := range entity.ApplicationStatuses {
		if n := counts[st]; n > 0 {
			out = append(out, entity.StatusCount{Status: st, Count: n})
		}
	}
	return out
}

func (r *applicationRepo) StatsFor(_ context.Context, userID string) ([]entity.StatusCount, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := map[entity.ApplicationStatus]int{}
	total := 0
	for _, a := range r.s.apps {
		owner := ""
		if j, ok := r.s.jobs[a.JobID]; ok {
			owner = j.EmployerID
		}
		if a.SeekerID != userID && owner != userID {
			continue
		}
		counts[a.Status]++
		total++
	}
	return ordered(counts), total, nil
}

func (r *applicationRepo) CountByStatus(_ context.Context) ([]entity.StatusCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := map[entity.ApplicationStatus]int{}
	for _, a := range r.s.apps {
		counts[a.Status]++
	}
	return ordered(counts), nil
}

func (r *applicationRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.apps), nil
}

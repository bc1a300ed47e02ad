// Package memory is a process-local implementation of the repository
// interfaces. It enforces the same uniqueness and cascade rules as the
// Postgres schema and backs tests and APP_STORAGE=memory.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/domain/repository"
)

type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	// rows keyed by id; order holds insertion sequence for stable sorting
	users map[string]*entity.User
	jobs  map[string]*entity.Job
	apps  map[string]*entity.Application
	order map[string]int64
}

func New() *Store {
	return &Store{
		now:   func() time.Time { return time.Now().UTC() },
		users: map[string]*entity.User{},
		jobs:  map[string]*entity.Job{},
		apps:  map[string]*entity.Application{},
		order: map[string]int64{},
	}
}

// WithClock replaces the time source for created/updated stamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Users() repository.UserRepository               { return &userRepo{s} }
func (s *Store) Jobs() repository.JobRepository                 { return &jobRepo{s} }
func (s *Store) Applications() repository.ApplicationRepository { return &applicationRepo{s} }

// stamp assigns id and timestamps for a new row. Callers hold mu.
func (s *Store) stamp(id *string, created, updated *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := s.now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
	s.seq++
	s.order[*id] = s.seq
}

// newestFirst sorts ids by creation time then insertion order, descending.
func (s *Store) newestFirst(ids []string, created func(string) time.Time) {
	sort.SliceStable(ids, func(i, j int) bool {
		ci, cj := created(ids[i]), created(ids[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return s.order[ids[i]] > s.order[ids[j]]
	})
}

func window[T any](rows []T, p repository.Page) []T {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Offset >= len(rows) {
		return []T{}
	}
	rows = rows[p.Offset:]
	if p.Limit > 0 && p.Limit < len(rows) {
		rows = rows[:p.Limit]
	}
	return rows
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (s *Store) summaryOf(userID string) *entity.UserSummary {
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	sum := u.Summary()
	return &sum
}

func (s *Store) applicationCount(jobID string) int {
	n := 0
	for _, a := range s.apps {
		if a.JobID == jobID {
			n++
		}
	}
	return n
}

// jobView copies a stored job and fills its derived fields.
func (s *Store) jobView(j *entity.Job) entity.Job {
	out := *j
	out.Employer = s.summaryOf(j.EmployerID)
	out.Applications = s.applicationCount(j.ID)
	return out
}

func (s *Store) applicationView(a *entity.Application) entity.Application {
	out := *a
	if j, ok := s.jobs[a.JobID]; ok {
		js := j.Summary()
		js.Employer = s.summaryOf(j.EmployerID)
		out.Job = &js
	}
	out.Seeker = s.summaryOf(a.SeekerID)
	return out
}

// deleteJobLocked removes a job and its applications.
func (s *Store) deleteJobLocked(id string) {
	for aid, a := range s.apps {
		if a.JobID == id {
			delete(s.apps, aid)
		}
	}
	delete(s.jobs, id)
}

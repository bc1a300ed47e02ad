package memory

import (
	"context"
	"time"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/domain/repository"
)

type userRepo struct{ s *Store }

func cloneUser(u *entity.User) *entity.User {
	out := *u
	if u.VerificationToken != nil {
		t := *u.VerificationToken
		out.VerificationToken = &t
	}
	if u.VerificationTokenExpires != nil {
		t := *u.VerificationTokenExpires
		out.VerificationTokenExpires = &t
	}
	return &out
}

func (r *userRepo) emailTaken(email, exceptID string) bool {
	email = entity.NormalizeEmail(email)
	for id, u := range r.s.users {
		if id != exceptID && entity.NormalizeEmail(u.Email) == email {
			return true
		}
	}
	return false
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, "") {
		return apperr.Conflict("email already registered")
	}
	if u.ID != "" {
		if _, ok := r.s.users[u.ID]; ok {
			return apperr.Conflict("user id already exists")
		}
	}
	r.s.stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	return cloneUser(u), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = entity.NormalizeEmail(email)
	for _, u := range r.s.users {
		if entity.NormalizeEmail(u.Email) == email {
			return cloneUser(u), nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (r *userRepo) GetByVerificationToken(_ context.Context, token string, now time.Time) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.VerificationToken == nil || *u.VerificationToken != token {
			continue
		}
		if u.VerificationTokenExpires == nil || !u.VerificationTokenExpires.After(now) {
			continue
		}
		return cloneUser(u), nil
	}
	return nil, apperr.NotFound("user")
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return apperr.NotFound("user")
	}
	if r.emailTaken(u.Email, u.ID) {
		return apperr.Conflict("email already registered")
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = r.s.now()
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return apperr.NotFound("user")
	}
	for jid, j := range r.s.jobs {
		if j.EmployerID == id {
			r.s.deleteJobLocked(jid)
		}
	}
	for aid, a := range r.s.apps {
		if a.SeekerID == id {
			delete(r.s.apps, aid)
		}
	}
	delete(r.s.users, id)
	return nil
}

func (r *userRepo) List(_ context.Context, f repository.UserFilter) ([]entity.UserListItem, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0, len(r.s.users))
	for id, u := range r.s.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Search != "" && !containsFold(u.Name, f.Search) && !containsFold(u.Email, f.Search) && !containsFold(u.Location, f.Search) {
			continue
		}
		ids = append(ids, id)
	}
	r.s.newestFirst(ids, func(id string) time.Time { return r.s.users[id].CreatedAt })
	total := len(ids)
	ids = window(ids, f.Page)

	out := make([]entity.UserListItem, 0, len(ids))
	for _, id := range ids {
		item := entity.UserListItem{PublicUser: r.s.users[id].Public()}
		for _, j := range r.s.jobs {
			if j.EmployerID == id {
				item.JobsPosted++
			}
		}
		for _, a := range r.s.apps {
			if a.SeekerID == id {
				item.Applications++
			}
		}
		out = append(out, item)
	}
	return out, total, nil
}

func (r *userRepo) Count(_ context.Context, role entity.Role) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if role == "" {
		return len(r.s.users), nil
	}
	n := 0
	for _, u := range r.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *userRepo) Recent(_ context.Context, n int) ([]entity.PublicUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0, len(r.s.users))
	for id := range r.s.users {
		ids = append(ids, id)
	}
	r.s.newestFirst(ids, func(id string) time.Time { return r.s.users[id].CreatedAt })
	ids = window(ids, repository.Page{Limit: n})
	out := make([]entity.PublicUser, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.users[id].Public())
	}
	return out, nil
}

package application

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/go-jobboard-api/internal/domain/repository"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
)

const (
	dashboardCacheKey = "admin:dashboard"
	dashboardRecent   = 5

	ActionChangeRole   = "change-role"
	ActionToggleActive = "toggle-active"
	ActionDelete       = "delete"
)

type AdminService struct {
	Users    repo.UserRepository
	Jobs     repo.JobRepository
	Apps     repo.ApplicationRepository
	Index    JobIndex      // optional
	Redis    *redis.Client // optional dashboard cache
	CacheTTL time.Duration
	Logger   *logrus.Logger
}

func NewAdminService(users repo.UserRepository, jobs repo.JobRepository, apps repo.ApplicationRepository, index JobIndex, rdb *redis.Client, logger *logrus.Logger) *AdminService {
	return &AdminService{Users: users, Jobs: jobs, Apps: apps, Index: index, Redis: rdb, CacheTTL: 30 * time.Second, Logger: logger}
}

type DashboardTotals struct {
	Users        int `json:"totalUsers"`
	Jobs         int `json:"totalJobs"`
	Applications int `json:"totalApplications"`
	ActiveJobs   int `json:"activeJobs"`
	Employers    int `json:"employers"`
	Seekers      int `json:"seekers"`
}

type Dashboard struct {
	Stats                DashboardTotals      `json:"stats"`
	ApplicationsByStatus []entity.StatusCount `json:"applicationsByStatus"`
	JobsByType           []entity.TypeCount   `json:"jobsByType"`
	RecentUsers          []entity.PublicUser  `json:"recentUsers"`
	RecentJobs           []entity.Job         `json:"recentJobs"`
}

// Dashboard aggregates platform counters. The aggregate queries run
// concurrently and the result is cached briefly when Redis is configured.
func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	d, err := helpers.RedisRemember(ctx, s.Redis, dashboardCacheKey, s.CacheTTL, s.loadDashboard, func(err error) {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("dashboard cache failed")
		}
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *AdminService) loadDashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	active := true
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.Stats.Users, err = s.Users.Count(gctx, ""); return })
	g.Go(func() (err error) { d.Stats.Employers, err = s.Users.Count(gctx, entity.RoleEmployer); return })
	g.Go(func() (err error) { d.Stats.Seekers, err = s.Users.Count(gctx, entity.RoleSeeker); return })
	g.Go(func() (err error) { d.Stats.Jobs, err = s.Jobs.Count(gctx, nil); return })
	g.Go(func() (err error) { d.Stats.ActiveJobs, err = s.Jobs.Count(gctx, &active); return })
	g.Go(func() (err error) { d.Stats.Applications, err = s.Apps.Count(gctx); return })
	g.Go(func() (err error) { d.ApplicationsByStatus, err = s.Apps.CountByStatus(gctx); return })
	g.Go(func() (err error) { d.JobsByType, err = s.Jobs.CountByType(gctx); return })
	g.Go(func() (err error) { d.RecentUsers, err = s.Users.Recent(gctx, dashboardRecent); return })
	g.Go(func() (err error) {
		d.RecentJobs, _, err = s.Jobs.List(gctx, repo.JobFilter{Page: repo.Page{Limit: dashboardRecent}})
		return
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func (s *AdminService) invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, dashboardCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("dashboard cache invalidate failed")
	}
}

type AdminJobQuery struct {
	Status string // active, inactive or empty
	Search string
	PageInput
}

// ListJobs lists every job regardless of owner or state.
func (s *AdminService) ListJobs(ctx context.Context, q AdminJobQuery) ([]entity.Job, helpers.Pagination, error) {
	p := q.PageInput.normalize()
	jobs, total, err := s.Jobs.List(ctx, repo.JobFilter{
		Active: activeFilter(q.Status),
		Search: strings.TrimSpace(q.Search),
		Page:   p.window(),
	})
	if err != nil {
		return nil, helpers.Pagination{}, err
	}
	return jobs, p.pagination(total), nil
}

// ManageUser applies an admin action to a user. Only change-role is supported.
func (s *AdminService) ManageUser(ctx context.Context, actor entity.AuthUser, id, action string, role entity.Role) (*entity.PublicUser, error) {
	if action != ActionChangeRole || !role.Valid() {
		return nil, apperr.ErrInvalidAction
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Role = role
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": id, "actor_id": actor.ID, "role": role}).Info("user role changed")
	}
	s.invalidate(ctx)
	pub := u.Public()
	return &pub, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, actor entity.AuthUser, id string) error {
	if actor.ID == id {
		return apperr.ErrSelfDelete
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": id, "actor_id": actor.ID}).Info("user deleted by admin")
	}
	s.invalidate(ctx)
	return nil
}

// ManageJob toggles or deletes any job. A toggle returns the updated job;
// delete returns nil.
func (s *AdminService) ManageJob(ctx context.Context, id, action string) (*entity.Job, error) {
	switch action {
	case ActionToggleActive:
		j, err := s.Jobs.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		j.IsActive = !j.IsActive
		if err := s.Jobs.SetActive(ctx, id, j.IsActive); err != nil {
			return nil, err
		}
		syncIndex(ctx, s.Index, s.Logger, j)
		s.invalidate(ctx)
		return j, nil
	case ActionDelete:
		if err := s.Jobs.Delete(ctx, id); err != nil {
			return nil, err
		}
		dropIndex(ctx, s.Index, s.Logger, id)
		s.invalidate(ctx)
		return nil, nil
	}
	return nil, apperr.ErrInvalidAction
}

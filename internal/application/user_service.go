package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/go-jobboard-api/internal/domain/repository"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
)

// profileRecent bounds the jobs and applications shown on a profile.
const profileRecent = 10

// Upload kinds and their object prefixes.
const (
	UploadAvatar = "avatars"
	UploadResume = "resumes"
)

type UserService struct {
	Users   repo.UserRepository
	Jobs    repo.JobRepository
	Apps    repo.ApplicationRepository
	Storage ObjectStorage // optional
	Logger  *logrus.Logger
}

func NewUserService(users repo.UserRepository, jobs repo.JobRepository, apps repo.ApplicationRepository, storage ObjectStorage, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Jobs: jobs, Apps: apps, Storage: storage, Logger: logger}
}

type UserQuery struct {
	Role   entity.Role
	Search string
	PageInput
}

func (s *UserService) List(ctx context.Context, q UserQuery) ([]entity.UserListItem, helpers.Pagination, error) {
	p := q.PageInput.normalize()
	users, total, err := s.Users.List(ctx, repo.UserFilter{
		Role:   q.Role,
		Search: strings.TrimSpace(q.Search),
		Page:   p.window(),
	})
	if err != nil {
		return nil, helpers.Pagination{}, err
	}
	return users, p.pagination(total), nil
}

// Profile is a user's public page with their latest activity.
type Profile struct {
	entity.PublicUser
	Jobs         []entity.Job         `json:"jobs"`
	Applications []entity.Application `json:"applications"`
}

func (s *UserService) Get(ctx context.Context, id string) (*Profile, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	active := true
	recent := repo.Page{Limit: profileRecent}
	jobs, _, err := s.Jobs.List(ctx, repo.JobFilter{EmployerID: u.ID, Active: &active, Page: recent})
	if err != nil {
		return nil, err
	}
	apps, _, err := s.Apps.List(ctx, repo.ApplicationFilter{SeekerID: u.ID, Page: recent})
	if err != nil {
		return nil, err
	}
	return &Profile{PublicUser: u.Public(), Jobs: jobs, Applications: apps}, nil
}

// selfOrAdmin rejects a non-admin acting on another user's account.
func selfOrAdmin(actor entity.AuthUser, targetID string) error {
	if actor.ID != targetID && !actor.IsAdmin() {
		return apperr.Denied("user")
	}
	return nil
}

func (s *UserService) Update(ctx context.Context, actor entity.AuthUser, id string, in ProfileInput) (*entity.PublicUser, error) {
	if err := selfOrAdmin(actor, id); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(u)
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

// Delete removes the account with its jobs and applications.
func (s *UserService) Delete(ctx context.Context, actor entity.AuthUser, id string) error {
	if err := selfOrAdmin(actor, id); err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": id, "actor_id": actor.ID}).Info("user deleted")
	}
	return nil
}

// Upload stores a file under kind/{userID}/{uuid}{ext} and records its URL
// as the user's avatar or resume.
func (s *UserService) Upload(ctx context.Context, userID, kind, filename, contentType string, r io.Reader) (*entity.PublicUser, error) {
	if s.Storage == nil {
		return nil, apperr.ErrStorageUnavailable
	}
	if kind != UploadAvatar && kind != UploadResume {
		return nil, apperr.Invalid("kind", "must be avatars or resumes")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join(kind, userID, uuid.NewString()+ext))
	url, err := s.Storage.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		helpers.LogError(s.Logger, "upload failed", err, logrus.Fields{"user_id": userID, "object": objectPath})
		return nil, err
	}

	if kind == UploadAvatar {
		u.AvatarURL = url
	} else {
		u.ResumeURL = url
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

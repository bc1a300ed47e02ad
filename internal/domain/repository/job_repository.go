package repository

import (
	"context"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
)

// JobFilter narrows job listings. Zero values mean "no constraint".
type JobFilter struct {
	EmployerID string
	Active     *bool
	Search     string // title, description, company, requirements
	Location   string
	Type       entity.JobType
	Category   string
	Experience string
	Page       Page
}

// JobRepository defines job persistence. Listings are newest first and carry
// the employer summary and application count.
type JobRepository interface {
	Create(ctx context.Context, j *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	// GetOwnedBy returns apperr.ErrNotFound both for a missing job and for a
	// job owned by someone else.
	GetOwnedBy(ctx context.Context, id, employerID string) (*entity.Job, error)
	Update(ctx context.Context, j *entity.Job) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f JobFilter) ([]entity.Job, int, error)
	Count(ctx context.Context, active *bool) (int, error)
	CountByType(ctx context.Context) ([]entity.TypeCount, error)
}

package repository

import (
	"context"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
)

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	JobID    string
	SeekerID string
	Status   entity.ApplicationStatus
	Page     Page
}

// ApplicationRepository defines application persistence. The (job, seeker)
// pair is unique at the storage layer and Create reports a duplicate as
// apperr.ErrConflict.
type ApplicationRepository interface {
	Create(ctx context.Context, a *entity.Application) error
	// GetOwnedByEmployer resolves the application through its job and only
	// matches when the job belongs to employerID. Job and Seeker are filled.
	GetOwnedByEmployer(ctx context.Context, id, employerID string) (*entity.Application, error)
	UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus) (*entity.Application, error)
	List(ctx context.Context, f ApplicationFilter) ([]entity.Application, int, error)
	// StatsFor groups applications where userID is the seeker or the job's employer.
	StatsFor(ctx context.Context, userID string) ([]entity.StatusCount, int, error)
	CountByStatus(ctx context.Context) ([]entity.StatusCount, error)
	Count(ctx context.Context) (int, error)
}

package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
)

// Page is an offset window into an ordered listing.
type Page struct {
	Limit  int
	Offset int
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role   entity.Role
	Search string // name, email or location, case-insensitive
	Page   Page
}

// UserRepository defines the interface for user-related database operations.
// Lookups return apperr.ErrNotFound when no row matches; Create returns
// apperr.ErrConflict when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByVerificationToken only matches tokens that expire after now.
	GetByVerificationToken(ctx context.Context, token string, now time.Time) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f UserFilter) ([]entity.UserListItem, int, error)
	Count(ctx context.Context, role entity.Role) (int, error)
	Recent(ctx context.Context, n int) ([]entity.PublicUser, error)
}

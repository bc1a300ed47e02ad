package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field and never leave
// the application layer; use Public() for anything sent to clients.
type User struct {
	ID                       string
	Email                    string
	Password                 string
	Name                     string
	Role                     Role
	Bio                      string
	Phone                    string
	Location                 string
	AvatarURL                string
	ResumeURL                string
	IsVerified               bool
	VerificationToken        *string
	VerificationTokenExpires *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// PublicUser is the password-free projection of a User.
type PublicUser struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	Bio        string    `json:"bio,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Location   string    `json:"location,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	Resume     string    `json:"resume,omitempty"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Bio:        u.Bio,
		Phone:      u.Phone,
		Location:   u.Location,
		Avatar:     u.AvatarURL,
		Resume:     u.ResumeURL,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// AuthUser is what the authentication gate attaches to a request.
type AuthUser struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	IsVerified bool      `json:"isVerified"`
	Avatar     string    `json:"avatar,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u *User) Auth() AuthUser {
	return AuthUser{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		Avatar:     u.AvatarURL,
		CreatedAt:  u.CreatedAt,
	}
}

func (a AuthUser) IsAdmin() bool { return a.Role == RoleAdmin }

// UserSummary is the short form embedded in jobs and applications.
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Resume   string `json:"resume,omitempty"`
}

// UserListItem is a row of the admin user listing.
type UserListItem struct {
	PublicUser
	JobsPosted   int `json:"jobsPosted"`
	Applications int `json:"applications"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Location: u.Location,
		Avatar:   u.AvatarURL,
		Bio:      u.Bio,
		Phone:    u.Phone,
		Resume:   u.ResumeURL,
	}
}

// NormalizeEmail is the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/go-jobboard-api/internal/domain/repository"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
	mailtpl "github.com/oksasatya/go-jobboard-api/pkg/mailer/templates"
)

// verificationTokenBytes yields a 64 character hex token.
const verificationTokenBytes = 32

type AuthOptions struct {
	BcryptCost      int
	VerificationTTL time.Duration
	// VerifyURL builds the link put in verification emails.
	VerifyURL func(token string) string
}

type AuthService struct {
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Notifier Notifier
	Logger   *logrus.Logger
	opts     AuthOptions
	now      func() time.Time
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, n Notifier, logger *logrus.Logger, opts AuthOptions) *AuthService {
	if opts.VerificationTTL <= 0 {
		opts.VerificationTTL = 24 * time.Hour
	}
	if opts.VerifyURL == nil {
		opts.VerifyURL = func(token string) string { return "/verify-email?token=" + token }
	}
	return &AuthService{Users: users, JWT: jwt, Notifier: n, Logger: logger, opts: opts, now: systemClock}
}

// WithClock replaces the time source, used by tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     entity.Role
}

// Session is a signed-in user with their bearer token.
type Session struct {
	User      entity.PublicUser `json:"user"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

func (s *AuthService) newVerificationToken() (string, time.Time, error) {
	token, err := helpers.GenRandomHex(verificationTokenBytes)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, s.now().Add(s.opts.VerificationTTL), nil
}

func (s *AuthService) sendVerification(ctx context.Context, u *entity.User) {
	args := mailtpl.NewVerifyEmailData(u.Name, s.opts.VerifyURL(*u.VerificationToken),
		mailtpl.WithExpiresAt(*u.VerificationTokenExpires))
	notify(ctx, s.Notifier, s.Logger, u.Email, mailtpl.VerifyEmail, args)
}

// Register creates an unverified account and queues the verification email.
// Email uniqueness is enforced by storage.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.PublicUser, error) {
	email := entity.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	role := in.Role
	if role == "" {
		role = entity.RoleSeeker
	}
	if role != entity.RoleSeeker && role != entity.RoleEmployer {
		return nil, apperr.Invalid("role", "must be one of: EMPLOYER, SEEKER")
	}

	hash, err := helpers.HashPassword(in.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}
	token, expires, err := s.newVerificationToken()
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:                    email,
		Password:                 hash,
		Name:                     name,
		Role:                     role,
		VerificationToken:        &token,
		VerificationTokenExpires: &expires,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("user already exists with this email")
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	}

	s.sendVerification(ctx, u)
	pub := u.Public()
	return &pub, nil
}

// VerifyEmail consumes a live verification token and signs the user in.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperr.Invalid("token", "is required")
	}
	u, err := s.Users.GetByVerificationToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidVerificationToken
		}
		return nil, err
	}

	u.IsVerified = true
	u.VerificationToken = nil
	u.VerificationTokenExpires = nil
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}

	sess, err := s.session(u)
	if err != nil {
		return nil, err
	}
	notify(ctx, s.Notifier, s.Logger, u.Email, mailtpl.Welcome, mailtpl.NewWelcomeData(u.Name, string(u.Role)))
	return sess, nil
}

// ResendVerification rotates the token of an unverified account.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if u.IsVerified {
		return apperr.ErrAlreadyVerified
	}
	token, expires, err := s.newVerificationToken()
	if err != nil {
		return err
	}
	u.VerificationToken = &token
	u.VerificationTokenExpires = &expires
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}
	s.sendVerification(ctx, u)
	return nil
}

// Login checks credentials. Unknown email and wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperr.ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, apperr.ErrEmailNotVerified
	}
	return s.session(u)
}

func (s *AuthService) session(u *entity.User) (*Session, error) {
	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		helpers.LogError(s.Logger, "issue token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, err
	}
	return &Session{User: u.Public(), Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.PublicUser, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

// ProfileInput is a partial update; nil fields are left alone.
type ProfileInput struct {
	Name     *string
	Bio      *string
	Phone    *string
	Location *string
}

func (in ProfileInput) apply(u *entity.User) {
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Location != nil {
		u.Location = strings.TrimSpace(*in.Location)
	}
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*entity.PublicUser, error) {
	u, err := s.Users.GetByID(ctx, userID)
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

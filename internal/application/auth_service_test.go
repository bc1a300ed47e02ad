package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	mailtpl "github.com/oksasatya/go-jobboard-api/pkg/mailer/templates"
)

func register(t *testing.T, f *fixture, email string, role entity.Role) *entity.PublicUser {
	t.Helper()
	u, err := f.auth.Register(context.Background(), RegisterInput{Email: email, Password: "secret123", Name: " Jane ", Role: role})
	require.NoError(t, err)
	return u
}

func pendingToken(t *testing.T, f *fixture, email string) string {
	t.Helper()
	u, err := f.store.Users().GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, u.VerificationToken)
	return *u.VerificationToken
}

func TestRegister_NormalizesAndQueuesVerification(t *testing.T) {
	f := newFixture(t)
	u := register(t, f, "  Jane@Example.COM ", "")

	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "Jane", u.Name)
	assert.Equal(t, entity.RoleSeeker, u.Role)
	assert.False(t, u.IsVerified)

	token := pendingToken(t, f, "jane@example.com")
	assert.Len(t, token, 64)

	require.Equal(t, []string{mailtpl.VerifyEmail}, f.notes.kinds())
	n := f.notes.last()
	assert.Equal(t, "jane@example.com", n.To)
	assert.Equal(t, "http://client.test/verify-email?token="+token, n.Args["VerifyURL"])
}

func TestRegister_DuplicateEmailIgnoresCase(t *testing.T) {
	f := newFixture(t)
	register(t, f, "jane@example.com", entity.RoleEmployer)

	_, err := f.auth.Register(context.Background(), RegisterInput{Email: "JANE@example.com", Password: "secret123", Name: "Jane"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "user already exists with this email", err.Error())
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "secret123", Name: "A", Role: entity.RoleAdmin})

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "role")
}

func TestVerifyEmail_SignsInOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pub := register(t, f, "jane@example.com", entity.RoleEmployer)
	token := pendingToken(t, f, "jane@example.com")

	sess, err := f.auth.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, sess.User.IsVerified)

	uid, err := f.jwt.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, pub.ID, uid)

	stored, err := f.store.Users().GetByID(ctx, pub.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.VerificationToken)
	assert.Nil(t, stored.VerificationTokenExpires)

	assert.Equal(t, []string{mailtpl.VerifyEmail, mailtpl.Welcome}, f.notes.kinds())
	assert.Equal(t, "EMPLOYER", f.notes.last().Args["Role"])

	_, err = f.auth.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, apperr.ErrInvalidVerificationToken)
}

func TestVerifyEmail_ExpiredToken(t *testing.T) {
	f := newFixture(t)
	register(t, f, "jane@example.com", "")
	token := pendingToken(t, f, "jane@example.com")

	f.auth.WithClock(func() time.Time { return time.Now().UTC().Add(25 * time.Hour) })
	_, err := f.auth.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, apperr.ErrInvalidVerificationToken)
}

func TestVerifyEmail_BlankToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.VerifyEmail(context.Background(), "  ")
	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	register(t, f, "jane@example.com", "")

	_, err := f.auth.Login(ctx, "jane@example.com", "secret123")
	assert.ErrorIs(t, err, apperr.ErrEmailNotVerified, "unverified accounts cannot sign in")

	_, err = f.auth.Login(ctx, "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = f.auth.VerifyEmail(ctx, pendingToken(t, f, "jane@example.com"))
	require.NoError(t, err)

	sess, err := f.auth.Login(ctx, " JANE@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "jane@example.com", sess.User.Email)
}

func TestResendVerification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.auth.ResendVerification(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	register(t, f, "jane@example.com", "")
	first := pendingToken(t, f, "jane@example.com")

	require.NoError(t, f.auth.ResendVerification(ctx, "Jane@Example.com"))
	second := pendingToken(t, f, "jane@example.com")
	assert.NotEqual(t, first, second)
	assert.Equal(t, []string{mailtpl.VerifyEmail, mailtpl.VerifyEmail}, f.notes.kinds())

	_, err = f.auth.VerifyEmail(ctx, first)
	assert.ErrorIs(t, err, apperr.ErrInvalidVerificationToken, "rotated token is dead")

	_, err = f.auth.VerifyEmail(ctx, second)
	require.NoError(t, err)
	assert.ErrorIs(t, f.auth.ResendVerification(ctx, "jane@example.com"), apperr.ErrAlreadyVerified)
}

func TestRegister_NotifierFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.notes.err = errors.New("queue full")

	_, err := f.auth.Register(context.Background(), RegisterInput{Email: "jane@example.com", Password: "secret123", Name: "Jane"})
	assert.NoError(t, err)
}

func TestUpdateProfile_Partial(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "jane@example.com", entity.RoleSeeker)
	bio := "Go developer"

	pub, err := f.auth.UpdateProfile(context.Background(), u.ID, ProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Go developer", pub.Bio)
	assert.Equal(t, u.Name, pub.Name)

	_, err = f.auth.Profile(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

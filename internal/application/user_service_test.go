package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
)

func TestUserSelfOrAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin@example.com", entity.RoleAdmin)
	alice := f.user(t, "alice@example.com", entity.RoleSeeker)
	bob := f.user(t, "bob@example.com", entity.RoleSeeker)
	name := "Mallory"

	_, err := f.users.Update(ctx, bob.Auth(), alice.ID, ProfileInput{Name: &name})
	assert.True(t, apperr.IsAuthorization(err))
	assert.True(t, apperr.IsAuthorization(f.users.Delete(ctx, bob.Auth(), alice.ID)))

	bio := "Go developer"
	u, err := f.users.Update(ctx, alice.Auth(), alice.ID, ProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, u.Bio)
	assert.Equal(t, alice.Name, u.Name)

	u, err = f.users.Update(ctx, admin.Auth(), alice.ID, ProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, u.Name)

	require.NoError(t, f.users.Delete(ctx, bob.Auth(), bob.ID))
	_, err = f.users.Get(ctx, bob.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserListAndProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.user(t, "emp@example.com", entity.RoleEmployer)
	seeker := f.user(t, "seeker@example.com", entity.RoleSeeker)
	j := f.job(t, emp.ID, "Backend Engineer")
	_, err := f.apps.Apply(ctx, seeker.ID, j.ID, "")
	require.NoError(t, err)

	users, p, err := f.users.List(ctx, UserQuery{Role: entity.RoleEmployer})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, 1, users[0].JobsPosted)
	assert.Equal(t, 1, p.TotalResults)

	users, _, err = f.users.List(ctx, UserQuery{Search: "SEEKER"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, 1, users[0].Applications)

	prof, err := f.users.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, emp.Email, prof.Email)
	assert.Len(t, prof.Jobs, 1)
	assert.Empty(t, prof.Applications)

	prof, err = f.users.Get(ctx, seeker.ID)
	require.NoError(t, err)
	assert.Len(t, prof.Applications, 1)
}

func TestUserUpload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "alice@example.com", entity.RoleSeeker)

	_, err := f.users.Upload(ctx, u.ID, UploadAvatar, "me.png", "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, apperr.ErrStorageUnavailable)

	store := &fakeStorage{}
	f.users.Storage = store

	pub, err := f.users.Upload(ctx, u.ID, UploadAvatar, "Me.PNG", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(store.path, "avatars/"+u.ID+"/"), store.path)
	assert.True(t, strings.HasSuffix(store.path, ".png"), store.path)
	assert.Equal(t, "image/png", store.contentType)
	assert.Equal(t, []byte("png-bytes"), store.body)
	assert.Equal(t, "https://storage.example.com/bucket/"+store.path, pub.Avatar)

	pub, err = f.users.Upload(ctx, u.ID, UploadResume, "cv.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(store.path, "resumes/"+u.ID+"/"))
	assert.NotEmpty(t, pub.Avatar, "avatar survives a resume upload")
	assert.NotEmpty(t, pub.Resume)

	_, err = f.users.Upload(ctx, u.ID, "videos", "a.mp4", "video/mp4", strings.NewReader(""))
	assert.Error(t, err)
}

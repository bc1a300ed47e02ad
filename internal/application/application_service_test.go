package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	mailtpl "github.com/oksasatya/go-jobboard-api/pkg/mailer/templates"
)

type appWorld struct {
	*fixture
	employer, other, seeker *entity.User
	posting                 *entity.Job
}

func newAppWorld(t *testing.T) *appWorld {
	f := newFixture(t)
	w := &appWorld{fixture: f}
	w.employer = f.user(t, "emp@example.com", entity.RoleEmployer)
	w.other = f.user(t, "other@example.com", entity.RoleEmployer)
	w.seeker = f.user(t, "seeker@example.com", entity.RoleSeeker)
	w.posting = f.job(t, w.employer.ID, "Backend Engineer")
	return w
}

func TestApply(t *testing.T) {
	w := newAppWorld(t)
	ctx := context.Background()

	a, err := w.apps.Apply(ctx, w.seeker.ID, w.posting.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApplied, a.Status)
	assert.Equal(t, "I am interested in the Backend Engineer position at Acme.", a.CoverLetter)

	n := w.notes.last()
	assert.Equal(t, mailtpl.ApplicationReceived, n.Kind)
	assert.Equal(t, "seeker@example.com", n.To)
	assert.Equal(t, "Backend Engineer", n.Args["JobTitle"])

	_, err = w.apps.Apply(ctx, w.seeker.ID, w.posting.ID, "Second try with a letter")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "you have already applied for this job", err.Error())

	count, err := w.store.Applications().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestApply_UnavailableJob(t *testing.T) {
	w := newAppWorld(t)
	ctx := context.Background()

	_, err := w.apps.Apply(ctx, w.seeker.ID, "missing", "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = w.jobs.Toggle(ctx, w.employer.ID, w.posting.ID)
	require.NoError(t, err)
	_, err = w.apps.Apply(ctx, w.seeker.ID, w.posting.ID, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound, "inactive jobs take no applications")
}

func TestUpdateStatus(t *testing.T) {
	w := newAppWorld(t)
	ctx := context.Background()
	a, err := w.apps.Apply(ctx, w.seeker.ID, w.posting.ID, "")
	require.NoError(t, err)

	_, err = w.apps.UpdateStatus(ctx, w.other.ID, a.ID, entity.StatusReviewed)
	assert.True(t, apperr.IsAuthorization(err))

	_, err = w.apps.UpdateStatus(ctx, w.employer.ID, a.ID, "MAYBE")
	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))

	for i := 0; i < 2; i++ {
		got, err := w.apps.UpdateStatus(ctx, w.employer.ID, a.ID, entity.StatusHired)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusHired, got.Status)
	}
	// free-form by default, and the seeker hears about every call
	assert.Equal(t, []string{mailtpl.ApplicationReceived, mailtpl.ApplicationStatus, mailtpl.ApplicationStatus}, w.notes.kinds())
	assert.Equal(t, "HIRED", w.notes.last().Args["Status"])
}

func TestUpdateStatus_Strict(t *testing.T) {
	w := newAppWorld(t)
	ctx := context.Background()
	w.apps.StrictTransitions = true
	a, err := w.apps.Apply(ctx, w.seeker.ID, w.posting.ID, "")
	require.NoError(t, err)

	_, err = w.apps.UpdateStatus(ctx, w.employer.ID, a.ID, entity.StatusHired)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	_, err = w.apps.UpdateStatus(ctx, w.employer.ID, a.ID, entity.StatusReviewed)
	require.NoError(t, err)
	_, err = w.apps.UpdateStatus(ctx, w.employer.ID, a.ID, entity.StatusRejected)
	require.NoError(t, err)
	_, err = w.apps.UpdateStatus(ctx, w.employer.ID, a.ID, entity.StatusInterview)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "rejected is terminal")
}

func TestListForJob_OwnerOnly(t *testing.T) {
	w := newAppWorld(t)
	ctx := context.Background()
	_, err := w.apps.Apply(ctx, w.seeker.ID, w.posting.ID, "")
	require.NoError(t, err)

	_, _, _, err = w.apps.ListForJob(ctx, w.other.ID, w.posting.ID, "", PageInput{})
	assert.True(t, apperr.IsAuthorization(err))

	job, apps, p, err := w.apps.ListForJob(ctx, w.employer.ID, w.posting.ID, "", PageInput{})
	require.NoError(t, err)
	assert.Equal(t, w.posting.ID, job.ID)
	require.Len(t, apps, 1)
	require.NotNil(t, apps[0].Seeker)
	assert.Equal(t, "seeker@example.com", apps[0].Seeker.Email)
	assert.Equal(t, 1, p.TotalResults)

	_, apps, _, err = w.apps.ListForJob(ctx, w.employer.ID, w.posting.ID, entity.StatusHired, PageInput{})
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestListMineAndStats(t *testing.T) {
	w := newAppWorld(t)
	ctx := context.Background()
	second := w.job(t, w.other.ID, "Data Analyst")
	a, err := w.apps.Apply(ctx, w.seeker.ID, w.posting.ID, "")
	require.NoError(t, err)
	_, err = w.apps.Apply(ctx, w.seeker.ID, second.ID, "")
	require.NoError(t, err)
	_, err = w.apps.UpdateStatus(ctx, w.employer.ID, a.ID, entity.StatusReviewed)
	require.NoError(t, err)

	mine, p, err := w.apps.ListMine(ctx, w.seeker.ID, "", PageInput{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, 2, p.TotalResults)
	require.NotNil(t, mine[0].Job)
	assert.NotNil(t, mine[0].Job.Employer)

	stats, err := w.apps.Stats(ctx, w.seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, []entity.StatusCount{
		{Status: entity.StatusApplied, Count: 1},
		{Status: entity.StatusReviewed, Count: 1},
	}, stats.StatusCounts)

	stats, err = w.apps.Stats(ctx, w.employer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
}

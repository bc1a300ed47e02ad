package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
)

func TestJobCreate_Defaults(t *testing.T) {
	f := newFixture(t)
	emp := f.user(t, "emp@example.com", entity.RoleEmployer)
	j := f.job(t, emp.ID, "Backend Engineer")

	assert.True(t, j.IsActive)
	assert.Equal(t, emp.ID, j.EmployerID)
	assert.Equal(t, entity.DefaultExperience, j.Experience)
	require.NotNil(t, j.Employer)
	assert.Equal(t, emp.Email, j.Employer.Email)

	_, err := f.jobs.Create(context.Background(), emp.ID, JobInput{Title: "x", Type: "GIG"})
	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestJobMutations_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "e1@example.com", entity.RoleEmployer)
	other := f.user(t, "e2@example.com", entity.RoleEmployer)
	j := f.job(t, owner.ID, "Backend Engineer")
	title := "Hijacked title"

	_, err := f.jobs.Update(ctx, other.ID, j.ID, JobPatch{Title: &title})
	assert.True(t, apperr.IsAuthorization(err))
	_, err = f.jobs.Toggle(ctx, other.ID, j.ID)
	assert.True(t, apperr.IsAuthorization(err))
	assert.True(t, apperr.IsAuthorization(f.jobs.Delete(ctx, other.ID, j.ID)))

	// a missing job looks the same as someone else's
	_, err = f.jobs.Update(ctx, owner.ID, "missing", JobPatch{Title: &title})
	assert.True(t, apperr.IsAuthorization(err))

	unchanged, err := f.jobs.Get(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", unchanged.Title)
	assert.True(t, unchanged.IsActive)

	updated, err := f.jobs.Update(ctx, owner.ID, j.ID, JobPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "Acme", updated.Company)
}

func TestJobToggleAndPublicListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.user(t, "e1@example.com", entity.RoleEmployer)
	a := f.job(t, emp.ID, "Backend Engineer")
	f.job(t, emp.ID, "Frontend Engineer")

	toggled, err := f.jobs.Toggle(ctx, emp.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	jobs, p, err := f.jobs.List(ctx, JobQuery{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Frontend Engineer", jobs[0].Title)
	assert.Equal(t, helpers.Pagination{Current: 1, TotalPages: 1, TotalResults: 1, ResultsPerPage: helpers.DefaultPageSize}, p)

	mine, _, err := f.jobs.ListForEmployer(ctx, emp.ID, "inactive", PageInput{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.ID, mine[0].ID)

	all, _, err := f.jobs.ListForEmployer(ctx, emp.ID, "", PageInput{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestJobList_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.user(t, "e1@example.com", entity.RoleEmployer)
	f.job(t, emp.ID, "Backend Engineer")
	f.job(t, emp.ID, "Data Analyst")

	jobs, _, err := f.jobs.List(ctx, JobQuery{Search: "backend"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)

	jobs, _, err = f.jobs.List(ctx, JobQuery{Type: entity.JobContract})
	require.NoError(t, err)
	assert.Empty(t, jobs)

	jobs, p, err := f.jobs.List(ctx, JobQuery{PageInput: PageInput{Page: 2, Limit: 1}})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title, "newest first")
	assert.Equal(t, 2, p.TotalPages)
}

func TestJobSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.user(t, "e1@example.com", entity.RoleEmployer)
	backend := f.job(t, emp.ID, "Backend Engineer")
	hidden := f.job(t, emp.ID, "Hidden Role")
	_, err := f.jobs.Toggle(ctx, emp.ID, hidden.ID)
	require.NoError(t, err)

	t.Run("database fallback", func(t *testing.T) {
		jobs, err := f.jobs.Search(ctx, "backend", 0)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, backend.ID, jobs[0].ID)
	})

	t.Run("index hits are hydrated", func(t *testing.T) {
		idx := &fakeIndex{hits: []string{hidden.ID, "gone", backend.ID}}
		svc := NewJobService(f.store.Jobs(), idx, nil)
		jobs, err := svc.Search(ctx, "engineer", 5)
		require.NoError(t, err)
		require.Len(t, jobs, 1, "inactive and deleted hits are dropped")
		assert.Equal(t, backend.ID, jobs[0].ID)
	})

	t.Run("index failure falls back", func(t *testing.T) {
		idx := &fakeIndex{err: errors.New("es down")}
		svc := NewJobService(f.store.Jobs(), idx, helpers.NewNopLogger())
		jobs, err := svc.Search(ctx, "backend", 5)
		require.NoError(t, err)
		assert.Len(t, jobs, 1)
	})
}

func TestJobIndexSync(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	idx := &fakeIndex{}
	f.jobs.Index = idx
	emp := f.user(t, "e1@example.com", entity.RoleEmployer)

	j := f.job(t, emp.ID, "Backend Engineer")
	_, err := f.jobs.Toggle(ctx, emp.ID, j.ID)
	require.NoError(t, err)
	require.NoError(t, f.jobs.Delete(ctx, emp.ID, j.ID))

	assert.Equal(t, []string{j.ID, j.ID}, idx.put)
	assert.Equal(t, []string{j.ID}, idx.removed)

	idx.err = errors.New("es down")
	_, err = f.jobs.Create(ctx, emp.ID, JobInput{Title: "Another role", Type: entity.JobRemote})
	assert.NoError(t, err, "index failures are not surfaced")
}

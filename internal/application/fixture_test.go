package application

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
)

type note struct {
	To   string
	Kind string
	Args map[string]any
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []note
	err   error
}

func (n *recordingNotifier) Notify(_ context.Context, to, kind string, args map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.notes = append(n.notes, note{To: to, Kind: kind, Args: args})
	return nil
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.notes))
	for _, x := range n.notes {
		out = append(out, x.Kind)
	}
	return out
}

func (n *recordingNotifier) last() note {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.notes[len(n.notes)-1]
}

type fakeIndex struct {
	mu      sync.Mutex
	put     []string
	removed []string
	hits    []string
	err     error
}

func (x *fakeIndex) Put(_ context.Context, j *entity.Job) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.put = append(x.put, j.ID)
	return x.err
}

func (x *fakeIndex) Remove(_ context.Context, id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.removed = append(x.removed, id)
	return x.err
}

func (x *fakeIndex) Search(_ context.Context, _ string, _ int) ([]string, error) {
	return x.hits, x.err
}

type fakeStorage struct {
	path        string
	contentType string
	body        []byte
}

func (s *fakeStorage) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.path, s.contentType, s.body = objectPath, contentType, b
	return "https://storage.example.com/bucket/" + objectPath, nil
}

type fixture struct {
	store *memory.Store
	notes *recordingNotifier
	jwt   *helpers.JWTManager

	auth  *AuthService
	jobs  *JobService
	apps  *ApplicationService
	users *UserService
	admin *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	notes := &recordingNotifier{}
	log := helpers.NewNopLogger()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	return &fixture{
		store: store,
		notes: notes,
		jwt:   jwt,
		auth: NewAuthService(store.Users(), jwt, notes, log, AuthOptions{
			BcryptCost: 4,
			VerifyURL:  func(token string) string { return "http://client.test/verify-email?token=" + token },
		}),
		jobs:  NewJobService(store.Jobs(), nil, log),
		apps:  NewApplicationService(store.Applications(), store.Jobs(), notes, log, false),
		users: NewUserService(store.Users(), store.Jobs(), store.Applications(), nil, log),
		admin: NewAdminService(store.Users(), store.Jobs(), store.Applications(), nil, nil, log),
	}
}

// user stores a verified account directly.
func (f *fixture) user(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword("secret123", 4)
	require.NoError(t, err)
	u := &entity.User{Email: email, Password: hash, Name: "User " + email, Role: role, IsVerified: true}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) job(t *testing.T, employerID, title string) *entity.Job {
	t.Helper()
	j, err := f.jobs.Create(context.Background(), employerID, JobInput{
		Title:        title,
		Description:  "A long enough description for the role",
		Company:      "Acme",
		Salary:       "$100k",
		Location:     "Remote",
		Type:         entity.JobFullTime,
		Category:     "Engineering",
		Requirements: "Go and PostgreSQL experience",
	})
	require.NoError(t, err)
	return j
}

package application

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/domain/repository"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
)

// Notifier hands an email off for delivery. Implemented by mailer.Dispatcher.
type Notifier interface {
	Notify(ctx context.Context, to, kind string, args map[string]any) error
}

// JobIndex is the optional full-text index over job postings.
type JobIndex interface {
	Put(ctx context.Context, j *entity.Job) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]string, error)
}

// ObjectStorage stores uploaded files and returns a public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// notify never fails the caller; errors are logged.
func notify(ctx context.Context, n Notifier, log *logrus.Logger, to, kind string, args map[string]any) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, to, kind, args); err != nil && log != nil {
		log.WithFields(logrus.Fields{"to": to, "kind": kind, "error": err.Error()}).Warn("notification not queued")
	}
}

// PageInput is a 1-based page request. Zero values pick the defaults.
type PageInput struct {
	Page  int
	Limit int
}

func (p PageInput) normalize() PageInput {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > helpers.MaxPage {
		p.Page = helpers.MaxPage
	}
	if p.Limit < 1 {
		p.Limit = helpers.DefaultPageSize
	}
	if p.Limit > helpers.MaxPageSize {
		p.Limit = helpers.MaxPageSize
	}
	return p
}

func (p PageInput) window() repository.Page {
	return repository.Page{Limit: p.Limit, Offset: helpers.Offset(p.Page, p.Limit)}
}

func (p PageInput) pagination(total int) helpers.Pagination {
	return helpers.NewPagination(p.Page, p.Limit, total)
}

func systemClock() time.Time { return time.Now().UTC() }

// Package container builds the application graph once at startup. Optional
// infrastructure (Redis, Elasticsearch, GCS, RabbitMQ) is left nil when it is
// not configured and the dependent features degrade.
package container

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-jobboard-api/config"
	"github.com/oksasatya/go-jobboard-api/internal/application"
	repo "github.com/oksasatya/go-jobboard-api/internal/domain/repository"
	"github.com/oksasatya/go-jobboard-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-jobboard-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-jobboard-api/internal/infrastructure/search"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
	"github.com/oksasatya/go-jobboard-api/pkg/mailer"
	mailtpl "github.com/oksasatya/go-jobboard-api/pkg/mailer/templates"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	ES        *elasticsearch.Client
	GCS       *storage.Client
	RabbitPub *helpers.RabbitPublisher
	JWT       *helpers.JWTManager

	Users repo.UserRepository
	Jobs  repo.JobRepository
	Apps  repo.ApplicationRepository

	Dispatcher *mailer.Dispatcher
	Index      application.JobIndex
	Storage    application.ObjectStorage

	Auth         *application.AuthService
	JobService   *application.JobService
	AppService   *application.ApplicationService
	UserService  *application.UserService
	AdminService *application.AdminService
}

// New connects the configured infrastructure and wires the services.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	switch cfg.Storage {
	case StorageMemory:
		c.UseStore(memory.New())
		logger.Warn("using in-memory storage, data is lost on restart")
	default:
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.PGPool = pool
		c.Users = pginfra.NewUserRepository(pool)
		c.Jobs = pginfra.NewJobRepository(pool)
		c.Apps = pginfra.NewApplicationRepository(pool)
	}

	c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		c.Close(ctx)
		return nil, err
	}
	if es != nil {
		idx := search.NewJobIndex(es, cfg.ESJobsIndex)
		if created, err := idx.Ensure(ctx); err != nil {
			logger.WithError(err).WithField("index", cfg.ESJobsIndex).Warn("job index bootstrap failed")
		} else if created {
			logger.WithField("index", cfg.ESJobsIndex).Info("job index created")
		}
		c.ES = es
		c.Index = idx
	}

	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			c.Close(ctx)
			return nil, err
		}
		c.GCS = gcs
		c.Storage = helpers.NewGCSStore(gcs, cfg.GCSBucket)
	}

	transport, err := c.mailTransport()
	if err != nil {
		c.Close(ctx)
		return nil, err
	}
	c.Dispatcher = mailer.NewDispatcher(transport, mailtpl.BrandFromConfig(cfg), logger, mailer.DispatcherOptions{
		Workers:   cfg.NotifyWorkers,
		QueueSize: cfg.NotifyQueueSize,
	})

	c.wire()
	return c, nil
}

// UseStore backs the repositories with the in-memory store.
func (c *Container) UseStore(s *memory.Store) {
	c.Users = s.Users()
	c.Jobs = s.Jobs()
	c.Apps = s.Applications()
}

// mailTransport picks the queue when sending is enabled and a broker is
// configured, direct Mailgun delivery when only Mailgun is, and logging
// otherwise.
func (c *Container) mailTransport() (mailer.Transport, error) {
	cfg := c.Config
	if !cfg.MailSendEnabled {
		return mailer.LogTransport{Log: c.Logger}, nil
	}
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, err
		}
		c.RabbitPub = pub
		return mailer.QueueTransport{Pub: pub}, nil
	}
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" {
		return mailer.SendTransport{Sender: mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)}, nil
	}
	c.Logger.Warn("mail sending enabled but no transport configured, emails are only logged")
	return mailer.LogTransport{Log: c.Logger}, nil
}

// NewInMemory wires the services over store with no external
// infrastructure. Emails are only logged.
func NewInMemory(cfg *config.Config, logger *logrus.Logger, store *memory.Store) *Container {
	c := &Container{Config: cfg, Logger: logger}
	c.UseStore(store)
	c.Dispatcher = mailer.NewDispatcher(mailer.LogTransport{Log: logger}, mailtpl.BrandFromConfig(cfg), logger, mailer.DispatcherOptions{})
	c.wire()
	return c
}

// wire builds the services from whatever infrastructure is set.
func (c *Container) wire() {
	cfg := c.Config
	c.JWT = helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiresIn)

	var notifier application.Notifier
	if c.Dispatcher != nil {
		notifier = c.Dispatcher
	}

	c.Auth = application.NewAuthService(c.Users, c.JWT, notifier, c.Logger, application.AuthOptions{
		BcryptCost:      cfg.BcryptCost,
		VerificationTTL: cfg.VerificationTTL,
		VerifyURL:       cfg.VerifyEmailURL,
	})
	c.JobService = application.NewJobService(c.Jobs, c.Index, c.Logger)
	c.AppService = application.NewApplicationService(c.Apps, c.Jobs, notifier, c.Logger, cfg.StrictStatusTransitions)
	c.UserService = application.NewUserService(c.Users, c.Jobs, c.Apps, c.Storage, c.Logger)
	c.AdminService = application.NewAdminService(c.Users, c.Jobs, c.Apps, c.Index, c.Redis, c.Logger)
}

// Notifier returns the dispatcher as an interface, nil when none is running.
func (c *Container) Notifier() application.Notifier {
	if c.Dispatcher == nil {
		return nil
	}
	return c.Dispatcher
}

// HealthChecks returns a probe per configured backing service.
func (c *Container) HealthChecks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{}
	if c.PGPool != nil {
		checks["postgres"] = c.PGPool.Ping
	}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() }
	}
	if c.ES != nil {
		checks["elasticsearch"] = func(ctx context.Context) error {
			res, err := c.ES.Ping(c.ES.Ping.WithContext(ctx))
			if err != nil {
				return err
			}
			defer res.Body.Close()
			if res.IsError() {
				return fmt.Errorf("elasticsearch ping: %s", res.Status())
			}
			return nil
		}
	}
	return checks
}

// Close drains the dispatcher and releases connections.
func (c *Container) Close(ctx context.Context) {
	if c.Dispatcher != nil {
		if err := c.Dispatcher.Close(ctx); err != nil {
			c.Logger.WithError(err).Warn("notification dispatcher did not drain")
		}
	}
	c.RabbitPub.Close()
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}

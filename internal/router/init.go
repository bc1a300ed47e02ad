package router

import (
	"github.com/oksasatya/go-jobboard-api/internal/container"
	handlers "github.com/oksasatya/go-jobboard-api/internal/interface/http"
	"github.com/oksasatya/go-jobboard-api/internal/router/modules"
)

// InitModules builds the handlers from the container and registers every
// feature module. Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	base := handlers.Base{Logger: c.Logger, Dev: cfg.IsDevelopment()}
	guards := modules.Guards{
		Users:     c.Users,
		Tokens:    c.JWT,
		Redis:     c.Redis,
		RateLimit: cfg.RateLimitEnabled,
	}

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(cfg.Env, c.HealthChecks(), base)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.Auth, base), guards))
	r.Add(modules.NewJobModule(handlers.NewJobHandler(c.JobService, base), guards))
	r.Add(modules.NewApplicationModule(handlers.NewApplicationHandler(c.AppService, base), guards))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(c.UserService, cfg.UploadMaxBytes, base), guards))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(c.AdminService, base), guards))
	r.Add(modules.NewEmailModule(handlers.NewEmailHandler(c.Notifier(), base), guards))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(guards))
	}
}

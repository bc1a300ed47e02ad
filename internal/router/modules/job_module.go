package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-jobboard-api/internal/interface/http"
)

type JobModule struct {
	Handler *handlers.JobHandler
	Guards  Guards
}

func NewJobModule(h *handlers.JobHandler, g Guards) *JobModule {
	return &JobModule{Handler: h, Guards: g}
}

func (m *JobModule) Register(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")

	jobs.GET("", m.Handler.List)
	jobs.GET("/search", m.Guards.ByIP(60), m.Handler.Search)
	jobs.GET("/:id", m.Handler.Get)

	employer := m.Guards.Role(entity.RoleEmployer)
	jobs.GET("/employer", with(employer, m.Handler.ListMine)...)
	jobs.POST("", with(employer, m.Handler.Create)...)
	jobs.PUT("/:id", with(employer, m.Handler.Update)...)
	jobs.DELETE("/:id", with(employer, m.Handler.Delete)...)
	jobs.PATCH("/:id/toggle", with(employer, m.Handler.Toggle)...)
}

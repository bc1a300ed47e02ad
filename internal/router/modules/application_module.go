package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-jobboard-api/internal/interface/http"
)

type ApplicationModule struct {
	Handler *handlers.ApplicationHandler
	Guards  Guards
}

func NewApplicationModule(h *handlers.ApplicationHandler, g Guards) *ApplicationModule {
	return &ApplicationModule{Handler: h, Guards: g}
}

func (m *ApplicationModule) Register(rg *gin.RouterGroup) {
	apps := rg.Group("/applications")

	seeker := m.Guards.Role(entity.RoleSeeker)
	employer := m.Guards.Role(entity.RoleEmployer)

	apps.POST("/job/:id/apply", with(seeker, m.Handler.Apply)...)
	apps.GET("/my-applications", with(seeker, m.Handler.ListMine)...)
	apps.GET("/job/:id", with(employer, m.Handler.ListForJob)...)
	apps.PUT("/:id/status", with(employer, m.Handler.UpdateStatus)...)
	apps.GET("/stats", with(m.Guards.Verified(), m.Handler.Stats)...)
}

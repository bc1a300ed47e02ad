package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-jobboard-api/internal/interface/http"
)

type AdminModule struct {
	Handler *handlers.AdminHandler
	Guards  Guards
}

func NewAdminModule(h *handlers.AdminHandler, g Guards) *AdminModule {
	return &AdminModule{Handler: h, Guards: g}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", m.Guards.Role(entity.RoleAdmin)...)

	admin.GET("/dashboard", m.Handler.Dashboard)
	admin.GET("/jobs", m.Handler.ListJobs)
	admin.PATCH("/users/:id", m.Handler.ManageUser)
	admin.DELETE("/users/:id", m.Handler.DeleteUser)
	admin.PATCH("/jobs/:id", m.Handler.ManageJob)
}

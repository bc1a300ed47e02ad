package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-jobboard-api/internal/interface/http"
)

type EmailModule struct {
	Handler *handlers.EmailHandler
	Guards  Guards
}

func NewEmailModule(h *handlers.EmailHandler, g Guards) *EmailModule {
	return &EmailModule{Handler: h, Guards: g}
}

func (m *EmailModule) Register(rg *gin.RouterGroup) {
	// Admin-only: queue a templated email through the running dispatcher
	rg.POST("/admin/email/send", with(m.Guards.Role(entity.RoleAdmin), m.Handler.Send)...)
}

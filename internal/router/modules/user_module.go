package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-jobboard-api/internal/interface/http"
)

// UserModule serves /api/users. Listing is admin only; profile reads need
// a verified account; writes are limited to self or admin by the service.
type UserModule struct {
	Handler *handlers.UserHandler
	Guards  Guards
}

func NewUserModule(h *handlers.UserHandler, g Guards) *UserModule {
	return &UserModule{Handler: h, Guards: g}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	verified := m.Guards.Verified()

	users.GET("", with(m.Guards.Role(entity.RoleAdmin), m.Handler.List)...)
	users.POST("/avatar", with(verified, m.Handler.UploadAvatar)...)
	users.POST("/resume", with(verified, m.Handler.UploadResume)...)
	users.GET("/:id", with(verified, m.Handler.Get)...)
	users.PUT("/:id", with(verified, m.Handler.Update)...)
	users.DELETE("/:id", with(verified, m.Handler.Delete)...)
}

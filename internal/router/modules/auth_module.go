package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-jobboard-api/internal/interface/http"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Guards  Guards
}

func NewAuthModule(h *handlers.AuthHandler, g Guards) *AuthModule {
	return &AuthModule{Handler: h, Guards: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	// Public endpoints with IP-based rate limits
	auth.POST("/register", m.Guards.ByIP(5), m.Handler.Register)
	auth.POST("/login", m.Guards.ByIP(10), m.Handler.Login)
	auth.POST("/verify-email", m.Guards.ByIP(30), m.Handler.VerifyEmail)
	auth.POST("/resend-verification", m.Guards.ByIP(5), m.Handler.ResendVerification)

	auth.GET("/profile", with(m.Guards.Verified(), m.Handler.Profile)...)
	auth.PUT("/profile", with(m.Guards.Verified(), m.Handler.UpdateProfile)...)
	auth.GET("/check", with(m.Guards.Verified(), m.Handler.Check)...)
}

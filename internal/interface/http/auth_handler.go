package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/application"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/pkg/response"
	"github.com/oksasatya/go-jobboard-api/pkg/validation"
)

type AuthHandler struct {
	Base
	Svc *application.AuthService
}

func NewAuthHandler(svc *application.AuthService, base Base) *AuthHandler {
	return &AuthHandler{Base: base, Svc: svc}
}

type registerRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,pwd" trim:"false"`
	Name     string      `json:"name" binding:"required,min=2"`
	Role     entity.Role `json:"role" binding:"omitempty,signuprole"`
}

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

type resendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required" trim:"false"`
}

type updateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Bio      *string `json:"bio" binding:"omitempty,max=2000"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	Location *string `json:"location" binding:"omitempty,max=200"`
}

func (r updateProfileRequest) input() application.ProfileInput {
	return application.ProfileInput{Name: r.Name, Bio: r.Bio, Phone: r.Phone, Location: r.Location}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email: req.Email, Password: req.Password, Name: req.Name, Role: req.Role,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": u, "token": nil},
		"user registered successfully, please check your email to verify your account", nil)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	sess, err := h.Svc.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, sess, "email verified successfully", nil)
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req resendVerificationRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.Svc.ResendVerification(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "verification email sent", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, sess, "login successful", map[string]any{"expires_at": sess.ExpiresAt})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	u, err := h.Svc.Profile(c.Request.Context(), actor.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "", nil)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), actor.ID, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "profile updated successfully", nil)
}

// Check echoes the user resolved by the gate.
func (h *AuthHandler) Check(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": actor}, "", nil)
}

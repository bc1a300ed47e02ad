package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/application"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/pkg/response"
	"github.com/oksasatya/go-jobboard-api/pkg/validation"
)

type AdminHandler struct {
	Base
	Svc *application.AdminService
}

func NewAdminHandler(svc *application.AdminService, base Base) *AdminHandler {
	return &AdminHandler{Base: base, Svc: svc}
}

type manageUserRequest struct {
	Action string      `json:"action" binding:"required"`
	Role   entity.Role `json:"role" binding:"omitempty,role"`
}

type manageJobRequest struct {
	Action string `json:"action" binding:"required,oneof=toggle-active delete"`
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	d, err := h.Svc.Dashboard(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, d, "", nil)
}

func (h *AdminHandler) ListJobs(c *gin.Context) {
	page, limit := pageQuery(c)
	jobs, p, err := h.Svc.ListJobs(c.Request.Context(), application.AdminJobQuery{
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		PageInput: application.PageInput{Page: page, Limit: limit},
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": jobs, "pagination": p}, "", nil)
}

func (h *AdminHandler) ManageUser(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req manageUserRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	u, err := h.Svc.ManageUser(c.Request.Context(), actor, c.Param("id"), req.Action, req.Role)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "user role updated successfully", nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted successfully", nil)
}

func (h *AdminHandler) ManageJob(c *gin.Context) {
	var req manageJobRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	j, err := h.Svc.ManageJob(c.Request.Context(), c.Param("id"), req.Action)
	if err != nil {
		h.fail(c, err)
		return
	}
	if j == nil {
		response.Success[any](c, http.StatusOK, nil, "job deleted successfully", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j}, "job status updated successfully", nil)
}

package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/application"
	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/pkg/response"
	"github.com/oksasatya/go-jobboard-api/pkg/validation"
)

type ApplicationHandler struct {
	Base
	Svc *application.ApplicationService
}

func NewApplicationHandler(svc *application.ApplicationService, base Base) *ApplicationHandler {
	return &ApplicationHandler{Base: base, Svc: svc}
}

type applyRequest struct {
	CoverLetter string `json:"coverLetter" binding:"omitempty,min=10,max=5000"`
}

type updateStatusRequest struct {
	Status entity.ApplicationStatus `json:"status" binding:"required,appstatus"`
}

func statusQuery(c *gin.Context) (entity.ApplicationStatus, error) {
	st := entity.ApplicationStatus(c.Query("status"))
	if st != "" && !st.Valid() {
		return "", apperr.Invalid("status", "is not a valid application status")
	}
	return st, nil
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req applyRequest
	// the body is optional
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(c, err)
		return
	}
	a, err := h.Svc.Apply(c.Request.Context(), actor.ID, c.Param("id"), req.CoverLetter)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"application": a}, "application submitted successfully", nil)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	st, err := statusQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, limit := pageQuery(c)
	apps, p, err := h.Svc.ListMine(c.Request.Context(), actor.ID, st, application.PageInput{Page: page, Limit: limit})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applications": apps, "pagination": p}, "", nil)
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	st, err := statusQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, limit := pageQuery(c)
	job, apps, p, err := h.Svc.ListForJob(c.Request.Context(), actor.ID, c.Param("id"), st,
		application.PageInput{Page: page, Limit: limit})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": job.Summary(), "applications": apps, "pagination": p}, "", nil)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.Svc.UpdateStatus(c.Request.Context(), actor.ID, c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"application": a}, "application status updated successfully", nil)
}

func (h *ApplicationHandler) Stats(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	stats, err := h.Svc.Stats(c.Request.Context(), actor.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "", nil)
}

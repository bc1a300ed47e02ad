package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/application"
	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/pkg/response"
	"github.com/oksasatya/go-jobboard-api/pkg/validation"
)

type JobHandler struct {
	Base
	Svc *application.JobService
}

func NewJobHandler(svc *application.JobService, base Base) *JobHandler {
	return &JobHandler{Base: base, Svc: svc}
}

type createJobRequest struct {
	Title        string         `json:"title" binding:"required,min=5,max=200"`
	Description  string         `json:"description" binding:"required,min=20"`
	Company      string         `json:"company" binding:"required,min=2,max=200"`
	Salary       string         `json:"salary" binding:"required"`
	Location     string         `json:"location" binding:"required"`
	Type         entity.JobType `json:"type" binding:"required,jobtype"`
	Category     string         `json:"category" binding:"required"`
	Experience   string         `json:"experience"`
	Requirements string         `json:"requirements" binding:"required,min=10"`
	Benefits     string         `json:"benefits"`
}

type updateJobRequest struct {
	Title        *string         `json:"title" binding:"omitempty,min=5,max=200"`
	Description  *string         `json:"description" binding:"omitempty,min=20"`
	Company      *string         `json:"company" binding:"omitempty,min=2,max=200"`
	Salary       *string         `json:"salary" binding:"omitempty,min=1"`
	Location     *string         `json:"location" binding:"omitempty,min=1"`
	Type         *entity.JobType `json:"type" binding:"omitempty,jobtype"`
	Category     *string         `json:"category" binding:"omitempty,min=1"`
	Experience   *string         `json:"experience"`
	Requirements *string         `json:"requirements" binding:"omitempty,min=10"`
	Benefits     *string         `json:"benefits"`
	IsActive     *bool           `json:"isActive"`
}

func (r updateJobRequest) patch() application.JobPatch {
	return application.JobPatch{
		Title: r.Title, Description: r.Description, Company: r.Company, Salary: r.Salary,
		Location: r.Location, Type: r.Type, Category: r.Category, Experience: r.Experience,
		Requirements: r.Requirements, Benefits: r.Benefits, IsActive: r.IsActive,
	}
}

// List serves the public listing of active jobs.
func (h *JobHandler) List(c *gin.Context) {
	typ := entity.JobType(c.Query("type"))
	if typ != "" && !typ.Valid() {
		h.fail(c, apperr.Invalid("type", "is not a valid job type"))
		return
	}
	page, limit := pageQuery(c)
	jobs, p, err := h.Svc.List(c.Request.Context(), application.JobQuery{
		Search:     c.Query("search"),
		Location:   c.Query("location"),
		Type:       typ,
		Category:   c.Query("category"),
		Experience: c.Query("experience"),
		PageInput:  application.PageInput{Page: page, Limit: limit},
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": jobs, "pagination": p}, "", nil)
}

func (h *JobHandler) Search(c *gin.Context) {
	jobs, err := h.Svc.Search(c.Request.Context(), c.Query("q"), intQuery(c, "size", 0))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": jobs}, "", nil)
}

func (h *JobHandler) Get(c *gin.Context) {
	j, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j}, "", nil)
}

func (h *JobHandler) ListMine(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	page, limit := pageQuery(c)
	jobs, p, err := h.Svc.ListForEmployer(c.Request.Context(), actor.ID, c.Query("status"),
		application.PageInput{Page: page, Limit: limit})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": jobs, "pagination": p}, "", nil)
}

func (h *JobHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req createJobRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	j, err := h.Svc.Create(c.Request.Context(), actor.ID, application.JobInput{
		Title: req.Title, Description: req.Description, Company: req.Company, Salary: req.Salary,
		Location: req.Location, Type: req.Type, Category: req.Category, Experience: req.Experience,
		Requirements: req.Requirements, Benefits: req.Benefits,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"job": j}, "job created successfully", nil)
}

func (h *JobHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req updateJobRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	j, err := h.Svc.Update(c.Request.Context(), actor.ID, c.Param("id"), req.patch())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j}, "job updated successfully", nil)
}

func (h *JobHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "job deleted successfully", nil)
}

func (h *JobHandler) Toggle(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	j, err := h.Svc.Toggle(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	msg := "job deactivated successfully"
	if j.IsActive {
		msg = "job activated successfully"
	}
	response.Success(c, http.StatusOK, gin.H{"job": j}, msg, nil)
}

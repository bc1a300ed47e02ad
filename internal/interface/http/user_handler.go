package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/application"
	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/pkg/response"
	"github.com/oksasatya/go-jobboard-api/pkg/validation"
)

type UserHandler struct {
	Base
	Svc            *application.UserService
	UploadMaxBytes int64
}

func NewUserHandler(svc *application.UserService, maxBytes int64, base Base) *UserHandler {
	return &UserHandler{Base: base, Svc: svc, UploadMaxBytes: maxBytes}
}

var resumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func (h *UserHandler) List(c *gin.Context) {
	role := entity.Role(strings.ToUpper(c.Query("role")))
	if role != "" && !role.Valid() {
		h.fail(c, apperr.Invalid("role", "is not a valid role"))
		return
	}
	page, limit := pageQuery(c)
	users, p, err := h.Svc.List(c.Request.Context(), application.UserQuery{
		Role:      role,
		Search:    c.Query("search"),
		PageInput: application.PageInput{Page: page, Limit: limit},
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users, "pagination": p}, "", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	prof, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": prof}, "", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), actor, c.Param("id"), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "user updated successfully", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted successfully", nil)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) { h.upload(c, application.UploadAvatar) }

func (h *UserHandler) UploadResume(c *gin.Context) { h.upload(c, application.UploadResume) }

func (h *UserHandler) upload(c *gin.Context, kind string) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	if h.UploadMaxBytes > 0 {
		// leave room for the multipart framing around the file
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.UploadMaxBytes+1<<20)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		h.fail(c, apperr.Invalid("file", "is required"))
		return
	}
	if h.UploadMaxBytes > 0 && fh.Size > h.UploadMaxBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "file too large", gin.H{"maxBytes": h.UploadMaxBytes})
		return
	}

	contentType := fh.Header.Get("Content-Type")
	switch kind {
	case application.UploadAvatar:
		if !strings.HasPrefix(contentType, "image/") {
			h.fail(c, apperr.Invalid("file", "must be an image"))
			return
		}
	case application.UploadResume:
		ct, known := resumeTypes[strings.ToLower(filepath.Ext(fh.Filename))]
		if !known {
			h.fail(c, apperr.Invalid("file", "must be a PDF or Word document"))
			return
		}
		contentType = ct
	}

	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	u, err := h.Svc.Upload(c.Request.Context(), actor.ID, kind, fh.Filename, contentType, f)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "file uploaded successfully", nil)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/application"
	"github.com/oksasatya/go-jobboard-api/pkg/mailer"
	mailtpl "github.com/oksasatya/go-jobboard-api/pkg/mailer/templates"
	"github.com/oksasatya/go-jobboard-api/pkg/response"
	"github.com/oksasatya/go-jobboard-api/pkg/validation"
)

// EmailHandler lets an admin queue a templated notification, mostly to check
// the mail pipeline end to end.
type EmailHandler struct {
	Base
	Notifier application.Notifier
}

func NewEmailHandler(n application.Notifier, base Base) *EmailHandler {
	return &EmailHandler{Base: base, Notifier: n}
}

type sendEmailRequest struct {
	To       string         `json:"to" binding:"required,email"`
	Template string         `json:"template" binding:"required"`
	Data     map[string]any `json:"data"`
}

func (h *EmailHandler) Send(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindWith(&req, validation.JSON); err != nil {
		h.badRequest(c, err)
		return
	}
	if !mailtpl.Known(req.Template) {
		response.Error(c, http.StatusBadRequest, "unknown template", map[string]string{"template": req.Template})
		return
	}
	if h.Notifier == nil {
		response.Success(c, http.StatusAccepted, map[string]any{"enqueued": false, "disabled": true}, "email sending disabled", nil)
		return
	}
	if err := h.Notifier.Notify(c.Request.Context(), req.To, req.Template, req.Data); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, mailer.ErrQueueFull) || errors.Is(err, mailer.ErrDispatcherClosed) {
			status = http.StatusServiceUnavailable
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("failed to enqueue email")
		}
		response.Error(c, status, "failed to enqueue", nil)
		return
	}
	response.Success(c, http.StatusAccepted, map[string]any{"enqueued": true}, "email enqueued", nil)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/interface/middleware"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
	"github.com/oksasatya/go-jobboard-api/pkg/response"
	"github.com/oksasatya/go-jobboard-api/pkg/validation"
)

// Base is embedded by every handler. Dev exposes internal error messages in
// failure envelopes.
type Base struct {
	Logger *logrus.Logger
	Dev    bool
}

// StatusFor maps an error onto its HTTP status.
func StatusFor(err error) int {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case apperr.IsAuthorization(err), errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnauthenticated), errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden), errors.Is(err, apperr.ErrEmailNotVerified):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrSelfDelete),
		errors.Is(err, apperr.ErrAlreadyVerified),
		errors.Is(err, apperr.ErrInvalidVerificationToken),
		errors.Is(err, apperr.ErrInvalidTransition),
		errors.Is(err, apperr.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes the failure envelope for err.
func (b *Base) fail(c *gin.Context, err error) {
	status := StatusFor(err)

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		response.Error(c, status, "validation failed", ve.Fields)
		return
	}

	if status == http.StatusInternalServerError {
		fields := logrus.Fields{"request_id": c.GetString("request_id"), "path": c.FullPath()}
		if uid := c.GetString(middleware.CtxUserIDKey); uid != "" {
			fields["user_id"] = uid
		}
		helpers.LogError(b.Logger, "request failed", err, fields)
		var detail any
		if b.Dev {
			detail = err.Error()
		}
		response.Error(c, status, "internal server error", detail)
		return
	}
	response.Error(c, status, err.Error(), nil)
}

// badRequest reports a binding failure with per-field details.
func (b *Base) badRequest(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
}

// actor returns the authenticated user or writes 401.
func (b *Base) actor(c *gin.Context) (entity.AuthUser, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperr.ErrUnauthenticated.Error(), nil)
		return u, false
	}
	return u, true
}

func pageQuery(c *gin.Context) (page, limit int) {
	return helpers.ParsePage(c.Query("page"), c.Query("limit"))
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

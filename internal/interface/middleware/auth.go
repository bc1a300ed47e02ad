package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/pkg/response"
)

const (
	CtxUserKey   = "authUser"
	CtxUserIDKey = "userID"
)

// TokenVerifier is satisfied by *helpers.JWTManager.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLoader is satisfied by repository.UserRepository.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// GateOptions parameterizes Authenticate per route. The zero value admits
// any verified user.
type GateOptions struct {
	Roles            []entity.Role
	SkipVerification bool
}

// Only admits verified users holding one of roles.
func Only(roles ...entity.Role) GateOptions {
	return GateOptions{Roles: roles}
}

func (o GateOptions) permits(r entity.Role) bool {
	if len(o.Roles) == 0 {
		return true
	}
	for _, allowed := range o.Roles {
		if allowed == r {
			return true
		}
	}
	return false
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// Authenticate resolves the bearer token to a user and attaches it to the
// request. Failures stop the chain with 401 (no or bad credential) or 403
// (unverified or wrong role).
func Authenticate(users UserLoader, tokens TokenVerifier, opts GateOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "access denied, no token provided", nil)
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, apperr.ErrExpiredToken) {
				msg = "token expired"
			}
			response.Abort(c, http.StatusUnauthorized, msg, nil)
			return
		}

		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				response.Abort(c, http.StatusUnauthorized, "invalid token, user not found", nil)
				return
			}
			response.Abort(c, http.StatusInternalServerError, "authentication failed", nil)
			return
		}

		if !opts.SkipVerification && !u.IsVerified {
			response.Abort(c, http.StatusForbidden, apperr.ErrEmailNotVerified.Error(), nil)
			return
		}
		if !opts.permits(u.Role) {
			response.Abort(c, http.StatusForbidden, apperr.ErrForbidden.Error(), nil)
			return
		}

		c.Set(CtxUserKey, u.Auth())
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// CurrentUser returns the user attached by Authenticate.
func CurrentUser(c *gin.Context) (entity.AuthUser, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return entity.AuthUser{}, false
	}
	u, ok := v.(entity.AuthUser)
	return u, ok
}

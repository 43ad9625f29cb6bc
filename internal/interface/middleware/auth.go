package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/apitemplate/go-user-api/internal/domain/entity"
	"github.com/apitemplate/go-user-api/internal/domain/repository"
	"github.com/apitemplate/go-user-api/pkg/helpers"
	"github.com/apitemplate/go-user-api/pkg/response"
)

const (
	// CtxUserKey holds the *entity.User loaded by Protect.
	CtxUserKey = "user"
	// CtxUserIDKey holds the authenticated user's id.
	CtxUserIDKey = "userID"

	bearerPrefix = "Bearer "

	// One message for every token failure; callers must not learn whether the
	// token was missing, malformed, expired, or forged.
	msgUnauthorized = "Not authorized"
)

// Protect verifies the Authorization bearer token, resolves the principal it
// names, and attaches the user (without password) to the request context.
// A valid token whose subject no longer exists is rejected, which covers
// deleted accounts holding unexpired tokens.
func Protect(repo repository.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			response.Abort(c, http.StatusUnauthorized, msgUnauthorized, nil)
			return
		}
		token := header[len(bearerPrefix):]

		claims, err := jwt.Verify(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, msgUnauthorized, nil)
			return
		}
		// Verify already checked expiry; re-check here so a change in the JWT
		// library's defaults can never silently admit expired tokens.
		if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
			response.Abort(c, http.StatusUnauthorized, msgUnauthorized, nil)
			return
		}

		u, err := repo.GetByID(c.Request.Context(), claims.Subject)
		if err != nil {
			// Only a missing principal is an auth failure; a storage outage
			// must not masquerade as one.
			if errors.Is(err, repository.ErrNotFound) {
				response.Abort(c, http.StatusUnauthorized, msgUnauthorized, nil)
				return
			}
			response.Abort(c, http.StatusInternalServerError, "failed to authenticate request", nil)
			return
		}

		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// RequireAdmin gates a route on the admin flag. It expects Protect to have
// run earlier in the chain.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := UserFromContext(c)
		if u == nil {
			response.Abort(c, http.StatusUnauthorized, msgUnauthorized, nil)
			return
		}
		if !u.IsAdmin {
			response.Abort(c, http.StatusForbidden, "Not authorized as admin", nil)
			return
		}
		c.Next()
	}
}

// UserFromContext returns the principal Protect attached, or nil.
func UserFromContext(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

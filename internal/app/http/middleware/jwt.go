package middleware

import (
	"net/http"
	"strings"

	"portfolio-admin/internal/api/apiutil"
	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AuthMiddleware resolves the bearer token into an Identity on the request context.
func AuthMiddleware(v auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Token verification not configured"})
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apiutil.Error(c, apperr.New(apperr.KindUnauthorized, "Authorization header missing"))
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == authHeader || tokenString == "" {
			apiutil.Error(c, apperr.New(apperr.KindUnauthorized, "Bearer token malformed"))
			return
		}

		id, err := v.Verify(c.Request.Context(), tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("token rejected")
			apiutil.Error(c, apperr.New(apperr.KindUnauthorized, "Invalid or expired token"))
			return
		}

		c.Set("subject", id.Subject)
		c.Set("email", id.Email)
		c.Set("role", id.Role)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequireRole lets through callers with role, and admins.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := auth.RequireRole(c.Request.Context(), role); err != nil {
			apiutil.Error(c, err)
			return
		}
		c.Next()
	}
}

package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/live_location_sync/internal/config"
	"github.com/shenikar/live_location_sync/internal/models"
	"github.com/shenikar/live_location_sync/pkg/token"
	"github.com/sirupsen/logrus"
)

const principalKey = "principal"

// PrincipalAuthMiddleware - middleware для аутентификации субъекта по JWT.
// Браузер не может выставить заголовок при WebSocket-апгрейде, поэтому токен
// также принимается в параметре access_token.
func PrincipalAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			raw = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if raw == "" {
			raw = c.Query("access_token")
		}

		if raw == "" {
			log.Warn("Access token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
			return
		}

		principal, err := token.Parse(cfg.JWTSecret, raw)
		if err != nil {
			log.WithError(err).Warn("Invalid access token provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// principalFrom возвращает субъекта, установленного PrincipalAuthMiddleware
func principalFrom(c *gin.Context) models.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(models.Principal); ok {
			return p
		}
	}
	return models.Principal{}
}

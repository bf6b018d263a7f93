package middleware

import (
	"net/http"
	"strings"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/observability"
	"github.com/autoprotege/app-sinistro/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware extracts and validates the session token from the request
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := services.ParseSession(parts[1], config.AppConfig.JWTSecret)
		if err != nil {
			observability.Logger().Error("failed to validate session token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches session claims when a valid Bearer token is
// present but never rejects the request. Used on endpoints shared by the
// public wizard and the authenticated dashboard, where the presence of a
// session changes behavior without being required.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.Split(c.GetHeader("Authorization"), " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := services.ParseSession(parts[1], config.AppConfig.JWTSecret); err == nil {
				c.Set("claims", claims)
			}
		}
		c.Next()
	}
}

// RequireRole checks that the session carries one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("claims")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Claims not found"})
			c.Abort()
			return
		}

		sessionClaims, ok := claims.(*models.SessionClaims)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid claims type"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if sessionClaims.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

// RequireAdmin checks if the user has admin privileges
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(config.AppConfig.AdminGroup)
}

// RequireManager allows both managers and admins
func RequireManager() gin.HandlerFunc {
	return RequireRole(config.AppConfig.AdminGroup, config.AppConfig.ManagerGroup)
}

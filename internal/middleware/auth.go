package middleware

import (
	"net/http"
	"strings"

	"lokma/config"
	"lokma/internal/auth"
	"lokma/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	ctxStaffID    = "staff_id"
	ctxBusinessID = "business_id"
	ctxRole       = "role"
)

// AuthRequired validates the bearer token and sets staff id, business id and role in context.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ctxStaffID, claims.StaffID)
		c.Set(ctxBusinessID, claims.BusinessID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// BusinessAccess allows the request when the :id path parameter is the caller's business, or the caller is an admin.
func BusinessAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) == domain.RoleAdmin || GetBusinessID(c) == c.Param("id") {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// SharedSecret guards internal endpoints with a static header value. An empty secret rejects everything.
func SharedSecret(header, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" || c.GetHeader(header) != secret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// GetStaffID returns the authenticated staff id (must be used after AuthRequired).
func GetStaffID(c *gin.Context) string {
	return c.GetString(ctxStaffID)
}

func GetBusinessID(c *gin.Context) string {
	return c.GetString(ctxBusinessID)
}

func GetRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

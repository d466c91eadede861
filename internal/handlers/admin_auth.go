package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/services"
)

// AdminAuthMiddleware guards the admin console routes. It accepts only the
// short-lived tokens minted by AdminService.Login and never consults the
// identity provider.
func AdminAuthMiddleware(admin services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
				Details: "authorization header missing",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
				Details: "invalid authorization header format",
			})
			c.Abort()
			return
		}

		if err := admin.ValidateToken(c.Request.Context(), tokenParts[1]); err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
				Details: "invalid or expired admin token",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/config"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
	"github.com/sankalan-edu/campus-service/internal/services"
	"github.com/sankalan-edu/campus-service/internal/utils"
)

// CasdoorAuthMiddleware provides authentication using Casdoor SDK
type CasdoorAuthMiddleware struct {
	client   *casdoorsdk.Client
	userRepo repositories.UserRepository
	profiles services.ProfileService
	logger   utils.Logger
	config   config.CasdoorConfig
}

// NewCasdoorAuthMiddleware creates a new Casdoor authentication middleware.
// The profile service is optional; when set, the stored display name is kept
// in step with the identity provider on every authenticated request.
func NewCasdoorAuthMiddleware(
	cfg config.CasdoorConfig,
	userRepo repositories.UserRepository,
	profiles services.ProfileService,
	logger utils.Logger,
) *CasdoorAuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Application,
		cfg.Organization,
	)

	return &CasdoorAuthMiddleware{
		client:   client,
		userRepo: userRepo,
		profiles: profiles,
		logger:   logger,
		config:   cfg,
	}
}

// AuthMiddleware returns a Gin middleware function for Casdoor authentication
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
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

		claims, err := cam.client.ParseJwtToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
				Details: fmt.Sprintf("invalid token: %v", err),
			})
			c.Abort()
			return
		}

		user, err := cam.extractUserFromClaims(c.Request.Context(), claims)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
				Details: fmt.Sprintf("failed to extract user info: %v", err),
			})
			c.Abort()
			return
		}

		cam.syncProfileName(c.Request.Context(), user)

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)
		c.Set("user_email", user.Email)

		c.Next()
	}
}

// RequireRoleMiddleware checks if user has required role
func (cam *CasdoorAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Forbidden",
				Details: "user role not found in context",
			})
			c.Abort()
			return
		}

		role, ok := userRole.(models.UserRole)
		if !ok {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Forbidden",
				Details: "invalid user role format",
			})
			c.Abort()
			return
		}

		hasRequiredRole := false
		for _, requiredRole := range requiredRoles {
			if role == requiredRole || role == models.RoleAdmin {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Forbidden",
				Details: fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractUserFromClaims resolves the authenticated user, preferring the
// repository (cache or Casdoor API) and falling back to the claims payload.
func (cam *CasdoorAuthMiddleware) extractUserFromClaims(ctx context.Context, claims *casdoorsdk.Claims) (*models.IdentityUser, error) {
	userID := claims.Id
	if userID == "" {
		return nil, fmt.Errorf("invalid user ID in token")
	}

	user, err := cam.userRepo.GetByID(ctx, userID)
	if err != nil {
		user = cam.userFromClaims(claims)
		if user == nil {
			return nil, fmt.Errorf("failed to build user from claims")
		}
	}

	return user, nil
}

// userFromClaims builds an identity view straight from the JWT payload.
func (cam *CasdoorAuthMiddleware) userFromClaims(claims *casdoorsdk.Claims) *models.IdentityUser {
	userID := claims.Id
	if userID == "" {
		return nil
	}

	role := models.RoleStudent
	if claims.User.IsAdmin || mapCasdoorType(claims.User.Type) == models.RoleAdmin {
		role = models.RoleAdmin
	}

	return &models.IdentityUser{
		ID:          userID,
		Name:        claims.User.Name,
		DisplayName: claims.User.DisplayName,
		Email:       claims.User.Email,
		Avatar:      claims.User.Avatar,
		Role:        role,
	}
}

func mapCasdoorType(casdoorType string) models.UserRole {
	switch strings.ToLower(casdoorType) {
	case "admin", "administrator":
		return models.RoleAdmin
	default:
		return models.RoleStudent
	}
}

// syncProfileName pushes the provider's display name into the stored profile.
// Failures are logged and never block the request.
func (cam *CasdoorAuthMiddleware) syncProfileName(ctx context.Context, user *models.IdentityUser) {
	if cam.profiles == nil {
		return
	}

	name := user.DisplayName
	if name == "" {
		name = user.Name
	}
	if name == "" {
		return
	}

	if err := cam.profiles.SyncName(ctx, user.ID, name); err != nil {
		cam.logger.Warn("profile name sync failed", "user_id", user.ID, "error", err)
	}
}

// GetUserFromContext extracts user from Gin context
func GetUserFromContext(c *gin.Context) (*models.IdentityUser, error) {
	user, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("user not found in context")
	}

	userModel, ok := user.(*models.IdentityUser)
	if !ok {
		return nil, fmt.Errorf("invalid user type in context")
	}

	return userModel, nil
}

// GetUserIDFromContext extracts user ID from Gin context
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", fmt.Errorf("user ID not found in context")
	}

	id, ok := userID.(string)
	if !ok {
		return "", fmt.Errorf("invalid user ID type in context")
	}

	return id, nil
}

// GetUserRoleFromContext extracts user role from Gin context
func GetUserRoleFromContext(c *gin.Context) (models.UserRole, error) {
	userRole, exists := c.Get("user_role")
	if !exists {
		return "", fmt.Errorf("user role not found in context")
	}

	role, ok := userRole.(models.UserRole)
	if !ok {
		return "", fmt.Errorf("invalid user role type in context")
	}

	return role, nil
}

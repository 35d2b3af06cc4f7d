package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// RequireAuth checks for a valid bearer access token
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		if header == "" {
			apierrors.Unauthorized(c, "Authentication credentials were not provided")
			return
		}
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			apierrors.InvalidToken(c, "Authorization header must use the Bearer scheme")
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, constants.BearerPrefix), constants.TokenTypeAccess)
		if err != nil {
			apierrors.InvalidToken(c, "")
			return
		}

		// Parse already rejected tokens with a bad subject
		userID, _ := claims.UserID()

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyRoles, claims.Roles)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetActor builds the access actor from the authenticated context
func GetActor(c *gin.Context) (access.Actor, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return access.Actor{}, false
	}

	var roles []models.Role
	if v, exists := c.Get(constants.ContextKeyRoles); exists {
		roles, _ = v.([]models.Role)
	}

	return access.Actor{UserID: userID, Roles: roles}, true
}

package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// RequireRole rejects callers whose token does not carry role
// Must run after RequireAuth
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		if !actor.Has(role) {
			apierrors.Forbidden(c, fmt.Sprintf("Only users with the %s role can perform this action", role))
			return
		}

		c.Next()
	}
}

package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/access"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
)

// currentActor loads the authenticated actor or writes a 401.
func currentActor(c *gin.Context) (access.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return access.Actor{}, false
	}
	return actor, true
}

// respondCommonError handles errors shared by every registry and falls back
// to a logged 500.
func respondCommonError(c *gin.Context, err error) {
	if errors.Is(err, access.ErrForbidden) {
		apierrors.Forbidden(c, err.Error())
		return
	}

	log.Printf("[%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.FullPath(), err)
	apierrors.InternalError(c, "")
}

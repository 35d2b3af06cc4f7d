package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

type BugHandler struct {
	bugService *services.BugService
}

func NewBugHandler(bugService *services.BugService) *BugHandler {
	return &BugHandler{
		bugService: bugService,
	}
}

// CreateBug reports a bug in a project the current QA is assigned to
func (h *BugHandler) CreateBug(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	type CreateBugRequest struct {
		Title       string          `json:"title" binding:"required,max=255"`
		Description string          `json:"description"`
		Severity    models.Priority `json:"severity"`
		Project     uint64          `json:"project" binding:"required"`
		AssignedTo  *uint64         `json:"assigned_to"`
	}

	var req CreateBugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	bug, err := h.bugService.CreateBug(c.Request.Context(), actor, services.CreateBugInput{
		Title:        req.Title,
		Description:  req.Description,
		Severity:     req.Severity,
		ProjectID:    req.Project,
		AssignedToID: req.AssignedTo,
	})
	if err != nil {
		respondBugError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBugDTO(*bug))
}

// ListBugs returns the live bugs visible to the current user under view
func (h *BugHandler) ListBugs(view access.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentActor(c)
		if !ok {
			return
		}

		params := utils.GetPaginationParams(c)
		bugs, total, err := h.bugService.ListBugs(c.Request.Context(), actor, view, params)
		if err != nil {
			respondBugError(c, err)
			return
		}

		utils.SetTotalCount(c, total)
		c.JSON(http.StatusOK, dto.ToBugDTOs(bugs))
	}
}

// DeleteBug soft-deletes a bug the current QA reported
func (h *BugHandler) DeleteBug(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	bugID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid bug ID")
		return
	}

	if err := h.bugService.DeleteBug(c.Request.Context(), actor, bugID); err != nil {
		respondBugError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bug deleted successfully"})
}

func respondBugError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidSeverity),
		errors.Is(err, services.ErrInvalidBugAssignee),
		errors.Is(err, services.ErrInvalidProject):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotProjectQA):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrBugNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondCommonError(c, err)
	}
}

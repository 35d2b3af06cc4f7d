package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a project managed by the current user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	type CreateProjectRequest struct {
		Title       string   `json:"title" binding:"required,max=255"`
		Description string   `json:"project_description"`
		DueDate     *string  `json:"due_date"`
		Developers  []uint64 `json:"developers"`
		QAs         []uint64 `json:"qas"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	dueDate, err := utils.ParseDate(req.DueDate)
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", map[string]string{"due_date": err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), actor, services.CreateProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      dueDate,
		DeveloperIDs: req.Developers,
		QAIDs:        req.QAs,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns the projects visible to the current user under view
func (h *ProjectHandler) ListProjects(view access.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentActor(c)
		if !ok {
			return
		}

		params := utils.GetPaginationParams(c)
		projects, total, err := h.projectService.ListProjects(c.Request.Context(), actor, view, params)
		if err != nil {
			respondProjectError(c, err)
			return
		}

		utils.SetTotalCount(c, total)
		c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
	}
}

// AssignMembers replaces the developer and/or QA sets. An omitted field
// leaves the set untouched; an empty array clears it.
func (h *ProjectHandler) AssignMembers(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	projectID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type AssignMembersRequest struct {
		Developers []uint64 `json:"developers"`
		QAs        []uint64 `json:"qas"`
	}

	var req AssignMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	project, err := h.projectService.AssignMembers(c.Request.Context(), actor, projectID, services.AssignMembersInput{
		DeveloperIDs: req.Developers,
		QAIDs:        req.QAs,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project with its tasks and bugs
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	projectID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), actor, projectID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidDevelopers),
		errors.Is(err, services.ErrInvalidQAs):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotProjectManager):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondCommonError(c, err)
	}
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Auth    *AuthHandler
	Project *ProjectHandler
	Task    *TaskHandler
	Bug     *BugHandler
}

// RegisterRoutes mounts the API. Every path answers with and without a
// trailing slash.
func RegisterRoutes(r *gin.Engine, h Handlers, tokens *services.TokenService) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Tracker API is running",
		})
	})

	api := r.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	handle(auth, http.MethodPost, "/login", h.Auth.Login)
	handle(auth, http.MethodPost, "/refresh", h.Auth.Refresh)

	authed := middleware.RequireAuth(tokens)
	pm := middleware.RequireRole(models.RoleProjectManager)
	dev := middleware.RequireRole(models.RoleDeveloper)
	qa := middleware.RequireRole(models.RoleQA)

	users := api.Group("/users")
	handle(users, http.MethodPost, "/register", h.Auth.Register)
	handle(users, http.MethodGet, "/me", authed, h.Auth.GetCurrentUser)
	handle(users, http.MethodGet, "/developers", authed, pm, h.Auth.ListUsersByRole(models.RoleDeveloper))
	handle(users, http.MethodGet, "/qas", authed, pm, h.Auth.ListUsersByRole(models.RoleQA))

	projects := api.Group("/projects", authed)
	projectID := middleware.RequireIDParam("project")
	handle(projects, http.MethodPost, "/create", pm, h.Project.CreateProject)
	handle(projects, http.MethodPatch, "/:id/assign", pm, projectID, h.Project.AssignMembers)
	handle(projects, http.MethodDelete, "/:id/delete", pm, projectID, h.Project.DeleteProject)
	handle(projects, http.MethodGet, "/pm", pm, h.Project.ListProjects(access.ViewManager))
	handle(projects, http.MethodGet, "/dev", dev, h.Project.ListProjects(access.ViewDeveloper))
	handle(projects, http.MethodGet, "/qa", qa, h.Project.ListProjects(access.ViewQA))

	tasks := api.Group("/tasks", authed, pm)
	handle(tasks, http.MethodPost, "/create", h.Task.CreateTask)
	handle(tasks, http.MethodPost, "/generate", h.Task.GenerateTasks)
	handle(tasks, http.MethodGet, "/list", h.Task.ListTasks)
	handle(tasks, http.MethodDelete, "/:id/delete", middleware.RequireIDParam("task"), h.Task.DeleteTask)

	bugs := api.Group("/bugs", authed)
	handle(bugs, http.MethodPost, "/create", qa, h.Bug.CreateBug)
	handle(bugs, http.MethodGet, "/qa", qa, h.Bug.ListBugs(access.ViewQA))
	handle(bugs, http.MethodGet, "/qa/reported", qa, h.Bug.ListBugs(access.ViewQAReported))
	handle(bugs, http.MethodGet, "/pm", pm, h.Bug.ListBugs(access.ViewManager))
	handle(bugs, http.MethodGet, "/dev", dev, h.Bug.ListBugs(access.ViewDeveloper))
	handle(bugs, http.MethodDelete, "/:id/delete", qa, middleware.RequireIDParam("bug"), h.Bug.DeleteBug)
}

func handle(g *gin.RouterGroup, method, path string, handlers ...gin.HandlerFunc) {
	path = strings.TrimSuffix(path, "/")
	g.Handle(method, path, handlers...)
	g.Handle(method, path+"/", handlers...)
}

package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// ErrDuplicateUsername is returned when a user with the same username exists.
var ErrDuplicateUsername = errors.New("user repository: username already exists")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithRole creates a user and its single role membership in one
	// transaction. The role group is created on first use.
	CreateWithRole(ctx context.Context, user *models.User, role models.Role) error

	// FindByID finds a user by ID with groups preloaded
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username with groups preloaded
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// ListByRole lists every user holding role
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)

	// FindByIDsWithRole returns the users among ids that hold any of roles
	FindByIDsWithRole(ctx context.Context, ids []uint64, roles []models.Role) ([]models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithMembers creates a project and its initial developer and QA
	// sets in one transaction
	CreateWithMembers(ctx context.Context, project *models.Project, developerIDs, qaIDs []uint64) error

	// FindByID finds a project by ID with members preloaded
	FindByID(ctx context.Context, id uint64) (*models.Project, error)

	// FindInScope finds a project by ID only if it falls inside scope
	FindInScope(ctx context.Context, id uint64, scope access.Scope) (*models.Project, error)

	// List returns the projects inside scope, newest first
	List(ctx context.Context, scope access.Scope, page utils.PaginationParams) ([]models.Project, int64, error)

	// ReplaceMembers replaces the developer and/or QA set. A nil slice leaves
	// the set unchanged; an empty slice clears it.
	ReplaceMembers(ctx context.Context, projectID uint64, developerIDs, qaIDs []uint64) error

	// Delete physically deletes a project with its tasks, bugs and memberships
	Delete(ctx context.Context, id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with relations preloaded
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List returns the tasks inside scope, newest first
	List(ctx context.Context, scope access.Scope, page utils.PaginationParams) ([]models.Task, int64, error)

	// SoftDelete flags the tasks matching scope as deleted and reports
	// whether any row changed
	SoftDelete(ctx context.Context, scope access.Scope) (bool, error)
}

// BugRepository defines the interface for bug data access
type BugRepository interface {
	// Create creates a new bug
	Create(ctx context.Context, bug *models.Bug) error

	// FindByID finds a bug by ID with relations preloaded
	FindByID(ctx context.Context, id uint64) (*models.Bug, error)

	// List returns the bugs inside scope, newest first
	List(ctx context.Context, scope access.Scope, page utils.PaginationParams) ([]models.Bug, int64, error)

	// SoftDelete flags the bugs matching scope as deleted and reports
	// whether any row changed
	SoftDelete(ctx context.Context, scope access.Scope) (bool, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrNotProjectManager = errors.New("only the project manager of this project can perform this action")
	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidDevelopers = errors.New("one or more developers do not exist or do not hold the Developer role")
	ErrInvalidQAs        = errors.New("one or more QAs do not exist or do not hold the QA role")
	ErrInvalidProject    = errors.New("invalid project")
	ErrProjectCodeFailed = errors.New("failed to generate project code")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Title        string
	Description  string
	DueDate      *time.Time
	DeveloperIDs []uint64
	QAIDs        []uint64
}

// AssignMembersInput carries the replacement member sets. A nil slice means
// the field was absent and the set is left as is.
type AssignMembersInput struct {
	DeveloperIDs []uint64
	QAIDs        []uint64
}

// CreateProject creates a project managed by the actor.
func (s *ProjectService) CreateProject(ctx context.Context, actor access.Actor, input CreateProjectInput) (*models.Project, error) {
	if err := actor.Require(models.RoleProjectManager); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	developerIDs, err := s.validateMembers(ctx, input.DeveloperIDs, models.RoleDeveloper, ErrInvalidDevelopers)
	if err != nil {
		return nil, err
	}
	qaIDs, err := s.validateMembers(ctx, input.QAIDs, models.RoleQA, ErrInvalidQAs)
	if err != nil {
		return nil, err
	}

	code, err := utils.GenerateProjectCode()
	if err != nil {
		return nil, ErrProjectCodeFailed
	}

	managerID := actor.UserID
	now := time.Now().UTC()
	project := &models.Project{
		Code:             code,
		Title:            title,
		Description:      input.Description,
		Status:           models.ProjectStatusActive,
		StartDate:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		DueDate:          input.DueDate,
		ProjectManagerID: &managerID,
	}

	if err := s.projectRepo.CreateWithMembers(ctx, project, developerIDs, qaIDs); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(ctx, project.ID)
}

// ListProjects returns the projects visible to the actor under view.
func (s *ProjectService) ListProjects(ctx context.Context, actor access.Actor, view access.View, page utils.PaginationParams) ([]models.Project, int64, error) {
	if err := actor.Authorize(view); err != nil {
		return nil, 0, err
	}

	projects, total, err := s.projectRepo.List(ctx, access.ProjectScope(actor, view), page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// AssignMembers replaces the developer and/or QA sets of a project the actor manages.
func (s *ProjectService) AssignMembers(ctx context.Context, actor access.Actor, projectID uint64, input AssignMembersInput) (*models.Project, error) {
	if _, err := s.managedProject(ctx, actor, projectID); err != nil {
		return nil, err
	}

	developerIDs, err := s.validateMembers(ctx, input.DeveloperIDs, models.RoleDeveloper, ErrInvalidDevelopers)
	if err != nil {
		return nil, err
	}
	qaIDs, err := s.validateMembers(ctx, input.QAIDs, models.RoleQA, ErrInvalidQAs)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.ReplaceMembers(ctx, projectID, developerIDs, qaIDs); err != nil {
		return nil, fmt.Errorf("failed to assign members: %w", err)
	}

	return s.projectRepo.FindByID(ctx, projectID)
}

// DeleteProject removes a project the actor manages together with its tasks and bugs.
func (s *ProjectService) DeleteProject(ctx context.Context, actor access.Actor, projectID uint64) error {
	if _, err := s.managedProject(ctx, actor, projectID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) managedProject(ctx context.Context, actor access.Actor, projectID uint64) (*models.Project, error) {
	if err := actor.Require(models.RoleProjectManager); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !project.ManagedBy(actor.UserID) {
		return nil, ErrNotProjectManager
	}
	return project, nil
}

// validateMembers deduplicates ids and checks every one of them holds role.
// nil stays nil so callers can tell an absent field from an empty one.
func (s *ProjectService) validateMembers(ctx context.Context, ids []uint64, role models.Role, invalid error) ([]uint64, error) {
	if ids == nil {
		return nil, nil
	}

	unique := uniqueUint64(ids)
	if len(unique) == 0 {
		return unique, nil
	}

	users, err := s.userRepo.FindByIDsWithRole(ctx, unique, []models.Role{role})
	if err != nil {
		return nil, fmt.Errorf("failed to verify users: %w", err)
	}
	if len(users) != len(unique) {
		return nil, invalid
	}
	return unique, nil
}

// eligibleProject resolves a project foreign key against the actor's eligible
// set. A project that exists outside the set yields denied; an unknown id is
// a validation failure.
func eligibleProject(ctx context.Context, repo repository.ProjectRepository, projectID uint64, eligible access.Scope, denied error) (*models.Project, error) {
	project, err := repo.FindInScope(ctx, projectID, eligible)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if _, err := repo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidProject
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return nil, denied
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}

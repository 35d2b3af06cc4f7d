package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

var (
	ErrBugNotFound        = errors.New("bug not found")
	ErrNotProjectQA       = errors.New("only QAs assigned to this project can report bugs in it")
	ErrInvalidSeverity    = errors.New("invalid severity")
	ErrInvalidBugAssignee = errors.New("assignee does not exist or is not a Developer")
)

// BugService handles bug business logic
type BugService struct {
	bugRepo     repository.BugRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewBugService creates a new BugService
func NewBugService(bugRepo repository.BugRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *BugService {
	return &BugService{
		bugRepo:     bugRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateBugInput represents input for reporting a bug
type CreateBugInput struct {
	Title        string
	Description  string
	Severity     models.Priority
	ProjectID    uint64
	AssignedToID *uint64
}

// CreateBug reports a bug in a project the actor is QA on. The actor is
// always recorded as reporter and new bugs start in NEW.
func (s *BugService) CreateBug(ctx context.Context, actor access.Actor, input CreateBugInput) (*models.Bug, error) {
	if err := actor.Require(models.RoleQA); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.Severity == "" {
		input.Severity = models.PriorityMedium
	}
	if !input.Severity.Valid() {
		return nil, ErrInvalidSeverity
	}

	project, err := eligibleProject(ctx, s.projectRepo, input.ProjectID, access.BugProjects(actor), ErrNotProjectQA)
	if err != nil {
		return nil, err
	}

	if input.AssignedToID != nil {
		users, err := s.userRepo.FindByIDsWithRole(ctx, []uint64{*input.AssignedToID}, access.BugAssigneeRoles)
		if err != nil {
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
		if len(users) == 0 {
			return nil, ErrInvalidBugAssignee
		}
	}

	reporterID := actor.UserID
	bug := &models.Bug{
		Title:        title,
		Description:  input.Description,
		Status:       models.BugStatusNew,
		Severity:     input.Severity,
		ProjectID:    project.ID,
		ReportedByID: &reporterID,
		AssignedToID: input.AssignedToID,
	}

	if err := s.bugRepo.Create(ctx, bug); err != nil {
		return nil, fmt.Errorf("failed to create bug: %w", err)
	}

	return s.bugRepo.FindByID(ctx, bug.ID)
}

// ListBugs returns the live bugs visible to the actor under view
func (s *BugService) ListBugs(ctx context.Context, actor access.Actor, view access.View, page utils.PaginationParams) ([]models.Bug, int64, error) {
	if err := actor.Authorize(view); err != nil {
		return nil, 0, err
	}

	bugs, total, err := s.bugRepo.List(ctx, access.BugScope(actor, view), page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bugs: %w", err)
	}
	return bugs, total, nil
}

// DeleteBug soft-deletes a live bug the actor reported
func (s *BugService) DeleteBug(ctx context.Context, actor access.Actor, bugID uint64) error {
	if err := actor.Require(models.RoleQA); err != nil {
		return err
	}

	deleted, err := s.bugRepo.SoftDelete(ctx, access.OwnedBug(actor, bugID))
	if err != nil {
		return fmt.Errorf("failed to delete bug: %w", err)
	}
	if !deleted {
		return ErrBugNotFound
	}
	return nil
}

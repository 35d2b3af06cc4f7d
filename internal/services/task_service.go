package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrInvalidTaskStatus      = errors.New("invalid task status")
	ErrInvalidPriority        = errors.New("invalid priority")
	ErrInvalidTaskAssignee    = errors.New("assignee does not exist or is not a Developer or QA")
	ErrTextRequired           = errors.New("text is required")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	generator   TaskDraftGenerator
}

// NewTaskService creates a new TaskService. generator may be nil.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, generator TaskDraftGenerator) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		generator:   generator,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.Priority
	ProjectID   uint64
	AssigneeID  *uint64
	DueDate     *time.Time
}

// GenerateTasksInput represents input for AI task generation
type GenerateTasksInput struct {
	Text      string
	ProjectID uint64
}

// CreateTask creates a task inside a project the actor manages
func (s *TaskService) CreateTask(ctx context.Context, actor access.Actor, input CreateTaskInput) (*models.Task, error) {
	if err := actor.Require(models.RoleProjectManager); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.Status == "" {
		input.Status = models.TaskStatusBacklog
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	project, err := eligibleProject(ctx, s.projectRepo, input.ProjectID, access.TaskProjects(actor), ErrNotProjectManager)
	if err != nil {
		return nil, err
	}

	// TODO: restrict the assignee to the project's developer and QA sets once
	// clients only offer project members.
	if input.AssigneeID != nil {
		users, err := s.userRepo.FindByIDsWithRole(ctx, []uint64{*input.AssigneeID}, access.TaskAssigneeRoles)
		if err != nil {
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
		if len(users) == 0 {
			return nil, ErrInvalidTaskAssignee
		}
	}

	creatorID := actor.UserID
	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		ProjectID:   project.ID,
		AssigneeID:  input.AssigneeID,
		CreatedByID: &creatorID,
		DueDate:     input.DueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID)
}

// ListTasks returns the live tasks the actor created
func (s *TaskService) ListTasks(ctx context.Context, actor access.Actor, page utils.PaginationParams) ([]models.Task, int64, error) {
	if err := actor.Authorize(access.ViewManager); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.List(ctx, access.TaskScope(actor, access.ViewManager), page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// DeleteTask soft-deletes a live task the actor created. Already deleted and
// foreign tasks are both reported as not found.
func (s *TaskService) DeleteTask(ctx context.Context, actor access.Actor, taskID uint64) error {
	if err := actor.Require(models.RoleProjectManager); err != nil {
		return err
	}

	deleted, err := s.taskRepo.SoftDelete(ctx, access.OwnedTask(actor, taskID))
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// GenerateTasks uses AI to draft tasks for a project the actor manages.
// Nothing is persisted.
func (s *TaskService) GenerateTasks(ctx context.Context, actor access.Actor, input GenerateTasksInput) ([]GeneratedTask, error) {
	if err := actor.Require(models.RoleProjectManager); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrTextRequired
	}

	project, err := eligibleProject(ctx, s.projectRepo, input.ProjectID, access.TaskProjects(actor), ErrNotProjectManager)
	if err != nil {
		return nil, err
	}

	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}

	aiTasks, err := s.generator.GenerateTaskDrafts(ctx, project.Title, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		aiTasks = aiTasks[:constants.MaxAIGeneratedTasks]
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, aiTask := range aiTasks {
		aiTask.Title = strings.TrimSpace(aiTask.Title)
		if aiTask.Title == "" {
			continue
		}
		if runes := []rune(aiTask.Title); len(runes) > constants.MaxTitleLength {
			aiTask.Title = string(runes[:constants.MaxTitleLength])
		}

		if aiTask.DueDate != nil && aiTask.DueDate.Before(cutoff) {
			aiTask.DueDate = nil
		}
		if !aiTask.Priority.Valid() {
			aiTask.Priority = models.PriorityMedium
		}

		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Priority    models.Priority   `json:"priority"`
	ProjectID   uint64            `json:"project_id"`
	Project     string            `json:"project"`
	Assignee    *SimpleUserDTO    `json:"assignee"`
	CreatedBy   *SimpleUserDTO    `json:"created_by"`
	DueDate     *time.Time        `json:"due_date"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		ProjectID:   task.ProjectID,
		Project:     task.Project.Title,
		Assignee:    ToSimpleUserDTO(task.Assignee),
		CreatedBy:   ToSimpleUserDTO(task.CreatedBy),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		items[i] = ToTaskDTO(t)
	}
	return items
}

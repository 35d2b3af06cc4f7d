package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// BugDTO represents a bug in API responses
type BugDTO struct {
	ID          uint64           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      models.BugStatus `json:"status"`
	Severity    models.Priority  `json:"severity"`
	Project     ProjectRefDTO    `json:"project"`
	ReportedBy  *SimpleUserDTO   `json:"reported_by"`
	AssignedTo  *SimpleUserDTO   `json:"assigned_to"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ToBugDTO converts a Bug model to BugDTO
func ToBugDTO(bug models.Bug) BugDTO {
	return BugDTO{
		ID:          bug.ID,
		Title:       bug.Title,
		Description: bug.Description,
		Status:      bug.Status,
		Severity:    bug.Severity,
		Project: ProjectRefDTO{
			ID:    bug.ProjectID,
			Title: bug.Project.Title,
		},
		ReportedBy: ToSimpleUserDTO(bug.ReportedBy),
		AssignedTo: ToSimpleUserDTO(bug.AssignedTo),
		CreatedAt:  bug.CreatedAt,
	}
}

// ToBugDTOs converts a slice of bugs
func ToBugDTOs(bugs []models.Bug) []BugDTO {
	items := make([]BugDTO, len(bugs))
	for i, b := range bugs {
		items[i] = ToBugDTO(b)
	}
	return items
}

package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// ProjectDTO represents a project with its manager and member sets
type ProjectDTO struct {
	ID             uint64               `json:"id"`
	Code           string               `json:"code"`
	Title          string               `json:"title"`
	Description    string               `json:"project_description"`
	Status         models.ProjectStatus `json:"status"`
	StartDate      time.Time            `json:"start_date"`
	DueDate        *time.Time           `json:"due_date"`
	ProjectManager *UserDTO             `json:"project_manager"`
	Developers     []UserDTO            `json:"developers"`
	QAs            []UserDTO            `json:"qas"`
	CreatedAt      time.Time            `json:"created_at"`
}

// ProjectRefDTO is the compact project shape embedded in bug responses
type ProjectRefDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Code:        project.Code,
		Title:       project.Title,
		Description: project.Description,
		Status:      project.Status,
		StartDate:   project.StartDate,
		DueDate:     project.DueDate,
		Developers:  ToUserDTOs(project.Developers),
		QAs:         ToUserDTOs(project.QAs),
		CreatedAt:   project.CreatedAt,
	}

	if project.ProjectManager != nil && project.ProjectManager.ID != 0 {
		manager := ToUserDTO(*project.ProjectManager)
		dto.ProjectManager = &manager
	}

	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		items[i] = ToProjectDTO(p)
	}
	return items
}

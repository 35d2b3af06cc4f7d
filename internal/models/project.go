package models

import (
	"time"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
)

type Project struct {
	ID               uint64        `gorm:"primarykey" json:"id"`
	Code             string        `gorm:"type:varchar(10);not null" json:"code"`
	Title            string        `gorm:"type:varchar(255);not null" json:"title"`
	Description      string        `gorm:"type:text" json:"description"`
	Status           ProjectStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	StartDate        time.Time     `json:"start_date"`
	DueDate          *time.Time    `json:"due_date"`
	ProjectManagerID *uint64       `gorm:"index" json:"project_manager_id"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	// Relations
	ProjectManager *User  `gorm:"foreignKey:ProjectManagerID" json:"project_manager,omitempty"`
	Developers     []User `gorm:"many2many:project_developers;" json:"developers,omitempty"`
	QAs            []User `gorm:"many2many:project_qas;" json:"qas,omitempty"`
	Tasks          []Task `gorm:"foreignKey:ProjectID" json:"-"`
	Bugs           []Bug  `gorm:"foreignKey:ProjectID" json:"-"`
}

// ManagedBy reports whether userID is the project's manager.
func (p Project) ManagedBy(userID uint64) bool {
	return p.ProjectManagerID != nil && *p.ProjectManagerID == userID
}

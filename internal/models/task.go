package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "BACKLOG"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusInReview   TaskStatus = "IN_REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

// Priority is shared by tasks and bug severities.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Valid reports whether p is a known priority level.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'BACKLOG';index" json:"status"`
	Priority    Priority   `gorm:"type:varchar(10);not null;default:'MEDIUM';index" json:"priority"`
	ProjectID   uint64     `gorm:"not null;index" json:"project_id"`
	AssigneeID  *uint64    `json:"assignee_id"`
	CreatedByID *uint64    `json:"created_by_id"`
	DueDate     *time.Time `json:"due_date"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Project   Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee  *User   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	CreatedBy *User   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

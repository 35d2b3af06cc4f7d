package models

import (
	"time"
)

type BugStatus string

const (
	BugStatusNew        BugStatus = "NEW"
	BugStatusInProgress BugStatus = "IN_PROGRESS"
	BugStatusResolved   BugStatus = "RESOLVED"
	BugStatusClosed     BugStatus = "CLOSED"
)

type Bug struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Status       BugStatus `gorm:"type:varchar(20);not null;default:'NEW';index" json:"status"`
	Severity     Priority  `gorm:"type:varchar(10);not null;default:'MEDIUM';index" json:"severity"`
	ProjectID    uint64    `gorm:"not null;index" json:"project_id"`
	ReportedByID *uint64   `json:"reported_by_id"`
	AssignedToID *uint64   `json:"assigned_to_id"`
	IsDeleted    bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Project    Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	ReportedBy *User   `gorm:"foreignKey:ReportedByID" json:"reported_by,omitempty"`
	AssignedTo *User   `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
}

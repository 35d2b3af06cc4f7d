// Package access holds the role and ownership rules shared by the project,
// task and bug registries. Services use it to decide whether an actor may run
// an operation and to narrow queries to the rows that actor may see or touch.
package access

import (
	"errors"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

var (
	// ErrForbidden means the actor is authenticated but lacks the role or
	// ownership an operation needs.
	ErrForbidden = errors.New("you do not have permission to perform this action")
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uint64
	Roles  []models.Role
}

// Has reports whether the actor holds role.
func (a Actor) Has(role models.Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Require returns ErrForbidden unless the actor holds role.
func (a Actor) Require(role models.Role) error {
	if !a.Has(role) {
		return ErrForbidden
	}
	return nil
}

// View names a role-specific listing of a registry.
type View string

const (
	ViewManager    View = "pm"
	ViewDeveloper  View = "dev"
	ViewQA         View = "qa"
	ViewQAReported View = "qa_reported"
)

// Role returns the role an actor must hold to use the view.
func (v View) Role() models.Role {
	switch v {
	case ViewManager:
		return models.RoleProjectManager
	case ViewDeveloper:
		return models.RoleDeveloper
	case ViewQA, ViewQAReported:
		return models.RoleQA
	}
	return ""
}

// Authorize checks that the actor may use view.
func (a Actor) Authorize(v View) error {
	role := v.Role()
	if role == "" {
		return ErrForbidden
	}
	return a.Require(role)
}

// Assignee roles accepted on create.
var (
	TaskAssigneeRoles = []models.Role{models.RoleDeveloper, models.RoleQA}
	BugAssigneeRoles  = []models.Role{models.RoleDeveloper}
)

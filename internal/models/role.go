package models

// Role is the closed set of user roles. Each role is backed by a row in the
// role_groups table.
type Role string

const (
	RoleDeveloper      Role = "Developer"
	RoleProjectManager Role = "ProjectManager"
	RoleQA             Role = "QA"
)

// Roles lists every valid role.
var Roles = []Role{RoleDeveloper, RoleProjectManager, RoleQA}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Group is a named role membership target.
type Group struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name Role   `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}

// TableName avoids the GROUPS keyword reserved by MySQL 8.
func (Group) TableName() string {
	return "role_groups"
}

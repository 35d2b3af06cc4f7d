package access

import (
	"gorm.io/gorm"
)

// Scope narrows a GORM query.
type Scope = func(db *gorm.DB) *gorm.DB

func none(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// ProjectScope returns the projects visible to the actor under view.
func ProjectScope(actor Actor, view View) Scope {
	return func(db *gorm.DB) *gorm.DB {
		switch view {
		case ViewManager:
			return db.Where("projects.project_manager_id = ?", actor.UserID)
		case ViewDeveloper:
			return db.Where("projects.id IN (?)", developerProjectIDs(db, actor.UserID))
		case ViewQA:
			return db.Where("projects.id IN (?)", qaProjectIDs(db, actor.UserID))
		}
		return none(db)
	}
}

// TaskScope returns the live tasks visible to the actor under view.
func TaskScope(actor Actor, view View) Scope {
	return func(db *gorm.DB) *gorm.DB {
		switch view {
		case ViewManager:
			return db.Where("tasks.created_by_id = ? AND tasks.is_deleted = ?", actor.UserID, false)
		}
		return none(db)
	}
}

// BugScope returns the live bugs visible to the actor under view. The QA view
// is the union of bugs the actor reported and bugs in projects the actor is
// QA on.
func BugScope(actor Actor, view View) Scope {
	return func(db *gorm.DB) *gorm.DB {
		switch view {
		case ViewQA:
			return db.Where("bugs.is_deleted = ? AND (bugs.reported_by_id = ? OR bugs.project_id IN (?))",
				false, actor.UserID, qaProjectIDs(db, actor.UserID))
		case ViewQAReported:
			return db.Where("bugs.reported_by_id = ? AND bugs.is_deleted = ?", actor.UserID, false)
		case ViewManager:
			return db.Where("bugs.is_deleted = ?", false).
				Where("bugs.project_id IN (?)", managedProjectIDs(db, actor.UserID))
		case ViewDeveloper:
			return db.Where("bugs.assigned_to_id = ? AND bugs.is_deleted = ?", actor.UserID, false)
		}
		return none(db)
	}
}

// OwnedTask matches a live task created by the actor.
func OwnedTask(actor Actor, taskID uint64) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.id = ? AND tasks.created_by_id = ? AND tasks.is_deleted = ?", taskID, actor.UserID, false)
	}
}

// OwnedBug matches a live bug reported by the actor.
func OwnedBug(actor Actor, bugID uint64) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("bugs.id = ? AND bugs.reported_by_id = ? AND bugs.is_deleted = ?", bugID, actor.UserID, false)
	}
}

// TaskProjects is the set of projects the actor may create tasks in.
func TaskProjects(actor Actor) Scope {
	return ProjectScope(actor, ViewManager)
}

// BugProjects is the set of projects the actor may report bugs in.
func BugProjects(actor Actor) Scope {
	return ProjectScope(actor, ViewQA)
}

func managedProjectIDs(db *gorm.DB, userID uint64) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("projects").Select("id").Where("project_manager_id = ?", userID)
}

func developerProjectIDs(db *gorm.DB, userID uint64) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("project_developers").Select("project_id").Where("user_id = ?", userID)
}

func qaProjectIDs(db *gorm.DB, userID uint64) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("project_qas").Select("project_id").Where("user_id = ?", userID)
}

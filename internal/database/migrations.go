package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes creates the composite indexes backing the scoped list queries.
// Uses the GORM migrator so it works on every supported driver.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task list ("mine") and soft-delete lookups
		{"tasks", "idx_tasks_created_by_deleted", "created_by_id, is_deleted"},
		{"tasks", "idx_tasks_assignee_id", "assignee_id"},

		// Bug scopes per role
		{"bugs", "idx_bugs_project_deleted", "project_id, is_deleted"},
		{"bugs", "idx_bugs_reported_by_deleted", "reported_by_id, is_deleted"},
		{"bugs", "idx_bugs_assigned_to_deleted", "assigned_to_id, is_deleted"},

		// Membership lookups by user
		{"project_developers", "idx_project_developers_user_id", "user_id"},
		{"project_qas", "idx_project_qas_user_id", "user_id"},
		{"user_groups", "idx_user_groups_group_id", "group_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}

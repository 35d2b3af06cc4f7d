// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory SQLite database closed on cleanup.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: gets its own database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.Models()...))
	require.NoError(t, database.AddIndexes(db))

	database.SetDB(db)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// CreateUser inserts a user holding role. The password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	group := models.Group{Name: role}
	require.NoError(t, db.Where(models.Group{Name: role}).FirstOrCreate(&group).Error)

	user := &models.User{
		Username:     username,
		Name:         username,
		PasswordHash: string(hash),
		Groups:       []models.Group{group},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProject inserts a project managed by managerID with the given members.
func CreateProject(t *testing.T, db *gorm.DB, title string, managerID uint64, developers, qas []*models.User) *models.Project {
	t.Helper()

	project := &models.Project{
		Code:             title,
		Title:            title,
		Status:           models.ProjectStatusActive,
		ProjectManagerID: &managerID,
	}
	require.NoError(t, db.Omit("Developers", "QAs", "ProjectManager").Create(project).Error)

	addMembers(t, db, "project_developers", project.ID, developers)
	addMembers(t, db, "project_qas", project.ID, qas)
	return project
}

func addMembers(t *testing.T, db *gorm.DB, table string, projectID uint64, users []*models.User) {
	t.Helper()

	for _, u := range users {
		row := map[string]interface{}{"project_id": projectID, "user_id": u.ID}
		require.NoError(t, db.Table(table).Create(row).Error)
	}
}

// CreateTask inserts a live task created by creatorID in projectID.
func CreateTask(t *testing.T, db *gorm.DB, title string, projectID, creatorID uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:       title,
		Status:      models.TaskStatusBacklog,
		Priority:    models.PriorityMedium,
		ProjectID:   projectID,
		CreatedByID: &creatorID,
	}
	require.NoError(t, db.Omit("Project", "Assignee", "CreatedBy").Create(task).Error)
	return task
}

// CreateBug inserts a live bug reported by reporterID in projectID.
func CreateBug(t *testing.T, db *gorm.DB, title string, projectID, reporterID uint64, assignedToID *uint64) *models.Bug {
	t.Helper()

	bug := &models.Bug{
		Title:        title,
		Status:       models.BugStatusNew,
		Severity:     models.PriorityMedium,
		ProjectID:    projectID,
		ReportedByID: &reporterID,
		AssignedToID: assignedToID,
	}
	require.NoError(t, db.Omit("Project", "ReportedBy", "AssignedTo").Create(bug).Error)
	return bug
}

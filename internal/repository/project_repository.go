package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"gorm.io/gorm"
)

const (
	projectDevelopersTable = "project_developers"
	projectQAsTable        = "project_qas"
)

var projectPreloads = []string{"ProjectManager.Groups", "Developers.Groups", "QAs.Groups"}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

type projectMember struct {
	ProjectID uint64
	UserID    uint64
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithMembers creates a project and its initial member sets atomically
func (r *GormProjectRepository) CreateWithMembers(ctx context.Context, project *models.Project, developerIDs, qaIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ProjectManager", "Developers", "QAs").Create(project).Error; err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		if err := insertMembers(tx, projectDevelopersTable, project.ID, developerIDs); err != nil {
			return err
		}
		return insertMembers(tx, projectQAsTable, project.ID, qaIDs)
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	return r.FindInScope(ctx, id, func(db *gorm.DB) *gorm.DB { return db })
}

// FindInScope finds a project by ID restricted to scope
func (r *GormProjectRepository) FindInScope(ctx context.Context, id uint64, scope access.Scope) (*models.Project, error) {
	var project models.Project
	query := r.db.WithContext(ctx).Model(&models.Project{}).Scopes(scope)
	for _, p := range projectPreloads {
		query = query.Preload(p)
	}

	if err := query.Where("projects.id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects inside scope with optional pagination
func (r *GormProjectRepository) List(ctx context.Context, scope access.Scope, page utils.PaginationParams) ([]models.Project, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Project{}).Scopes(scope)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base().Scopes(database.NewestFirst("projects"), database.Paginate(page))
	for _, p := range projectPreloads {
		query = query.Preload(p)
	}

	projects := []models.Project{}
	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// ReplaceMembers replaces the provided member sets in a transaction
func (r *GormProjectRepository) ReplaceMembers(ctx context.Context, projectID uint64, developerIDs, qaIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if developerIDs != nil {
			if err := replaceMembers(tx, projectDevelopersTable, projectID, developerIDs); err != nil {
				return err
			}
		}
		if qaIDs != nil {
			return replaceMembers(tx, projectQAsTable, projectID, qaIDs)
		}
		return nil
	})
}

// Delete deletes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("delete project tasks: %w", err)
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Bug{}).Error; err != nil {
			return fmt.Errorf("delete project bugs: %w", err)
		}

		for _, table := range []string{projectDevelopersTable, projectQAsTable} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE project_id = ?", id).Error; err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

func replaceMembers(tx *gorm.DB, table string, projectID uint64, userIDs []uint64) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE project_id = ?", projectID).Error; err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return insertMembers(tx, table, projectID, userIDs)
}

func insertMembers(tx *gorm.DB, table string, projectID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	rows := make([]projectMember, len(userIDs))
	for i, userID := range userIDs {
		rows[i] = projectMember{ProjectID: projectID, UserID: userID}
	}

	if err := tx.Table(table).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

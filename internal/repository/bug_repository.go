package repository

import (
	"context"

	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// GormBugRepository is a GORM implementation of BugRepository
type GormBugRepository struct {
	db *gorm.DB
}

// NewBugRepository creates a new BugRepository
func NewBugRepository(db *gorm.DB) BugRepository {
	return &GormBugRepository{db: db}
}

// Create creates a new bug
func (r *GormBugRepository) Create(ctx context.Context, bug *models.Bug) error {
	return r.db.WithContext(ctx).Omit("Project", "ReportedBy", "AssignedTo").Create(bug).Error
}

// FindByID finds a bug by ID with project, reporter and assignee preloaded
func (r *GormBugRepository) FindByID(ctx context.Context, id uint64) (*models.Bug, error) {
	var bug models.Bug
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("ReportedBy").
		Preload("AssignedTo").
		First(&bug, id).Error; err != nil {
		return nil, err
	}
	return &bug, nil
}

// List retrieves bugs inside scope with optional pagination
func (r *GormBugRepository) List(ctx context.Context, scope access.Scope, page utils.PaginationParams) ([]models.Bug, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Bug{}).Scopes(scope)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	bugs := []models.Bug{}
	if err := base().
		Scopes(database.NewestFirst("bugs"), database.Paginate(page)).
		Preload("Project").
		Preload("ReportedBy").
		Preload("AssignedTo").
		Find(&bugs).Error; err != nil {
		return nil, 0, err
	}

	return bugs, total, nil
}

// SoftDelete flags the matching live bug as deleted
func (r *GormBugRepository) SoftDelete(ctx context.Context, scope access.Scope) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Bug{}).Scopes(scope).Update("is_deleted", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

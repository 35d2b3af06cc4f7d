package repository

import (
	"context"

	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit("Project", "Assignee", "CreatedBy").Create(task).Error
}

// FindByID finds a task by ID with project, assignee and creator preloaded
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Assignee").
		Preload("CreatedBy").
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks inside scope with optional pagination
func (r *GormTaskRepository) List(ctx context.Context, scope access.Scope, page utils.PaginationParams) ([]models.Task, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Task{}).Scopes(scope)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tasks := []models.Task{}
	if err := base().
		Scopes(database.NewestFirst("tasks"), database.Paginate(page)).
		Preload("Project").
		Preload("Assignee").
		Preload("CreatedBy").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// SoftDelete flips the deleted flag with a single conditional update, so a
// concurrent second caller matches no row.
func (r *GormTaskRepository) SoftDelete(ctx context.Context, scope access.Scope) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Task{}).Scopes(scope).Update("is_deleted", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

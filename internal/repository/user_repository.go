package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

type userGroup struct {
	UserID  uint64
	GroupID uint64
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithRole creates the user, ensures the role group exists and links them atomically.
func (r *GormUserRepository) CreateWithRole(ctx context.Context, user *models.User, role models.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Group{Name: role}).Error; err != nil {
			return fmt.Errorf("ensure group %s: %w", role, err)
		}

		var group models.Group
		if err := tx.Where("name = ?", role).First(&group).Error; err != nil {
			return fmt.Errorf("load group %s: %w", role, err)
		}

		if err := tx.Omit("Groups").Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateUsername
			}
			return fmt.Errorf("create user: %w", err)
		}

		if err := tx.Table("user_groups").Create(&userGroup{UserID: user.ID, GroupID: group.ID}).Error; err != nil {
			return fmt.Errorf("add user to group %s: %w", role, err)
		}

		user.Groups = []models.Group{group}
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Groups").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Groups").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByRole lists every user holding role
func (r *GormUserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Preload("Groups").
		Where("users.id IN (?)", r.usersWithRoles([]models.Role{role})).
		Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByIDsWithRole returns the users among ids that hold any of roles
func (r *GormUserRepository) FindByIDsWithRole(ctx context.Context, ids []uint64, roles []models.Role) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).
		Preload("Groups").
		Where("users.id IN ?", ids).
		Where("users.id IN (?)", r.usersWithRoles(roles)).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) usersWithRoles(roles []models.Role) *gorm.DB {
	return r.db.Table("user_groups").
		Select("user_groups.user_id").
		Joins("JOIN role_groups ON role_groups.id = user_groups.group_id").
		Where("role_groups.name IN ?", roles)
}

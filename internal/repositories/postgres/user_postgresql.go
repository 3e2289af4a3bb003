package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/repositories"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) GetByBNNumber(ctx context.Context, bnNumber string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).Where("bn_number = ?", bnNumber).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by bn_number: %w", err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).
		Where("nim = ? OR initial = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by identifier: %w", err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

func (u *UserPostgreSQL) UpdateCatalogFields(ctx context.Context, user *models.User) error {
	// Only the remote-owned fields; the stored credential stays local.
	return u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("bn_number = ?", user.BNNumber).
		Updates(map[string]interface{}{
			"name":    user.Name,
			"role":    user.Role,
			"initial": user.Initial,
		}).Error
}

func (u *UserPostgreSQL) UpdatePassword(ctx context.Context, bnNumber, hashedPassword string) error {
	return u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("bn_number = ?", bnNumber).
		Update("password", hashedPassword).Error
}

func (u *UserPostgreSQL) UpdateRole(ctx context.Context, bnNumber, role string) error {
	result := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("bn_number = ?", bnNumber).
		Update("role", role)
	if result.Error != nil {
		return fmt.Errorf("failed to update role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (u *UserPostgreSQL) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := u.db.WithContext(ctx).Order("bn_number").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

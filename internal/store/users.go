package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rental-backoffice/internal/common"
	"rental-backoffice/internal/models"
)

// UserStore persists user accounts.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflictError("user already exists with this phone")
		}
		return common.ErrStoreFailureError("failed to create user", err)
	}
	return nil
}

// FindByPhone returns nil when no user matches; phone is the login key.
func (s *UserStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query user", err)
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFoundError("user not found")
	}
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query user", err)
	}
	return &user, nil
}

// HasAdmin reports whether any admin account exists yet.
func (s *UserStore) HasAdmin(ctx context.Context) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).Count(&count).Error
	if err != nil {
		return false, common.ErrStoreFailureError("failed to count admins", err)
	}
	return count > 0, nil
}

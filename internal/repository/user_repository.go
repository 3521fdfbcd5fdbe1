package repository

import (
	"context"
	"errors"

	"delivery-service/internal/common"
	"delivery-service/internal/model"

	"gorm.io/gorm"
)

// UserRepository is the gorm-backed credential store.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a repository bound to the given database handle.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The password field must already hold the hash.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// FindByEmail returns the user with that exact email, roles preloaded.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, common.ErrNoSuchAccount
		}
		return nil, result.Error
	}
	return &user, nil
}

// FindByID returns the user with the given id.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetAll lists the contact fields of every user.
func (r *UserRepository) GetAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	result := r.db.WithContext(ctx).Select("id, email, name, lastname, phone").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// AssignRole links the user to the named role via user_has_roles.
func (r *UserRepository) AssignRole(ctx context.Context, userID uint, roleName string) error {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", roleName).First(&role).Error; err != nil {
		return err
	}
	user := model.User{ID: userID}
	return r.db.WithContext(ctx).Model(&user).Association("Roles").Append(&role)
}

// UpdateSessionToken stores the last-issued token on the user row. The
// column is informational; token validity is checked by signature alone.
func (r *UserRepository) UpdateSessionToken(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("session_token", token).Error
}

// UpdateProfile updates the mutable profile fields. Image is only touched
// when the caller provides one.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *model.User) (*model.User, error) {
	updates := map[string]interface{}{
		"name":     user.Name,
		"lastname": user.Lastname,
		"phone":    user.Phone,
	}
	if user.Image != nil {
		updates["image"] = *user.Image
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, common.ErrUserNotFound
	}
	return r.FindByID(ctx, user.ID)
}

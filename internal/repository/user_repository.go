package repository

import (
	"errors"

	"github.com/neighborly/forum/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByUsername matches the username exactly (case-sensitive).
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetFirstAdmin returns any admin account, used to route member
// messages to the moderation inbox.
func (r *UserRepository) GetFirstAdmin() (*models.User, error) {
	var user models.User
	err := r.db.Where("is_admin = ?", true).Order("id ASC").First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// GetPending returns users awaiting approval, excluding banned accounts.
func (r *UserRepository) GetPending() ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("is_approved = ? AND is_banned = ?", false, false).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// HardDelete permanently removes a user record (rejection of a pending
// registration).
func (r *UserRepository) HardDelete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

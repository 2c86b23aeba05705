package repository

import (
	"errors"

	"github.com/neighborly/forum/internal/models"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("User").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetAll returns every post, newest first. Deleted posts are included;
// content masking is the service's responsibility.
func (r *PostRepository) GetAll() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Preload("User").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// SoftDelete flags the post and records which kind of caller removed it.
// Content stays in storage.
func (r *PostRepository) SoftDelete(id uint, deletionType string) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted":    true,
			"deletion_type": deletionType,
		}).Error
}

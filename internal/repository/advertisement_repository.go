package repository

import (
	"errors"

	"github.com/neighborly/forum/internal/models"
	"gorm.io/gorm"
)

type AdvertisementRepository struct {
	db *gorm.DB
}

func NewAdvertisementRepository(db *gorm.DB) *AdvertisementRepository {
	return &AdvertisementRepository{db: db}
}

func (r *AdvertisementRepository) Create(ad *models.Advertisement) error {
	return r.db.Create(ad).Error
}

func (r *AdvertisementRepository) GetByID(id uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	err := r.db.Preload("User").First(&ad, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

// GetActive returns non-deleted advertisements, newest first. Soft
// deleted ads stay in storage but never appear in listings.
func (r *AdvertisementRepository) GetActive() ([]models.Advertisement, error) {
	var ads []models.Advertisement
	err := r.db.
		Preload("User").
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&ads).Error
	return ads, err
}

func (r *AdvertisementRepository) Save(ad *models.Advertisement) error {
	return r.db.Save(ad).Error
}

// SoftDelete flags the ad as removed by an admin. Owner deletion goes
// through HardDelete instead.
func (r *AdvertisementRepository) SoftDelete(id uint) error {
	return r.db.Model(&models.Advertisement{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// HardDelete permanently removes the ad record.
func (r *AdvertisementRepository) HardDelete(id uint) error {
	return r.db.Delete(&models.Advertisement{}, id).Error
}

package repository

import (
	"errors"

	"github.com/neighborly/forum/internal/models"
	"gorm.io/gorm"
)

// DirectoryRepository covers both public-service categories and the
// services under them.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) CreateCategory(category *models.PublicServiceCategory) error {
	return r.db.Create(category).Error
}

func (r *DirectoryRepository) GetCategoryByID(id uint) (*models.PublicServiceCategory, error) {
	var category models.PublicServiceCategory
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *DirectoryRepository) GetAllCategories() ([]models.PublicServiceCategory, error) {
	var categories []models.PublicServiceCategory
	err := r.db.Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *DirectoryRepository) SaveCategory(category *models.PublicServiceCategory) error {
	return r.db.Save(category).Error
}

// DeleteCategory removes the category permanently. Cascading service
// cleanup is the caller's responsibility.
func (r *DirectoryRepository) DeleteCategory(id uint) error {
	return r.db.Delete(&models.PublicServiceCategory{}, id).Error
}

func (r *DirectoryRepository) CreateService(service *models.PublicService) error {
	return r.db.Create(service).Error
}

func (r *DirectoryRepository) GetServiceByID(id uint) (*models.PublicService, error) {
	var service models.PublicService
	err := r.db.First(&service, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *DirectoryRepository) GetServicesByCategory(categoryID uint) ([]models.PublicService, error) {
	var services []models.PublicService
	err := r.db.Where("category_id = ?", categoryID).Order("id ASC").Find(&services).Error
	return services, err
}

func (r *DirectoryRepository) SaveService(service *models.PublicService) error {
	return r.db.Save(service).Error
}

func (r *DirectoryRepository) DeleteService(id uint) error {
	return r.db.Delete(&models.PublicService{}, id).Error
}

package service

import (
	"strings"

	"github.com/neighborly/forum/internal/apperr"
	"github.com/neighborly/forum/internal/models"
	"github.com/neighborly/forum/internal/repository"
	"github.com/neighborly/forum/pkg/logger"
	"go.uber.org/zap"
)

// DirectoryService is plain moderated CRUD for the public-service
// directory. Writes are admin-only, enforced at the transport layer on
// the cached admin claim. There is no soft delete here.
type DirectoryService struct {
	directory *repository.DirectoryRepository
}

func NewDirectoryService(directory *repository.DirectoryRepository) *DirectoryService {
	return &DirectoryService{directory: directory}
}

// CategoryGroup is a category with its services, for the grouped
// listing.
type CategoryGroup struct {
	ID          uint                   `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Services    []models.PublicService `json:"services"`
}

// ListCategories backs the one unauthenticated read endpoint in the
// system: the public directory display.
func (s *DirectoryService) ListCategories() ([]models.PublicServiceCategory, error) {
	return s.directory.GetAllCategories()
}

func (s *DirectoryService) CreateCategory(name, description string) (*models.PublicServiceCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Invalid("name is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Invalid("description is required")
	}

	category := &models.PublicServiceCategory{
		Name:        name,
		Description: description,
	}
	if err := s.directory.CreateCategory(category); err != nil {
		return nil, err
	}

	logger.Log.Info("Public service category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name),
	)
	return category, nil
}

// UpdateCategory is patch-style: blank fields keep prior values.
func (s *DirectoryService) UpdateCategory(id uint, name, description string) (*models.PublicServiceCategory, error) {
	category, err := s.directory.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("public service category not found")
	}

	if strings.TrimSpace(name) != "" {
		category.Name = name
	}
	if strings.TrimSpace(description) != "" {
		category.Description = description
	}

	if err := s.directory.SaveCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category immediately and permanently.
// Cascading cleanup of its services is the caller's responsibility.
func (s *DirectoryService) DeleteCategory(id uint) error {
	category, err := s.directory.GetCategoryByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperr.NotFound("public service category not found")
	}
	return s.directory.DeleteCategory(id)
}

// ListGrouped returns every category with its services.
func (s *DirectoryService) ListGrouped() ([]CategoryGroup, error) {
	categories, err := s.directory.GetAllCategories()
	if err != nil {
		return nil, err
	}

	result := make([]CategoryGroup, 0, len(categories))
	for _, category := range categories {
		services, err := s.directory.GetServicesByCategory(category.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, CategoryGroup{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
			Services:    services,
		})
	}
	return result, nil
}

func (s *DirectoryService) CreateService(name string, categoryID uint, phoneNumber, status string) (*models.PublicService, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Invalid("name is required")
	}
	if strings.TrimSpace(phoneNumber) == "" {
		return nil, apperr.Invalid("phone_number is required")
	}
	if strings.TrimSpace(status) == "" {
		return nil, apperr.Invalid("status is required")
	}

	category, err := s.directory.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("category not found")
	}

	service := &models.PublicService{
		Name:        name,
		CategoryID:  category.ID,
		PhoneNumber: phoneNumber,
		Status:      status,
	}
	if err := s.directory.CreateService(service); err != nil {
		return nil, err
	}

	logger.Log.Info("Public service created",
		zap.Uint("service_id", service.ID),
		zap.Uint("category_id", category.ID),
	)
	return service, nil
}

// UpdateServiceInput is partial; a nil CategoryID keeps the current
// category.
type UpdateServiceInput struct {
	Name        string
	CategoryID  *uint
	PhoneNumber string
	Status      string
}

func (s *DirectoryService) UpdateService(id uint, input UpdateServiceInput) (*models.PublicService, error) {
	service, err := s.directory.GetServiceByID(id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperr.NotFound("public service not found")
	}

	if strings.TrimSpace(input.Name) != "" {
		service.Name = input.Name
	}
	if input.CategoryID != nil {
		category, err := s.directory.GetCategoryByID(*input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperr.NotFound("category not found")
		}
		service.CategoryID = category.ID
	}
	if strings.TrimSpace(input.PhoneNumber) != "" {
		service.PhoneNumber = input.PhoneNumber
	}
	if strings.TrimSpace(input.Status) != "" {
		service.Status = input.Status
	}

	if err := s.directory.SaveService(service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *DirectoryService) DeleteService(id uint) error {
	service, err := s.directory.GetServiceByID(id)
	if err != nil {
		return err
	}
	if service == nil {
		return apperr.NotFound("public service not found")
	}
	return s.directory.DeleteService(id)
}

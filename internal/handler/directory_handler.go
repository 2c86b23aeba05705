package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neighborly/forum/internal/service"
)

type DirectoryHandler struct {
	directoryService *service.DirectoryService
}

func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateServiceRequest struct {
	Name        string `json:"name"`
	Category    uint   `json:"category"`
	PhoneNumber string `json:"phone_number"`
	Status      string `json:"status"`
}

type UpdateServiceRequest struct {
	Name        string `json:"name"`
	Category    *uint  `json:"category"`
	PhoneNumber string `json:"phone_number"`
	Status      string `json:"status"`
}

// GET /api/public-services/categories
// The one unauthenticated read endpoint: anonymous directory display.
func (h *DirectoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.directoryService.ListCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GET /api/public-services
func (h *DirectoryHandler) ListGrouped(c *gin.Context) {
	groups, err := h.directoryService.ListGrouped()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// POST /api/public-services/categories
func (h *DirectoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	category, err := h.directoryService.CreateCategory(req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Public service category created successfully",
		"category": category,
	})
}

// PUT /api/public-services/categories/:id
func (h *DirectoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	category, err := h.directoryService.UpdateCategory(categoryID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Public service category updated successfully",
		"category": category,
	})
}

// DELETE /api/public-services/categories/:id
func (h *DirectoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.directoryService.DeleteCategory(categoryID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Public service category deleted successfully"})
}

// POST /api/public-services
func (h *DirectoryHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc, err := h.directoryService.CreateService(req.Name, req.Category, req.PhoneNumber, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Public service created successfully",
		"service": svc,
	})
}

// PUT /api/public-services/:id
func (h *DirectoryHandler) UpdateService(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc, err := h.directoryService.UpdateService(serviceID, service.UpdateServiceInput{
		Name:        req.Name,
		CategoryID:  req.Category,
		PhoneNumber: req.PhoneNumber,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Public service updated successfully",
		"service": svc,
	})
}

// DELETE /api/public-services/:id
func (h *DirectoryHandler) DeleteService(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.directoryService.DeleteService(serviceID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Public service deleted successfully"})
}

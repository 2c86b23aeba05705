package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/neighborly/forum/internal/service"
	"github.com/neighborly/forum/internal/uploads"
	"github.com/neighborly/forum/pkg/logger"
	"go.uber.org/zap"
)

// AdvertisementHandler owns the two boundary adapters for ad writes:
// JSON bodies carry pre-existing image references, multipart forms carry
// raw uploads that are stored first. Both feed the same command object,
// the service never sees the difference.
type AdvertisementHandler struct {
	adService *service.AdvertisementService
	images    *uploads.Store
}

func NewAdvertisementHandler(adService *service.AdvertisementService, images *uploads.Store) *AdvertisementHandler {
	return &AdvertisementHandler{
		adService: adService,
		images:    images,
	}
}

type CreateAdvertisementRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Price       float64  `json:"price"`
	PhoneNumber string   `json:"phone_number"`
	Images      []string `json:"images"`
}

type UpdateAdvertisementRequest struct {
	Title   string          `json:"title"`
	Content string          `json:"content"`
	Images  OptionalStrings `json:"images"`
}

// OptionalStrings distinguishes an absent JSON key from an explicit
// null: UnmarshalJSON only runs when the key is present in the body.
type OptionalStrings struct {
	Set   bool
	Value []string
}

func (o *OptionalStrings) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Refs maps to the service's pointer semantics: an absent key leaves
// the image list untouched, while an explicit null clears it the same
// way an empty list does.
func (o OptionalStrings) Refs() *[]string {
	if !o.Set {
		return nil
	}
	refs := o.Value
	if refs == nil {
		refs = []string{}
	}
	return &refs
}

// GET /api/advertisements
func (h *AdvertisementHandler) List(c *gin.Context) {
	ads, err := h.adService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ads)
}

// POST /api/advertisements
func (h *AdvertisementHandler) Create(c *gin.Context) {
	var input service.CreateAdvertisementInput

	if isMultipart(c) {
		parsed, ok := h.createInputFromForm(c)
		if !ok {
			return
		}
		input = parsed
	} else {
		var req CreateAdvertisementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		input = service.CreateAdvertisementInput{
			Title:       req.Title,
			Content:     req.Content,
			Price:       req.Price,
			PhoneNumber: req.PhoneNumber,
			ImageRefs:   req.Images,
		}
	}

	ad, err := h.adService.Create(currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Advertisement created successfully",
		"advertisement": ad,
	})
}

// PUT /api/advertisements/:id
func (h *AdvertisementHandler) Update(c *gin.Context) {
	adID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateAdvertisementInput

	if isMultipart(c) {
		parsed, ok := h.updateInputFromForm(c)
		if !ok {
			return
		}
		input = parsed
	} else {
		var req UpdateAdvertisementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		input = service.UpdateAdvertisementInput{
			Title:     req.Title,
			Content:   req.Content,
			ImageRefs: req.Images.Refs(),
		}
	}

	ad, err := h.adService.Update(adID, currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Advertisement updated successfully",
		"advertisement": ad,
	})
}

// DELETE /api/advertisements/:id
func (h *AdvertisementHandler) Delete(c *gin.Context) {
	adID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adService.Delete(adID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Advertisement deleted successfully"})
}

func isMultipart(c *gin.Context) bool {
	return strings.Contains(c.ContentType(), "multipart/form-data")
}

// createInputFromForm stores uploaded images and builds the command
// object from the form fields.
func (h *AdvertisementHandler) createInputFromForm(c *gin.Context) (service.CreateAdvertisementInput, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return service.CreateAdvertisementInput{}, false
	}

	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)

	var refs []string
	if files := form.File["images"]; len(files) > 0 {
		refs, err = h.images.SaveAll(files)
		if err != nil {
			logger.Log.Error("Failed to store uploaded images", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded images"})
			return service.CreateAdvertisementInput{}, false
		}
	}

	return service.CreateAdvertisementInput{
		Title:       c.PostForm("title"),
		Content:     c.PostForm("content"),
		Price:       price,
		PhoneNumber: c.PostForm("phone_number"),
		ImageRefs:   refs,
	}, true
}

// updateInputFromForm resolves the image outcome: new uploads either
// replace or merge with the existing list depending on
// keepExistingImages; no uploads without the keep flag clears the list.
func (h *AdvertisementHandler) updateInputFromForm(c *gin.Context) (service.UpdateAdvertisementInput, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return service.UpdateAdvertisementInput{}, false
	}

	input := service.UpdateAdvertisementInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}

	keepExisting := c.PostForm("keepExistingImages") == "true"
	files := form.File["images"]

	switch {
	case len(files) > 0:
		refs, err := h.images.SaveAll(files)
		if err != nil {
			logger.Log.Error("Failed to store uploaded images", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded images"})
			return service.UpdateAdvertisementInput{}, false
		}
		if keepExisting {
			input.AppendImageRefs = refs
		} else {
			input.ImageRefs = &refs
		}
	case !keepExisting:
		empty := []string{}
		input.ImageRefs = &empty
	}

	return input, true
}

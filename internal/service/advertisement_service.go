package service

import (
	"strings"
	"time"

	"github.com/neighborly/forum/internal/apperr"
	"github.com/neighborly/forum/internal/guard"
	"github.com/neighborly/forum/internal/models"
	"github.com/neighborly/forum/internal/repository"
	"github.com/neighborly/forum/internal/uploads"
	"github.com/neighborly/forum/pkg/logger"
	"go.uber.org/zap"
)

type AdvertisementService struct {
	ads    *repository.AdvertisementRepository
	guard  *guard.Guard
	images *uploads.Store
}

func NewAdvertisementService(ads *repository.AdvertisementRepository, g *guard.Guard, images *uploads.Store) *AdvertisementService {
	return &AdvertisementService{
		ads:    ads,
		guard:  g,
		images: images,
	}
}

// CreateAdvertisementInput is the transport-agnostic command object.
// Both the JSON and the multipart boundary adapters populate it; the
// service never sees content types or file bytes.
type CreateAdvertisementInput struct {
	Title       string
	Content     string
	Price       float64
	PhoneNumber string
	ImageRefs   []string
}

// UpdateAdvertisementInput is partial: blank strings keep prior values.
// AppendImageRefs merges new references onto the existing list;
// otherwise a non-nil ImageRefs replaces the list (empty slice clears)
// and nil keeps it untouched.
type UpdateAdvertisementInput struct {
	Title           string
	Content         string
	ImageRefs       *[]string
	AppendImageRefs []string
}

// AdProjection is the caller-facing advertisement with image references
// resolved to full URLs.
type AdProjection struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	CreatedAt   string   `json:"created_at"`
	Images      []string `json:"images"`
	Price       float64  `json:"price"`
	PhoneNumber string   `json:"phone_number"`
	Author      AdAuthor `json:"author"`
}

type AdAuthor struct {
	ID       *uint  `json:"id"`
	Username string `json:"username"`
}

// Create gates on live approval/ban state, then stores the ad with its
// serialized image reference list.
func (s *AdvertisementService) Create(userID uint, input CreateAdvertisementInput) (*AdProjection, error) {
	user, err := s.guard.RequireWriter(userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.Invalid("advertisement title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperr.Invalid("advertisement content is required")
	}
	if input.Price <= 0 {
		return nil, apperr.Invalid("advertisement price is required")
	}
	if strings.TrimSpace(input.PhoneNumber) == "" {
		return nil, apperr.Invalid("advertisement phone number is required")
	}

	ad := &models.Advertisement{
		Title:       input.Title,
		Content:     input.Content,
		UserID:      user.ID,
		Price:       input.Price,
		PhoneNumber: input.PhoneNumber,
	}
	if err := ad.SetImages(input.ImageRefs); err != nil {
		return nil, err
	}

	if err := s.ads.Create(ad); err != nil {
		logger.Log.Error("Failed to create advertisement",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	ad.User = *user

	logger.Log.Info("Advertisement created",
		zap.Uint("ad_id", ad.ID),
		zap.Uint("user_id", userID),
		zap.Int("image_count", len(input.ImageRefs)),
	)

	return s.project(ad), nil
}

// List returns active ads, newest first. Soft-deleted ads are filtered
// out entirely.
func (s *AdvertisementService) List() ([]*AdProjection, error) {
	ads, err := s.ads.GetActive()
	if err != nil {
		return nil, err
	}

	result := make([]*AdProjection, 0, len(ads))
	for i := range ads {
		result = append(result, s.project(&ads[i]))
	}
	return result, nil
}

// Update is owner-only and partial. A deleted ad cannot be edited.
func (s *AdvertisementService) Update(adID, callerID uint, input UpdateAdvertisementInput) (*AdProjection, error) {
	ad, err := s.ads.GetByID(adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, apperr.NotFound("advertisement not found")
	}

	if ad.UserID != callerID {
		return nil, apperr.Forbidden("unauthorized to update this advertisement")
	}
	if ad.IsDeleted {
		return nil, apperr.Conflict("cannot update a deleted advertisement")
	}

	if strings.TrimSpace(input.Title) != "" {
		ad.Title = input.Title
	}
	if strings.TrimSpace(input.Content) != "" {
		ad.Content = input.Content
	}
	if len(input.AppendImageRefs) > 0 {
		if err := ad.SetImages(append(ad.ImageRefs(), input.AppendImageRefs...)); err != nil {
			return nil, err
		}
	} else if input.ImageRefs != nil {
		if err := ad.SetImages(*input.ImageRefs); err != nil {
			return nil, err
		}
	}

	if err := s.ads.Save(ad); err != nil {
		logger.Log.Error("Failed to update advertisement",
			zap.Uint("ad_id", adID),
			zap.Error(err),
		)
		return nil, err
	}

	return s.project(ad), nil
}

// Delete resolves hard-vs-soft by caller identity at delete time: the
// owner permanently removes the record, an admin removing someone
// else's ad only flags it. The admin flag is re-read from the store.
func (s *AdvertisementService) Delete(adID, callerID uint) error {
	caller, err := s.guard.Actor(callerID)
	if err != nil {
		return err
	}

	ad, err := s.ads.GetByID(adID)
	if err != nil {
		return err
	}
	if ad == nil {
		return apperr.NotFound("advertisement not found")
	}

	if ad.UserID == callerID {
		if err := s.ads.HardDelete(ad.ID); err != nil {
			return err
		}
		logger.Log.Info("Advertisement hard-deleted by owner",
			zap.Uint("ad_id", adID),
			zap.Uint("caller_id", callerID),
		)
		return nil
	}

	if !caller.IsAdmin {
		return apperr.Forbidden("unauthorized to delete this advertisement")
	}

	if ad.IsDeleted {
		return apperr.Conflict("advertisement is already deleted")
	}
	if err := s.ads.SoftDelete(ad.ID); err != nil {
		return err
	}
	logger.Log.Info("Advertisement soft-deleted by admin",
		zap.Uint("ad_id", adID),
		zap.Uint("caller_id", callerID),
	)
	return nil
}

// AdminDelete is the moderation-surface soft delete. Unlike Delete it
// never removes the record, whoever owns it.
func (s *AdvertisementService) AdminDelete(adID uint) error {
	ad, err := s.ads.GetByID(adID)
	if err != nil {
		return err
	}
	if ad == nil {
		return apperr.NotFound("advertisement not found")
	}
	if ad.IsDeleted {
		return apperr.Conflict("advertisement is already deleted")
	}
	return s.ads.SoftDelete(ad.ID)
}

func (s *AdvertisementService) project(ad *models.Advertisement) *AdProjection {
	author := AdAuthor{
		Username: "Deleted User",
	}
	if ad.User.ID != 0 && !ad.User.IsBanned {
		id := ad.User.ID
		author = AdAuthor{ID: &id, Username: ad.User.Username}
	}

	return &AdProjection{
		ID:          ad.ID,
		Title:       ad.Title,
		Content:     ad.Content,
		CreatedAt:   ad.CreatedAt.Format(time.RFC3339),
		Images:      s.images.URLs(ad.ImageRefs()),
		Price:       ad.Price,
		PhoneNumber: ad.PhoneNumber,
		Author:      author,
	}
}

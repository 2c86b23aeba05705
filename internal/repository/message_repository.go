package repository

import (
	"errors"

	"github.com/neighborly/forum/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").Preload("Recipient").First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// GetConversations returns all messages where userID is either party,
// oldest first.
func (r *MessageRepository) GetConversations(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Preload("Sender").
		Preload("Recipient").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) MarkRead(id uint) error {
	return r.db.Model(&models.Message{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *MessageRepository) SoftDelete(id uint, deletionType string) error {
	return r.db.Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted":    true,
			"deletion_type": deletionType,
		}).Error
}

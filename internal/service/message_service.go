package service

import (
	"strings"
	"time"

	"github.com/neighborly/forum/internal/apperr"
	"github.com/neighborly/forum/internal/guard"
	"github.com/neighborly/forum/internal/models"
	"github.com/neighborly/forum/internal/moderation"
	"github.com/neighborly/forum/internal/notifier"
	"github.com/neighborly/forum/internal/repository"
	"github.com/neighborly/forum/pkg/logger"
	"go.uber.org/zap"
)

type MessageService struct {
	messages *repository.MessageRepository
	users    *repository.UserRepository
	guard    *guard.Guard
	broker   notifier.Broker
}

func NewMessageService(messages *repository.MessageRepository, users *repository.UserRepository, g *guard.Guard, broker notifier.Broker) *MessageService {
	return &MessageService{
		messages: messages,
		users:    users,
		guard:    g,
		broker:   broker,
	}
}

// MessageProjection is the caller-facing representation of a message.
// Parties are resolved to public summaries, never raw foreign keys.
type MessageProjection struct {
	ID           uint               `json:"id"`
	Content      string             `json:"content"`
	CreatedAt    string             `json:"created_at"`
	IsRead       bool               `json:"is_read"`
	IsDeleted    bool               `json:"is_deleted"`
	DeletionType *string            `json:"deletion_type"`
	Sender       models.UserSummary `json:"sender"`
	Recipient    models.UserSummary `json:"recipient"`
}

// SendToAdmin routes a member message to the moderation inbox. There is
// deliberately no approval gate here: pending users must be able to
// reach an admin. Banned users cannot send at all.
func (s *MessageService) SendToAdmin(senderID uint, content string) (*MessageProjection, error) {
	sender, err := s.guard.RequireSender(senderID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, apperr.Invalid("message content is required")
	}

	admin, err := s.users.GetFirstAdmin()
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, apperr.NotFound("no admin available to message")
	}

	return s.send(sender, admin, content)
}

// ReplyToUser lets an admin message any member. The admin flag is
// re-read from the store here, not taken from the token.
func (s *MessageService) ReplyToUser(senderID, recipientID uint, content string) (*MessageProjection, error) {
	sender, err := s.guard.Actor(senderID)
	if err != nil {
		return nil, err
	}
	if !sender.IsAdmin {
		return nil, apperr.Forbidden("only admins can reply to users")
	}

	recipient, err := s.users.GetByID(recipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, apperr.NotFound("user not found")
	}

	if strings.TrimSpace(content) == "" {
		return nil, apperr.Invalid("message content is required")
	}

	return s.send(sender, recipient, content)
}

func (s *MessageService) send(sender, recipient *models.User, content string) (*MessageProjection, error) {
	message := &models.Message{
		Content:     content,
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
	}
	if err := s.messages.Create(message); err != nil {
		logger.Log.Error("Failed to create message",
			zap.Uint("sender_id", sender.ID),
			zap.Uint("recipient_id", recipient.ID),
			zap.Error(err),
		)
		return nil, err
	}
	message.Sender = *sender
	message.Recipient = *recipient

	projection := projectMessage(message)

	s.publish(notifier.Event{
		Type: notifier.EventMessageUpdate,
		Data: projection,
	})

	logger.Log.Info("Message sent",
		zap.Uint("message_id", message.ID),
		zap.Uint("sender_id", sender.ID),
		zap.Uint("recipient_id", recipient.ID),
	)

	return projection, nil
}

// List returns every conversation the caller is a party to, oldest
// first, with deleted content masked.
func (s *MessageService) List(callerID uint) ([]*MessageProjection, error) {
	messages, err := s.messages.GetConversations(callerID)
	if err != nil {
		return nil, err
	}

	result := make([]*MessageProjection, 0, len(messages))
	for i := range messages {
		result = append(result, projectMessage(&messages[i]))
	}
	return result, nil
}

// MarkRead flips the read flag. Only the recipient may do this; marking
// an already-read message again is a no-op, not a conflict.
func (s *MessageService) MarkRead(messageID, callerID uint) error {
	message, err := s.messages.GetByID(messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return apperr.NotFound("message not found")
	}

	if message.RecipientID != callerID {
		return apperr.Forbidden("unauthorized to mark this message as read")
	}

	return s.messages.MarkRead(messageID)
}

// Delete runs the shared lifecycle transition with the sender as owner.
// No event is emitted for message deletion.
func (s *MessageService) Delete(messageID, callerID uint, callerIsAdmin bool) error {
	message, err := s.messages.GetByID(messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return apperr.NotFound("message not found")
	}

	by, err := moderation.Decide(message.SenderID, callerID, callerIsAdmin, message.IsDeleted)
	if err != nil {
		return err
	}

	deletionType := string(by) + "_deleted"
	if err := s.messages.SoftDelete(message.ID, deletionType); err != nil {
		logger.Log.Error("Failed to delete message",
			zap.Uint("message_id", messageID),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Message deleted",
		zap.Uint("message_id", messageID),
		zap.Uint("caller_id", callerID),
		zap.String("deletion_type", deletionType),
	)

	return nil
}

func (s *MessageService) publish(event notifier.Event) {
	if err := s.broker.Publish(event); err != nil {
		logger.Log.Warn("Failed to publish event",
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
	}
}

func projectMessage(message *models.Message) *MessageProjection {
	content := message.Content
	var deletionType *string
	if message.IsDeleted {
		content = moderation.Placeholder(message.DeletionType)
		dt := message.DeletionType
		deletionType = &dt
	}

	return &MessageProjection{
		ID:           message.ID,
		Content:      content,
		CreatedAt:    message.CreatedAt.Format(time.RFC3339),
		IsRead:       message.IsRead,
		IsDeleted:    message.IsDeleted,
		DeletionType: deletionType,
		Sender:       message.Sender.Summary(),
		Recipient:    message.Recipient.Summary(),
	}
}

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

type PostService struct {
	posts  *repository.PostRepository
	guard  *guard.Guard
	broker notifier.Broker
}

func NewPostService(posts *repository.PostRepository, g *guard.Guard, broker notifier.Broker) *PostService {
	return &PostService{
		posts:  posts,
		guard:  g,
		broker: broker,
	}
}

// AuthorProjection is what listings reveal about a post's author. Banned
// authors are anonymized.
type AuthorProjection struct {
	ID       *uint  `json:"id"`
	Username string `json:"username"`
	IsBanned bool   `json:"is_banned"`
}

// PostProjection is the caller-facing representation of a post. Deleted
// posts carry a placeholder instead of their stored content.
type PostProjection struct {
	ID           uint             `json:"id"`
	Content      string           `json:"content"`
	CreatedAt    string           `json:"created_at"`
	IsDeleted    bool             `json:"is_deleted"`
	DeletionType *string          `json:"deletion_type"`
	Author       AuthorProjection `json:"author"`
}

// Create adds a post. The caller's approval and ban state are re-read
// from the store, not taken from the token.
func (s *PostService) Create(userID uint, content string) (*PostProjection, error) {
	user, err := s.guard.RequireWriter(userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, apperr.Invalid("post content is required")
	}

	post := &models.Post{
		Content: content,
		UserID:  user.ID,
	}
	if err := s.posts.Create(post); err != nil {
		logger.Log.Error("Failed to create post",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	post.User = *user

	projection := projectPost(post)

	s.publish(notifier.Event{
		Type: notifier.EventPostUpdate,
		Data: projection,
	})

	logger.Log.Info("Post created",
		zap.Uint("post_id", post.ID),
		zap.Uint("user_id", userID),
	)

	return projection, nil
}

// List returns all posts, newest first, projected for the caller.
// Viewing the board requires an approved (or admin) account.
func (s *PostService) List(callerID uint) ([]*PostProjection, error) {
	caller, err := s.guard.Actor(callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsApproved && !caller.IsAdmin {
		return nil, apperr.Forbidden("you need to be approved to view posts")
	}

	posts, err := s.posts.GetAll()
	if err != nil {
		return nil, err
	}

	result := make([]*PostProjection, 0, len(posts))
	for i := range posts {
		result = append(result, projectPost(&posts[i]))
	}
	return result, nil
}

// Delete runs the shared lifecycle transition: owners soft-delete their
// own posts, admins soft-delete anyone else's, everything else is
// rejected. The mutation is mirrored to connected clients.
func (s *PostService) Delete(postID, callerID uint, callerIsAdmin bool) (*PostProjection, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	by, err := moderation.Decide(post.UserID, callerID, callerIsAdmin, post.IsDeleted)
	if err != nil {
		return nil, err
	}

	deletionType := string(by)
	if err := s.posts.SoftDelete(post.ID, deletionType); err != nil {
		logger.Log.Error("Failed to delete post",
			zap.Uint("post_id", postID),
			zap.Error(err),
		)
		return nil, err
	}

	post.IsDeleted = true
	post.DeletionType = deletionType
	projection := projectPost(post)

	s.publish(notifier.Event{
		Type: notifier.EventPostUpdate,
		Data: projection,
	})

	logger.Log.Info("Post deleted",
		zap.Uint("post_id", postID),
		zap.Uint("caller_id", callerID),
		zap.String("deletion_type", deletionType),
	)

	return projection, nil
}

func (s *PostService) publish(event notifier.Event) {
	if err := s.broker.Publish(event); err != nil {
		logger.Log.Warn("Failed to publish event",
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
	}
}

// projectPost applies the read-projection rule: once deleted, the
// stored content is never exposed to anyone again.
func projectPost(post *models.Post) *PostProjection {
	content := post.Content
	var deletionType *string
	if post.IsDeleted {
		content = moderation.Placeholder(post.DeletionType)
		dt := post.DeletionType
		deletionType = &dt
	}

	return &PostProjection{
		ID:           post.ID,
		Content:      content,
		CreatedAt:    post.CreatedAt.Format(time.RFC3339),
		IsDeleted:    post.IsDeleted,
		DeletionType: deletionType,
		Author:       projectAuthor(&post.User),
	}
}

// projectAuthor anonymizes banned accounts in listings.
func projectAuthor(user *models.User) AuthorProjection {
	if user.ID == 0 || user.IsBanned {
		return AuthorProjection{
			ID:       nil,
			Username: "Deleted User",
			IsBanned: true,
		}
	}
	id := user.ID
	return AuthorProjection{
		ID:       &id,
		Username: user.Username,
		IsBanned: false,
	}
}

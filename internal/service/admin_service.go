package service

import (
	"github.com/neighborly/forum/internal/apperr"
	"github.com/neighborly/forum/internal/audit"
	"github.com/neighborly/forum/internal/models"
	"github.com/neighborly/forum/internal/notifier"
	"github.com/neighborly/forum/internal/repository"
	"github.com/neighborly/forum/pkg/logger"
	"go.uber.org/zap"
)

// AdminService covers the moderation surface: account approval and
// banning plus the admin content-removal routes. Every action lands in
// the audit trail.
type AdminService struct {
	users  *repository.UserRepository
	posts  *PostService
	ads    *AdvertisementService
	broker notifier.Broker
	audit  *audit.Log
}

func NewAdminService(users *repository.UserRepository, posts *PostService, ads *AdvertisementService, broker notifier.Broker, auditLog *audit.Log) *AdminService {
	return &AdminService{
		users:  users,
		posts:  posts,
		ads:    ads,
		broker: broker,
		audit:  auditLog,
	}
}

func (s *AdminService) PendingUsers() ([]models.User, error) {
	return s.users.GetPending()
}

func (s *AdminService) AllUsers() ([]models.User, error) {
	return s.users.GetAll()
}

// Approve unlocks a pending account. Approving twice is a conflict and
// produces no state change and no event.
func (s *AdminService) Approve(targetID, actorID uint) (*models.User, error) {
	user, err := s.users.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	if user.IsApproved {
		return nil, apperr.Conflict("user is already approved")
	}

	user.IsApproved = true
	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	s.statusChanged(user.ID, "approved")
	s.record("approve_user", actorID, targetID, "")

	logger.Log.Info("User approved",
		zap.Uint("user_id", targetID),
		zap.Uint("admin_id", actorID),
	)
	return user, nil
}

// Reject permanently removes a pending registration. Approved accounts
// cannot be rejected.
func (s *AdminService) Reject(targetID, actorID uint) (*models.User, error) {
	user, err := s.users.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	if user.IsApproved {
		return nil, apperr.Conflict("cannot reject an already approved user")
	}

	if err := s.users.HardDelete(user.ID); err != nil {
		return nil, err
	}

	s.statusChanged(targetID, "rejected")
	s.record("reject_user", actorID, targetID, "")

	logger.Log.Info("User rejected and deleted",
		zap.Uint("user_id", targetID),
		zap.Uint("admin_id", actorID),
	)
	return user, nil
}

// Ban revokes write capability. Admin accounts are unbannable, whatever
// the caller's privileges.
func (s *AdminService) Ban(targetID, actorID uint) (*models.User, error) {
	user, err := s.users.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	if user.IsAdmin {
		return nil, apperr.Forbidden("cannot ban an admin user")
	}
	if user.IsBanned {
		return nil, apperr.Conflict("user is already banned")
	}

	user.IsBanned = true
	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	s.statusChanged(user.ID, "banned")
	s.record("ban_user", actorID, targetID, "")

	logger.Log.Info("User banned",
		zap.Uint("user_id", targetID),
		zap.Uint("admin_id", actorID),
	)
	return user, nil
}

func (s *AdminService) Unban(targetID, actorID uint) (*models.User, error) {
	user, err := s.users.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	if !user.IsBanned {
		return nil, apperr.Conflict("user is not banned")
	}

	user.IsBanned = false
	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	s.statusChanged(user.ID, "unbanned")
	s.record("unban_user", actorID, targetID, "")

	logger.Log.Info("User unbanned",
		zap.Uint("user_id", targetID),
		zap.Uint("admin_id", actorID),
	)
	return user, nil
}

// DeletePost removes a post through the shared lifecycle engine.
func (s *AdminService) DeletePost(postID, actorID uint) error {
	if _, err := s.posts.Delete(postID, actorID, true); err != nil {
		return err
	}
	s.record("delete_post", actorID, postID, "")
	return nil
}

// DeleteAdvertisement soft-deletes an ad from the moderation surface.
func (s *AdminService) DeleteAdvertisement(adID, actorID uint) error {
	if err := s.ads.AdminDelete(adID); err != nil {
		return err
	}
	s.record("delete_advertisement", actorID, adID, "")
	return nil
}

// AuditEntries exposes the moderation trail, oldest first.
func (s *AdminService) AuditEntries() ([]audit.Entry, error) {
	return s.audit.Entries()
}

func (s *AdminService) statusChanged(userID uint, status string) {
	event := notifier.Event{
		Type: notifier.EventUserStatusChanged,
		Data: notifier.StatusChange{UserID: userID, Status: status},
	}
	if err := s.broker.Publish(event); err != nil {
		logger.Log.Warn("Failed to publish event",
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
	}
}

func (s *AdminService) record(action string, actorID, targetID uint, note string) {
	entry := audit.Entry{
		Action:   action,
		ActorID:  actorID,
		TargetID: targetID,
		Note:     note,
	}
	if err := s.audit.Record(entry); err != nil {
		logger.Log.Warn("Failed to record audit entry",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

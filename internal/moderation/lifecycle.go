// Package moderation implements the soft-delete state machine shared by
// posts and messages. ACTIVE transitions once to DELETED(by user|admin);
// there is no restore. Stored content is never erased, readers get a
// placeholder selected by who deleted.
package moderation

import "github.com/neighborly/forum/internal/apperr"

type DeletedBy string

const (
	DeletedByUser  DeletedBy = "user"
	DeletedByAdmin DeletedBy = "admin"
)

// Placeholder strings exposed instead of deleted content. Any caller,
// including the owner and admins, sees the placeholder.
const (
	PlaceholderUser  = "This message was deleted"
	PlaceholderAdmin = "This message was deleted by an admin"
)

// Decide applies the shared transition rule for delete(entity, caller).
func Decide(ownerID, callerID uint, callerIsAdmin, alreadyDeleted bool) (DeletedBy, error) {
	if alreadyDeleted {
		return "", apperr.Conflict("already deleted")
	}
	if callerID == ownerID {
		return DeletedByUser, nil
	}
	if callerIsAdmin {
		return DeletedByAdmin, nil
	}
	return "", apperr.Forbidden("unauthorized to delete this content")
}

// Placeholder maps a stored deletion type to its read-time placeholder.
// Accepts both the post vocabulary ("user"/"admin") and the message one
// ("user_deleted"/"admin_deleted").
func Placeholder(deletionType string) string {
	switch deletionType {
	case "admin", "admin_deleted":
		return PlaceholderAdmin
	default:
		return PlaceholderUser
	}
}

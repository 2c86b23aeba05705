// Package guard resolves caller capabilities. Two strategies coexist on
// purpose: the admin flag is cached in the JWT at issuance time (revoking
// admin only takes effect on re-login), while approval and ban state are
// re-read from the store on every gated call so moderation decisions
// apply immediately.
package guard

import (
	"github.com/neighborly/forum/internal/apperr"
	"github.com/neighborly/forum/internal/models"
	"github.com/neighborly/forum/internal/repository"
)

type Guard struct {
	users *repository.UserRepository
}

func New(users *repository.UserRepository) *Guard {
	return &Guard{users: users}
}

// Actor re-reads the caller's live account state. The resolved-per-call
// strategy: never trusts approval or ban flags from the token.
func (g *Guard) Actor(userID uint) (*models.User, error) {
	user, err := g.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// RequireWriter gates content creation (posts, advertisements): the
// caller must be non-banned and approved-or-admin.
func (g *Guard) RequireWriter(userID uint) (*models.User, error) {
	user, err := g.Actor(userID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, apperr.Forbidden("you are banned and cannot perform this action")
	}
	if !user.IsApproved && !user.IsAdmin {
		return nil, apperr.Forbidden("your account is pending approval by an admin")
	}
	return user, nil
}

// RequireSender gates messaging. Pending users must still be able to
// reach an admin, so only the ban check applies.
func (g *Guard) RequireSender(userID uint) (*models.User, error) {
	user, err := g.Actor(userID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, apperr.Forbidden("you are banned and cannot send messages")
	}
	return user, nil
}

package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neighborly/forum/internal/apperr"
)

func TestDecide(t *testing.T) {
	const (
		owner = uint(1)
		other = uint(2)
	)

	testCases := []struct {
		name           string
		callerID       uint
		callerIsAdmin  bool
		alreadyDeleted bool
		wantBy         DeletedBy
		wantKind       apperr.Kind
	}{
		{
			name:     "owner_deletes_own",
			callerID: owner,
			wantBy:   DeletedByUser,
		},
		{
			name:          "admin_deletes_other",
			callerID:      other,
			callerIsAdmin: true,
			wantBy:        DeletedByAdmin,
		},
		{
			name:          "admin_deletes_own",
			callerID:      owner,
			callerIsAdmin: true,
			// Ownership wins over the admin capability; an admin
			// removing their own content is a user deletion.
			wantBy: DeletedByUser,
		},
		{
			name:     "non_owner_forbidden",
			callerID: other,
			wantKind: apperr.KindForbidden,
		},
		{
			name:           "second_delete_conflicts_for_owner",
			callerID:       owner,
			alreadyDeleted: true,
			wantKind:       apperr.KindConflict,
		},
		{
			name:           "second_delete_conflicts_for_admin",
			callerID:       other,
			callerIsAdmin:  true,
			alreadyDeleted: true,
			wantKind:       apperr.KindConflict,
		},
		{
			name:           "already_deleted_checked_before_ownership",
			callerID:       other,
			alreadyDeleted: true,
			wantKind:       apperr.KindConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			by, err := Decide(owner, tc.callerID, tc.callerIsAdmin, tc.alreadyDeleted)

			if tc.wantKind != apperr.KindInternal {
				assert.Error(t, err)
				assert.True(t, apperr.IsKind(err, tc.wantKind), "unexpected error kind: %v", err)
				assert.Empty(t, by)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantBy, by)
		})
	}
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, PlaceholderUser, Placeholder("user"))
	assert.Equal(t, PlaceholderUser, Placeholder("user_deleted"))
	assert.Equal(t, PlaceholderAdmin, Placeholder("admin"))
	assert.Equal(t, PlaceholderAdmin, Placeholder("admin_deleted"))
}

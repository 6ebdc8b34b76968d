// internal/app/policy/communitypolicy/communitypolicy.go
package communitypolicy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codelitdev/coursehub/internal/app/system/apperrors"
	"github.com/codelitdev/coursehub/internal/app/system/auth"
	"github.com/codelitdev/coursehub/internal/app/system/authz"
)

// CanManageCommunity is the guard shared by community deletion and
// membership administration.
func CanManageCommunity(actor auth.Session) error {
	if actor.UserID.IsZero() {
		return apperrors.ErrUnauthorized
	}
	if !authz.Has(actor.Permissions, authz.ManageCommunity) {
		return apperrors.ErrActionNotAllowed
	}
	return nil
}

// CanDeleteComment reports whether the actor may delete a comment or reply:
// its original author always can, and so can anyone holding the
// community-management capability.
func CanDeleteComment(actor auth.Session, authorID primitive.ObjectID) error {
	if actor.UserID.IsZero() {
		return apperrors.ErrUnauthorized
	}
	if actor.UserID == authorID {
		return nil
	}
	if authz.Has(actor.Permissions, authz.ManageCommunity) {
		return nil
	}
	return apperrors.ErrActionNotAllowed
}

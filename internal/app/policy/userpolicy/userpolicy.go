// internal/app/policy/userpolicy/userpolicy.go
package userpolicy

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codelitdev/coursehub/internal/app/store/users"
	"github.com/codelitdev/coursehub/internal/app/system/apperrors"
	"github.com/codelitdev/coursehub/internal/app/system/auth"
	"github.com/codelitdev/coursehub/internal/app/system/authz"
	"github.com/codelitdev/coursehub/internal/domain/models"
)

// CanDeleteUser is the pre-mutation guard for account deletion. It checks,
// in order: an authenticated actor, the user-management capability, and the
// self-deletion ban. It performs no data access and has no side effects.
func CanDeleteUser(actor auth.Session, targetID primitive.ObjectID) error {
	if actor.UserID.IsZero() {
		return apperrors.ErrUnauthorized
	}
	if !authz.Has(actor.Permissions, authz.ManageUsers) {
		return apperrors.ErrActionNotAllowed
	}
	if actor.UserID == targetID {
		return apperrors.ErrActionNotAllowed
	}
	return nil
}

// CheckNotLastHolder enforces the safety invariant: for every critical
// capability the target holds, some other active account in the domain must
// hold it too, so deleting the target can never leave the domain without an
// administrator. It must run to completion before any mutation, because
// everything after it is irreversible.
func CheckNotLastHolder(ctx context.Context, store *userstore.Store, target *models.User) error {
	for _, capability := range authz.CriticalCapabilities {
		if !authz.Has(target.Permissions, capability) {
			continue
		}
		n, err := store.CountOtherActiveHolders(ctx, target.DomainID, capability, target.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperrors.LastPermissionHolder(capability)
		}
	}
	return nil
}

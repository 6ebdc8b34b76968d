package deletion

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/codelitdev/coursehub/internal/app/policy/userpolicy"
	"github.com/codelitdev/coursehub/internal/app/store/users"
	"github.com/codelitdev/coursehub/internal/app/system/apperrors"
	"github.com/codelitdev/coursehub/internal/app/system/auth"
	"github.com/codelitdev/coursehub/internal/app/system/saga"
	"github.com/codelitdev/coursehub/internal/domain/models"
)

// DeleteUser removes an account and everything that depends on it. The
// actor becomes the successor for any resources the account owned.
//
// Guard and safety checks run before any write: an already-deleted target
// yields ItemNotFound, which also makes a retried deletion terminate
// cleanly. Once the saga starts, ownership is migrated first so a failure
// in a later phase never strands content pointing at a half-deleted owner.
func (w *Workflows) DeleteUser(ctx context.Context, actor auth.Session, targetID primitive.ObjectID) error {
	if err := userpolicy.CanDeleteUser(actor, targetID); err != nil {
		return err
	}

	target, err := w.users.GetByID(ctx, actor.DomainID, targetID)
	if err == userstore.ErrNotFound {
		return apperrors.ErrItemNotFound
	}
	if err != nil {
		return err
	}

	if err := userpolicy.CheckNotLastHolder(ctx, w.users, target); err != nil {
		return err
	}

	settings, err := w.domainSettings(ctx, target.DomainID)
	if err != nil {
		return err
	}

	w.log.Info("deleting user",
		zap.String("domain_id", target.DomainID.Hex()),
		zap.String("user_id", target.ID.Hex()),
		zap.String("actor_id", actor.UserID.Hex()))

	successorID := actor.UserID
	steps := []saga.Step{
		{
			Name: "migrate-ownership",
			Run: func(ctx context.Context) error {
				return w.migrateOwnership(ctx, target.DomainID, target.ID, successorID)
			},
		},
		{
			Name: "migrate-moderator-roles",
			Run: func(ctx context.Context) error {
				return w.migrateModeratorRoles(ctx, target.DomainID, target.ID, successorID)
			},
		},
		{
			Name: "reconcile-billing",
			Run: func(ctx context.Context) error {
				return w.reconcileUserBilling(ctx, settings, target.DomainID, target.ID)
			},
		},
		{
			Name: "cascade-authored-content",
			Run: func(ctx context.Context) error {
				return w.cascadeAuthoredContent(ctx, target.DomainID, target.ID)
			},
		},
		{
			Name: "scrub-references",
			Run: func(ctx context.Context) error {
				return w.scrubUserReferences(ctx, target.DomainID, target.ID)
			},
		},
		{
			Name: "purge-personal-records",
			Run: func(ctx context.Context) error {
				return w.purgePersonalRecords(ctx, target.DomainID, target.ID)
			},
		},
		{
			Name: "reclaim-avatar",
			Kind: saga.BestEffort,
			Run: func(ctx context.Context) error {
				return w.reclaimMedia(ctx, map[string]*models.Media{"avatar": target.Avatar})
			},
		},
		{
			Name: "delete-user",
			Run: func(ctx context.Context) error {
				_, err := w.users.Delete(ctx, target.DomainID, target.ID)
				return err
			},
		},
	}

	return w.runner.Run(ctx, userWorkflow, target.ID, steps)
}

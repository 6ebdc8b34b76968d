package deletion

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/codelitdev/coursehub/internal/domain/models"
)

// ownedCollections lists every collection holding resources owned by a
// single account, with the field naming the owner. Ownership of these moves
// to the successor instead of being deleted; member data stays reachable.
var ownedCollections = []struct {
	name  string
	field string
}{
	{"courses", "creator_id"},
	{"lessons", "creator_id"},
	{"payment_plans", "creator_id"},
	{"mail_templates", "creator_id"},
	{"sequences", "creator_id"},
	{"user_segments", "creator_id"},
	{"email_events", "creator_id"},
	{"themes", "creator_id"},
}

// migrateOwnership reassigns everything the subject owns to the successor.
// Each reassignment is a single UpdateMany keyed on the current owner, so a
// re-run after partial failure matches nothing and is a no-op.
func (w *Workflows) migrateOwnership(ctx context.Context, domainID, subjectID, successorID primitive.ObjectID) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, col := range ownedCollections {
		col := col
		g.Go(func() error {
			res, err := w.db.Collection(col.name).UpdateMany(ctx,
				bson.M{"domain_id": domainID, col.field: subjectID},
				bson.M{"$set": bson.M{col.field: successorID}})
			if err != nil {
				return fmt.Errorf("reassign %s: %w", col.name, err)
			}
			if res.ModifiedCount > 0 {
				w.log.Info("reassigned owned records",
					zap.String("collection", col.name),
					zap.Int64("count", res.ModifiedCount),
					zap.String("successor_id", successorID.Hex()))
			}
			return nil
		})
	}
	g.Go(func() error {
		moved, err := w.pages.ReassignCreator(ctx, domainID, subjectID, successorID)
		if err != nil {
			return fmt.Errorf("reassign pages: %w", err)
		}
		if moved > 0 {
			w.log.Info("reassigned owned records",
				zap.String("collection", "pages"),
				zap.Int64("count", moved),
				zap.String("successor_id", successorID.Hex()))
		}
		return nil
	})
	return g.Wait()
}

// migrateModeratorRoles hands the subject's system-granted community
// moderator roles to the successor, keeping the one-membership-per-user
// invariant: if the successor already belongs to the community their row is
// upgraded and the subject's row dropped, otherwise the subject's row is
// reassigned wholesale. Pages belonging to those communities follow the
// moderator.
func (w *Workflows) migrateModeratorRoles(ctx context.Context, domainID, subjectID, successorID primitive.ObjectID) error {
	mods, err := w.memberships.ListSystemModerator(ctx, domainID, subjectID)
	if err != nil {
		return err
	}
	if len(mods) == 0 {
		return nil
	}

	entityIDs := make([]primitive.ObjectID, 0, len(mods))
	for _, m := range mods {
		if err := w.memberships.MigrateModerator(ctx, domainID, m, successorID); err != nil {
			return fmt.Errorf("migrate moderator for %s %s: %w", m.EntityType, m.EntityID.Hex(), err)
		}
		entityIDs = append(entityIDs, m.EntityID)
	}
	return w.pages.ReassignCreatorForEntities(ctx, domainID, entityIDs, successorID)
}

// reclaimMedia deletes external media attached to a document being removed.
// Per-item failures are collected but do not stop the remaining deletes;
// the whole pass runs as a best-effort saga step.
func (w *Workflows) reclaimMedia(ctx context.Context, fields map[string]*models.Media) error {
	var firstErr error
	for field, m := range fields {
		if m == nil || m.MediaID == "" {
			continue
		}
		removed, err := w.media.Delete(ctx, m.MediaID)
		if err != nil {
			w.log.Warn("media delete failed",
				zap.String("field", field),
				zap.String("media_id", m.MediaID),
				zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("delete media %s: %w", m.MediaID, err)
			}
			continue
		}
		if removed {
			w.log.Info("reclaimed media",
				zap.String("field", field),
				zap.String("media_id", m.MediaID))
		}
	}
	return firstErr
}

package deletion

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/codelitdev/coursehub/internal/app/policy/communitypolicy"
	"github.com/codelitdev/coursehub/internal/app/store/communities"
	"github.com/codelitdev/coursehub/internal/app/system/apperrors"
	"github.com/codelitdev/coursehub/internal/app/system/auth"
	"github.com/codelitdev/coursehub/internal/app/system/saga"
	"github.com/codelitdev/coursehub/internal/domain/models"
)

// defaultReclaimFields are the community media fields reclaimed when the
// tenant settings don't name their own list.
var defaultReclaimFields = []string{"featured_image", "banner"}

// DeleteCommunity tears a community down to nothing: memberships and their
// billing, payment plans and the bundled memberships they created, social
// content, the presentation page, external media, and finally the community
// document itself. An id that no longer resolves yields ItemNotFound, so a
// retried deletion terminates cleanly.
func (w *Workflows) DeleteCommunity(ctx context.Context, actor auth.Session, communityID primitive.ObjectID) error {
	if err := communitypolicy.CanManageCommunity(actor); err != nil {
		return err
	}

	community, err := w.communities.GetByID(ctx, actor.DomainID, communityID)
	if err == communitystore.ErrNotFound {
		return apperrors.ErrItemNotFound
	}
	if err != nil {
		return err
	}

	settings, err := w.domainSettings(ctx, community.DomainID)
	if err != nil {
		return err
	}

	w.log.Info("deleting community",
		zap.String("domain_id", community.DomainID.Hex()),
		zap.String("community_id", community.ID.Hex()),
		zap.String("actor_id", actor.UserID.Hex()))

	steps := []saga.Step{
		{
			Name: "reconcile-memberships",
			Run: func(ctx context.Context) error {
				ms, err := w.memberships.ListByEntity(ctx, community.DomainID, community.ID, models.EntityCommunity)
				if err != nil {
					return err
				}
				return w.reconcileMemberships(ctx, settings, community.DomainID, ms)
			},
		},
		{
			Name: "remove-payment-plans",
			Run: func(ctx context.Context) error {
				return w.removePaymentPlans(ctx, settings, community.DomainID, community.ID, models.EntityCommunity)
			},
		},
		{
			Name: "cascade-content",
			Run: func(ctx context.Context) error {
				return w.cascadeCommunityContent(ctx, community.DomainID, community.ID)
			},
		},
		{
			Name: "remove-page",
			Run: func(ctx context.Context) error {
				_, err := w.pages.DeleteByEntity(ctx, community.DomainID, community.ID)
				return err
			},
		},
		{
			Name: "reclaim-media",
			Kind: saga.BestEffort,
			Run: func(ctx context.Context) error {
				return w.reclaimMedia(ctx, communityMediaFields(community, settings))
			},
		},
		{
			Name: "delete-community",
			Run: func(ctx context.Context) error {
				_, err := w.communities.Delete(ctx, community.DomainID, community.ID)
				return err
			},
		},
	}

	return w.runner.Run(ctx, communityWorkflow, community.ID, steps)
}

// communityMediaFields resolves which media attached to the community are
// reclaimed, honoring the tenant's configured field list. Unknown field
// names map to nil and are skipped by the reclaim pass.
func communityMediaFields(c *models.Community, settings models.DomainSettings) map[string]*models.Media {
	names := settings.MediaReclaimFields
	if len(names) == 0 {
		names = defaultReclaimFields
	}
	out := make(map[string]*models.Media, len(names))
	for _, name := range names {
		switch name {
		case "featured_image":
			out[name] = c.FeaturedImage
		case "banner":
			out[name] = c.Banner
		default:
			out[name] = nil
		}
	}
	return out
}

package deletion

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/codelitdev/coursehub/internal/domain/models"
)

// reconcileUserBilling settles every membership the subject holds: remote
// subscriptions are cancelled, then invoices and the membership rows are
// dropped.
func (w *Workflows) reconcileUserBilling(ctx context.Context, settings models.DomainSettings, domainID, userID primitive.ObjectID) error {
	ms, err := w.memberships.ListByUser(ctx, domainID, userID)
	if err != nil {
		return err
	}
	return w.reconcileMemberships(ctx, settings, domainID, ms)
}

// reconcileMemberships is the shared teardown for a batch of memberships.
//
// Cancellation is best-effort: a gateway that is down or misconfigured is
// logged and skipped, and the membership is still removed so the local
// store never blocks on a third party. Cancel itself is idempotent on the
// gateway side, so a saga retry that repeats this phase is safe.
func (w *Workflows) reconcileMemberships(ctx context.Context, settings models.DomainSettings, domainID primitive.ObjectID, ms []models.Membership) error {
	for _, m := range ms {
		if m.SubscriptionID != "" {
			w.cancelSubscription(ctx, settings, m)
		}
		if _, err := w.invoices.DeleteByMembership(ctx, domainID, m.ID); err != nil {
			return fmt.Errorf("delete invoices for membership %s: %w", m.ID.Hex(), err)
		}
		if err := w.memberships.Delete(ctx, domainID, m.ID); err != nil {
			return fmt.Errorf("delete membership %s: %w", m.ID.Hex(), err)
		}
	}
	return nil
}

func (w *Workflows) cancelSubscription(ctx context.Context, settings models.DomainSettings, m models.Membership) {
	method, err := w.payments(settings, m.SubscriptionMethod)
	if err != nil {
		w.log.Warn("cannot resolve payment method, skipping cancellation",
			zap.String("membership_id", m.ID.Hex()),
			zap.String("method", m.SubscriptionMethod),
			zap.Error(err))
		return
	}
	cancelled, err := method.Cancel(ctx, m.SubscriptionID)
	if err != nil {
		w.log.Warn("subscription cancellation failed",
			zap.String("membership_id", m.ID.Hex()),
			zap.String("subscription_id", m.SubscriptionID),
			zap.String("method", method.Name()),
			zap.Error(err))
		return
	}
	if cancelled {
		w.log.Info("cancelled subscription",
			zap.String("subscription_id", m.SubscriptionID),
			zap.String("method", method.Name()))
	}
}

// removePaymentPlans deletes an entity's payment plans and the memberships
// that exist only because a plan bundled them in, together with the usage
// records those bundled memberships produced. Bundled memberships get the
// same settlement as directly held ones first, so their subscriptions are
// cancelled and no invoice outlives its membership.
func (w *Workflows) removePaymentPlans(ctx context.Context, settings models.DomainSettings, domainID, entityID primitive.ObjectID, entityType string) error {
	plans, err := w.plans.ListByEntity(ctx, domainID, entityID, entityType)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		return nil
	}

	planIDs := make([]primitive.ObjectID, 0, len(plans))
	for _, p := range plans {
		planIDs = append(planIDs, p.ID)
	}

	bundled, err := w.memberships.ListIncludedInPlans(ctx, domainID, planIDs)
	if err != nil {
		return fmt.Errorf("list bundled memberships: %w", err)
	}
	for _, m := range bundled {
		if m.SubscriptionID != "" {
			w.cancelSubscription(ctx, settings, m)
		}
		if _, err := w.invoices.DeleteByMembership(ctx, domainID, m.ID); err != nil {
			return fmt.Errorf("delete invoices for bundled membership %s: %w", m.ID.Hex(), err)
		}
	}
	if _, err := w.memberships.DeleteIncludedInPlans(ctx, domainID, planIDs); err != nil {
		return fmt.Errorf("delete bundled memberships: %w", err)
	}
	_, err = w.db.Collection("activities").DeleteMany(ctx, bson.M{
		"domain_id":           domainID,
		"payment_plan_id":     bson.M{"$in": planIDs},
		"is_included_in_plan": true,
	})
	if err != nil {
		return fmt.Errorf("delete bundled activities: %w", err)
	}

	if _, err := w.plans.DeleteByEntity(ctx, domainID, entityID, entityType); err != nil {
		return fmt.Errorf("delete payment plans: %w", err)
	}
	return nil
}

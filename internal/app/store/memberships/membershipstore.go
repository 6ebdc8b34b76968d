// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/codelitdev/coursehub/internal/app/system/apperrors"
	"github.com/codelitdev/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("memberships")}
}

var (
	// ErrNotFound is returned when no membership matches in the domain.
	ErrNotFound = errors.New("membership not found")
	// ErrBadStatus is returned for a status outside the known set.
	ErrBadStatus = errors.New(`status must be "pending"|"active"|"rejected"`)
)

// GetByID loads one membership within a domain.
func (s *Store) GetByID(ctx context.Context, domainID, id primitive.ObjectID) (*models.Membership, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"_id": id, "domain_id": domainID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser returns every membership a user holds in the domain.
func (s *Store) ListByUser(ctx context.Context, domainID, userID primitive.ObjectID) ([]models.Membership, error) {
	return s.list(ctx, bson.M{"domain_id": domainID, "user_id": userID})
}

// ListByEntity returns every membership attached to one entity.
func (s *Store) ListByEntity(ctx context.Context, domainID, entityID primitive.ObjectID, entityType string) ([]models.Membership, error) {
	return s.list(ctx, bson.M{"domain_id": domainID, "entity_id": entityID, "entity_type": entityType})
}

// ListIncludedInPlans returns memberships that exist only because one of the
// given payment plans bundled their product.
func (s *Store) ListIncludedInPlans(ctx context.Context, domainID primitive.ObjectID, planIDs []primitive.ObjectID) ([]models.Membership, error) {
	if len(planIDs) == 0 {
		return nil, nil
	}
	return s.list(ctx, bson.M{
		"domain_id":           domainID,
		"is_included_in_plan": true,
		"payment_plan_id":     bson.M{"$in": planIDs},
	})
}

// ListSystemModerator returns the user's active community memberships whose
// moderator role was granted by the platform. These migrate to a successor
// when the account is deleted.
func (s *Store) ListSystemModerator(ctx context.Context, domainID, userID primitive.ObjectID) ([]models.Membership, error) {
	return s.list(ctx, bson.M{
		"domain_id":   domainID,
		"user_id":     userID,
		"entity_type": models.EntityCommunity,
		"status":      models.MembershipActive,
		"role":        models.RoleModerator,
		"role_reason": models.RoleReasonSystem,
	})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Membership, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Membership
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MigrateModerator moves a system-granted moderator membership from its
// holder to the successor without ever producing two memberships for the
// same (user, entity) pair:
//
//   - if the successor already has a membership on the entity, that
//     membership is upgraded to the moderator role and the subject's row is
//     deleted;
//   - otherwise the subject's row is reassigned to the successor in place.
//
// Already-migrated memberships make both paths no-ops, so the deletion
// workflow can safely re-run.
func (s *Store) MigrateModerator(ctx context.Context, domainID primitive.ObjectID, m models.Membership, successorID primitive.ObjectID) error {
	now := time.Now().UTC()

	var existing models.Membership
	err := s.c.FindOne(ctx, bson.M{
		"domain_id":   domainID,
		"user_id":     successorID,
		"entity_id":   m.EntityID,
		"entity_type": m.EntityType,
	}).Decode(&existing)

	switch {
	case err == nil:
		_, err = s.c.UpdateOne(ctx,
			bson.M{"_id": existing.ID, "domain_id": domainID},
			bson.M{"$set": bson.M{
				"status":      models.MembershipActive,
				"role":        models.RoleModerator,
				"role_reason": m.RoleReason,
				"updated_at":  now,
			}})
		if err != nil {
			return err
		}
		_, err = s.c.DeleteOne(ctx, bson.M{"_id": m.ID, "domain_id": domainID})
		return err

	case err == mongo.ErrNoDocuments:
		_, err = s.c.UpdateOne(ctx,
			bson.M{"_id": m.ID, "domain_id": domainID},
			bson.M{"$set": bson.M{"user_id": successorID, "updated_at": now}})
		return err

	default:
		return err
	}
}

// SetStatus transitions a membership's status. Rejection requires a reason;
// any other transition clears a previously recorded one.
func (s *Store) SetStatus(ctx context.Context, domainID, id primitive.ObjectID, status, reason string) error {
	switch status {
	case models.MembershipPending, models.MembershipActive, models.MembershipRejected:
	default:
		return ErrBadStatus
	}
	if status == models.MembershipRejected && strings.TrimSpace(reason) == "" {
		return apperrors.ErrRejectionReasonMissing
	}

	set := bson.M{"status": status, "updated_at": time.Now().UTC()}
	update := bson.M{"$set": set}
	if status == models.MembershipRejected {
		set["rejection_reason"] = strings.TrimSpace(reason)
	} else {
		update["$unset"] = bson.M{"rejection_reason": ""}
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "domain_id": domainID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MemberStatus is the structured status of one user on one entity.
type MemberStatus struct {
	Status          string    `json:"status"`
	Role            string    `json:"role,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	JoinedAt        time.Time `json:"joined_at"`
}

// StatusOf returns the membership status of a user on an entity.
func (s *Store) StatusOf(ctx context.Context, domainID, userID, entityID primitive.ObjectID, entityType string) (MemberStatus, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{
		"domain_id":   domainID,
		"user_id":     userID,
		"entity_id":   entityID,
		"entity_type": entityType,
	}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return MemberStatus{}, ErrNotFound
	}
	if err != nil {
		return MemberStatus{}, err
	}
	return MemberStatus{
		Status:          m.Status,
		Role:            m.Role,
		RejectionReason: m.RejectionReason,
		JoinedAt:        m.CreatedAt,
	}, nil
}

// Delete removes one membership.
func (s *Store) Delete(ctx context.Context, domainID, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "domain_id": domainID})
	return err
}

// DeleteIncludedInPlans removes memberships created solely because one of
// the given plans bundled them. Returns the number deleted.
func (s *Store) DeleteIncludedInPlans(ctx context.Context, domainID primitive.ObjectID, planIDs []primitive.ObjectID) (int64, error) {
	if len(planIDs) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{
		"domain_id":           domainID,
		"is_included_in_plan": true,
		"payment_plan_id":     bson.M{"$in": planIDs},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByEntity returns the count of memberships on one entity.
func (s *Store) CountByEntity(ctx context.Context, domainID, entityID primitive.ObjectID, entityType string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"domain_id": domainID, "entity_id": entityID, "entity_type": entityType})
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership statuses.
const (
	MembershipPending  = "pending"
	MembershipActive   = "active"
	MembershipRejected = "rejected"
)

// Membership roles. RoleReasonSystem marks roles granted by the platform
// itself (e.g. the creator of a community is made moderator); those roles
// are migrated to a successor when the holding account is deleted.
const (
	RoleMember    = "member"
	RoleModerator = "moderator"

	RoleReasonSystem = "system"
	RoleReasonManual = "manual"
)

// Entity types a membership (or payment plan) can attach to.
const (
	EntityCourse    = "course"
	EntityCommunity = "community"
)

// Membership joins a user to a payable entity via a payment plan.
//
// Invariants:
//   - at most one membership per (user_id, entity_id, entity_type) in a domain
//   - a membership never outlives its entity or its payment plan
//   - an active subscription-backed membership has its remote subscription
//     cancelled before the record is dropped
type Membership struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID           primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	UserID             primitive.ObjectID `bson:"user_id" json:"user_id"`
	EntityID           primitive.ObjectID `bson:"entity_id" json:"entity_id"`
	EntityType         string             `bson:"entity_type" json:"entity_type"`
	PaymentPlanID      primitive.ObjectID `bson:"payment_plan_id,omitempty" json:"payment_plan_id,omitempty"`
	Status             string             `bson:"status" json:"status"`
	RejectionReason    string             `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	Role               string             `bson:"role,omitempty" json:"role,omitempty"`
	RoleReason         string             `bson:"role_reason,omitempty" json:"role_reason,omitempty"`
	SubscriptionID     string             `bson:"subscription_id,omitempty" json:"subscription_id,omitempty"`
	SubscriptionMethod string             `bson:"subscription_method,omitempty" json:"subscription_method,omitempty"`
	IsIncludedInPlan   bool               `bson:"is_included_in_plan,omitempty" json:"is_included_in_plan,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

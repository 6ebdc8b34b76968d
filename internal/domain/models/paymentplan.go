package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment plan types.
const (
	PlanFree         = "free"
	PlanSubscription = "subscription"
	PlanOneTime      = "one_time"
)

// PaymentPlan is the pricing configuration an entity is sold under. A plan
// may bundle other products via IncludedProductIDs; memberships created only
// because of that bundling carry is_included_in_plan and are cascaded when
// the plan is deleted.
type PaymentPlan struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	DomainID           primitive.ObjectID   `bson:"domain_id" json:"domain_id"`
	EntityID           primitive.ObjectID   `bson:"entity_id" json:"entity_id"`
	EntityType         string               `bson:"entity_type" json:"entity_type"`
	Type               string               `bson:"type" json:"type"`
	Amount             int64                `bson:"amount,omitempty" json:"amount,omitempty"`
	Currency           string               `bson:"currency,omitempty" json:"currency,omitempty"`
	IncludedProductIDs []primitive.ObjectID `bson:"included_product_ids,omitempty" json:"included_product_ids,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

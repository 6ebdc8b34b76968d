package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Community is a paid (or free) member space inside a domain. Deleting a
// community removes everything scoped to it: memberships, payment plans,
// posts, comments, reports, subscriptions, and its presentation page.
type Community struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	DomainID       primitive.ObjectID   `bson:"domain_id" json:"domain_id"`
	Name           string               `bson:"name" json:"name"`
	NameCI         string               `bson:"name_ci" json:"name_ci"`
	PageID         primitive.ObjectID   `bson:"page_id,omitempty" json:"page_id,omitempty"`
	PaymentPlanIDs []primitive.ObjectID `bson:"payment_plan_ids,omitempty" json:"payment_plan_ids,omitempty"`
	Enabled        bool                 `bson:"enabled" json:"enabled"`
	FeaturedImage  *Media               `bson:"featured_image,omitempty" json:"featured_image,omitempty"`
	Banner         *Media               `bson:"banner,omitempty" json:"banner,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

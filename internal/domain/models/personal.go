package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Personal records are keyed by user_id and hard-deleted with the account;
// none of them migrate to a successor.

// Activity logs a user action (enrollment, purchase, completion). Activities
// created solely because a payment plan bundled a product carry the plan id
// and is_included_in_plan, and cascade with that plan.
type Activity struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID         primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	UserID           primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type             string             `bson:"type" json:"type"`
	EntityID         primitive.ObjectID `bson:"entity_id,omitempty" json:"entity_id,omitempty"`
	PaymentPlanID    primitive.ObjectID `bson:"payment_plan_id,omitempty" json:"payment_plan_id,omitempty"`
	IsIncludedInPlan bool               `bson:"is_included_in_plan,omitempty" json:"is_included_in_plan,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Notification is an in-app notification addressed to one user.
type Notification struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Message  string             `bson:"message" json:"message"`
	Read     bool               `bson:"read" json:"read"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Progress tracks a user's position and evaluations inside a course.
type Progress struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	DomainID  primitive.ObjectID   `bson:"domain_id" json:"domain_id"`
	UserID    primitive.ObjectID   `bson:"user_id" json:"user_id"`
	CourseID  primitive.ObjectID   `bson:"course_id" json:"course_id"`
	Completed []primitive.ObjectID `bson:"completed,omitempty" json:"completed,omitempty"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Certificate is an issued course-completion certificate.
type Certificate struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	CourseID primitive.ObjectID `bson:"course_id" json:"course_id"`
	Serial   string             `bson:"serial" json:"serial"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// DownloadLink is a signed, expiring link to purchased content.
type DownloadLink struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID  primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	CourseID  primitive.ObjectID `bson:"course_id" json:"course_id"`
	Token     string             `bson:"token" json:"token"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}

// MailRequestStatus tracks a user's pending outbound-mail quota request.
type MailRequestStatus struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Status   string             `bson:"status" json:"status"`
	Message  string             `bson:"message,omitempty" json:"message,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sequence is a scheduled email drip owned by its creator. Entrants holds
// the user IDs currently enrolled; a deleted user is pulled from the list
// while the sequence itself migrates to the successor.
type Sequence struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	DomainID  primitive.ObjectID   `bson:"domain_id" json:"domain_id"`
	CreatorID primitive.ObjectID   `bson:"creator_id" json:"creator_id"`
	Title     string               `bson:"title" json:"title"`
	Status    string               `bson:"status" json:"status"` // draft | active | paused
	Entrants  []primitive.ObjectID `bson:"entrants,omitempty" json:"entrants,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// MailTemplate is a reusable email body owned by its creator.
type MailTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID  primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	CreatorID primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserSegment is a saved audience filter owned by its creator.
type UserSegment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID  primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	CreatorID primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	Name      string             `bson:"name" json:"name"`
	Filter    []byte             `bson:"filter,omitempty" json:"filter,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// EmailEvent is a delivery log row (sent/opened/bounced) owned by the
// sending account.
type EmailEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID  primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	CreatorID primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	Email     string             `bson:"email" json:"email"`
	Action    string             `bson:"action" json:"action"` // sent | opened | bounced

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

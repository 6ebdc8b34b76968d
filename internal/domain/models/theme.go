package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Theme is a user-authored visual theme for the domain's pages.
type Theme struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID  primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	CreatorID primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	Name      string             `bson:"name" json:"name"`
	Styles    []byte             `bson:"styles,omitempty" json:"styles,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

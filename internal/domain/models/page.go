package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Page is the presentation/layout document tied 1:1 to a course or
// community via EntityID. CreatorID follows the same ownership-migration
// rules as every other creator-owned record.
type Page struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID   primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	EntityID   primitive.ObjectID `bson:"entity_id" json:"entity_id"`
	EntityType string             `bson:"entity_type" json:"entity_type"`
	CreatorID  primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	Layout     []byte             `bson:"layout,omitempty" json:"layout,omitempty"` // opaque editor blob

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

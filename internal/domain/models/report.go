package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report flags a piece of community content for moderation. Reports are
// scoped to their community and removed with it.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID    primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	CommunityID primitive.ObjectID `bson:"community_id" json:"community_id"`
	ContentID   primitive.ObjectID `bson:"content_id" json:"content_id"`
	ContentType string             `bson:"content_type" json:"content_type"` // post | comment | reply
	ReporterID  primitive.ObjectID `bson:"reporter_id" json:"reporter_id"`
	Reason      string             `bson:"reason" json:"reason"`
	Status      string             `bson:"status" json:"status"` // open | resolved

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

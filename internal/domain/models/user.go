package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account inside one domain (tenant). Permissions are
// capability tags checked by the authz package; an inactive user keeps its
// records but no longer counts toward capability-holder invariants.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID    primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped
	Email       string             `bson:"email" json:"email"`
	Permissions []string           `bson:"permissions" json:"permissions"`
	Active      bool               `bson:"active" json:"active"`
	Avatar      *Media             `bson:"avatar,omitempty" json:"avatar,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Domain is the tenant root. Every other collection is partitioned by the
// domain's ObjectID; there is no cross-domain query anywhere in the app.
type Domain struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Settings  DomainSettings     `bson:"settings" json:"settings"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// DomainSettings carries per-tenant configuration for external
// collaborators: which payment gateway is configured (and its credentials),
// and which media fields on a community document are eligible for
// reclamation when the community is deleted.
type DomainSettings struct {
	PaymentMethod      string `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	MidtransServerKey  string `bson:"midtrans_server_key,omitempty" json:"-"`
	MidtransProduction bool   `bson:"midtrans_production,omitempty" json:"-"`

	// MediaReclaimFields lists the community document fields whose media is
	// deleted from the external store when the community goes away. Resolved
	// from config so a renamed field is a settings change, not a silent miss.
	MediaReclaimFields []string `bson:"media_reclaim_fields,omitempty" json:"media_reclaim_fields,omitempty"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invoice records a charge against a membership. An invoice must never
// reference a membership that no longer exists; invoices are deleted in the
// same phase as their membership.
type Invoice struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID            primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	InvoiceNumber       string             `bson:"invoice_number" json:"invoice_number"` // uuid, externally visible
	MembershipID        primitive.ObjectID `bson:"membership_id" json:"membership_id"`
	MembershipSessionID string             `bson:"membership_session_id,omitempty" json:"membership_session_id,omitempty"`
	Amount              int64              `bson:"amount" json:"amount"`
	Currency            string             `bson:"currency" json:"currency"`
	Status              string             `bson:"status" json:"status"` // paid | pending | failed

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// internal/app/store/invoices/invoicestore.go
package invoicestore

import (
	"context"
	"time"

	"github.com/codelitdev/coursehub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("invoices")}
}

// Create inserts a new invoice, assigning the externally visible invoice
// number.
func (s *Store) Create(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	inv.ID = primitive.NewObjectID()
	inv.InvoiceNumber = uuid.NewString()
	inv.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// DeleteByMembership removes every invoice referencing a membership. An
// invoice must never outlive its membership, so this runs in the same
// reconciliation phase that drops the membership row. Returns the number of
// documents deleted.
func (s *Store) DeleteByMembership(ctx context.Context, domainID, membershipID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"domain_id": domainID, "membership_id": membershipID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByMembership returns the count of invoices referencing a membership.
func (s *Store) CountByMembership(ctx context.Context, domainID, membershipID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"domain_id": domainID, "membership_id": membershipID})
}

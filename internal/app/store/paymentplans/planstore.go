// internal/app/store/paymentplans/planstore.go
package planstore

import (
	"context"

	"github.com/codelitdev/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("payment_plans")}
}

// ListByEntity returns the plans an entity is sold under.
func (s *Store) ListByEntity(ctx context.Context, domainID, entityID primitive.ObjectID, entityType string) ([]models.PaymentPlan, error) {
	cur, err := s.c.Find(ctx, bson.M{"domain_id": domainID, "entity_id": entityID, "entity_type": entityType})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PaymentPlan
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByEntity removes every plan attached to one entity. Returns the
// number of documents deleted.
func (s *Store) DeleteByEntity(ctx context.Context, domainID, entityID primitive.ObjectID, entityType string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"domain_id": domainID, "entity_id": entityID, "entity_type": entityType})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

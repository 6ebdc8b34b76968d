// internal/app/store/pages/pagestore.go
package pagestore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("pages")}
}

// ReassignCreator rewrites creator ownership from one user to another,
// domain-wide. Already-reassigned pages no longer match the filter, so this
// is a no-op on re-run.
func (s *Store) ReassignCreator(ctx context.Context, domainID, fromID, toID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"domain_id": domainID, "creator_id": fromID},
		bson.M{"$set": bson.M{"creator_id": toID, "updated_at": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ReassignCreatorForEntities rewrites creator ownership on the pages of the
// given entities. Used after a moderator-role migration so the community's
// page follows its new moderator.
func (s *Store) ReassignCreatorForEntities(ctx context.Context, domainID primitive.ObjectID, entityIDs []primitive.ObjectID, toID primitive.ObjectID) error {
	if len(entityIDs) == 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"domain_id": domainID, "entity_id": bson.M{"$in": entityIDs}},
		bson.M{"$set": bson.M{"creator_id": toID, "updated_at": time.Now().UTC()}})
	return err
}

// DeleteByEntity removes the page(s) tied to one entity. Returns the number
// of documents deleted.
func (s *Store) DeleteByEntity(ctx context.Context, domainID, entityID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"domain_id": domainID, "entity_id": entityID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

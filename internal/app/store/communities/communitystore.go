// internal/app/store/communities/communitystore.go
package communitystore

import (
	"context"
	"errors"
	"time"

	"github.com/codelitdev/coursehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("communities")}
}

// ErrNotFound is returned when no community matches in the domain.
var ErrNotFound = errors.New("community not found")

// GetByID loads a community by ObjectID within one domain.
func (s *Store) GetByID(ctx context.Context, domainID, id primitive.ObjectID) (*models.Community, error) {
	var c models.Community
	err := s.c.FindOne(ctx, bson.M{"_id": id, "domain_id": domainID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new community.
func (s *Store) Create(ctx context.Context, c models.Community) (models.Community, error) {
	c.ID = primitive.NewObjectID()
	c.NameCI = text.Fold(c.Name)

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Community{}, err
	}
	return c, nil
}

// Delete removes a community document. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, domainID, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "domain_id": domainID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/codelitdev/coursehub/internal/app/system/normalize"
	"github.com/codelitdev/coursehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrNotFound is returned when no user matches in the domain.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when creating a user with an email that
	// already exists in the domain.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

// GetByID loads a user by ObjectID within one domain.
func (s *Store) GetByID(ctx context.Context, domainID, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id, "domain_id": domainID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email within one domain.
func (s *Store) GetByEmail(ctx context.Context, domainID primitive.ObjectID, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"domain_id": domainID, "email": normalize.Email(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// CountOtherActiveHolders counts active users in the domain, other than
// excludeID, that hold the given capability. The last-holder safety check
// during account deletion is built on this.
func (s *Store) CountOtherActiveHolders(ctx context.Context, domainID primitive.ObjectID, capability string, excludeID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"domain_id":   domainID,
		"_id":         bson.M{"$ne": excludeID},
		"active":      true,
		"permissions": capability,
	})
}

// Delete removes a user document. Returns the number of documents deleted
// (0 or 1); deleting an already-deleted user is a no-op.
func (s *Store) Delete(ctx context.Context, domainID, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "domain_id": domainID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// internal/app/store/posts/poststore.go
package poststore

import (
	"context"
	"errors"

	"github.com/codelitdev/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

// ErrNotFound is returned when no post matches in the domain.
var ErrNotFound = errors.New("post not found")

// GetByID loads a post within one domain.
func (s *Store) GetByID(ctx context.Context, domainID, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := s.c.FindOne(ctx, bson.M{"_id": id, "domain_id": domainID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteByCommunity removes every post in a community. Returns the number
// of documents deleted.
func (s *Store) DeleteByCommunity(ctx context.Context, domainID, communityID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"domain_id": domainID, "community_id": communityID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByAuthor removes every post a user authored, domain-wide. Returns
// the number of documents deleted.
func (s *Store) DeleteByAuthor(ctx context.Context, domainID, authorID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"domain_id": domainID, "author_id": authorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// PullLikes removes the user from every post's likes array in the domain,
// leaving the rest of each array untouched. Safe to run when no document
// matches.
func (s *Store) PullLikes(ctx context.Context, domainID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"domain_id": domainID, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}})
	return err
}

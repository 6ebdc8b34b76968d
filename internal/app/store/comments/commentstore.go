// internal/app/store/comments/commentstore.go
package commentstore

// Comment threads are stored as one document per top-level comment with an
// embedded replies array. Interactive deletion keeps thread structure: a
// comment/reply that still has children is soft-deleted (deleted=true) so
// the children stay addressable; a childless one is physically removed.
// Either way the parent post's comment_count drops by exactly one per
// deletion event.
//
// The bulk cascades used by account and community deletion bypass the
// soft-delete path and remove documents outright; the whole subtree is
// being purged so thread shape no longer matters.

import (
	"context"
	"errors"

	"github.com/codelitdev/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c     *mongo.Collection
	posts *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("comments"),
		posts: db.Collection("posts"),
	}
}

var (
	// ErrNotFound is returned when the comment (or reply) does not exist in
	// the domain.
	ErrNotFound = errors.New("comment not found")
)

// GetByID loads one comment document.
func (s *Store) GetByID(ctx context.Context, domainID, id primitive.ObjectID) (*models.Comment, error) {
	var c models.Comment
	err := s.c.FindOne(ctx, bson.M{"_id": id, "domain_id": domainID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteComment deletes a top-level comment. With replies still present
// (live or soft-deleted) the comment is marked deleted; without any it is
// removed outright. The post's counter is decremented once. A comment that
// was already soft-deleted reports ErrNotFound so a repeated delete cannot
// decrement the counter a second time.
func (s *Store) DeleteComment(ctx context.Context, domainID, postID, commentID primitive.ObjectID) error {
	comment, err := s.GetByID(ctx, domainID, commentID)
	if err != nil {
		return err
	}
	if comment.PostID != postID || comment.Deleted {
		return ErrNotFound
	}

	if len(comment.Replies) > 0 {
		_, err = s.c.UpdateOne(ctx,
			bson.M{"_id": commentID, "domain_id": domainID},
			bson.M{"$set": bson.M{"deleted": true}})
	} else {
		_, err = s.c.DeleteOne(ctx, bson.M{"_id": commentID, "domain_id": domainID})
	}
	if err != nil {
		return err
	}
	return s.decrementCount(ctx, domainID, postID)
}

// DeleteReply deletes one reply inside a comment's thread. A reply other
// replies point at via parent_reply_id is soft-deleted; a leaf reply is
// pulled from the array. The post's counter is decremented once. An already
// soft-deleted reply reports ErrNotFound, as in DeleteComment.
func (s *Store) DeleteReply(ctx context.Context, domainID, postID, commentID, replyID primitive.ObjectID) error {
	comment, err := s.GetByID(ctx, domainID, commentID)
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return ErrNotFound
	}

	found := false
	hasChildren := false
	for _, r := range comment.Replies {
		if r.ReplyID == replyID {
			if r.Deleted {
				return ErrNotFound
			}
			found = true
		}
		if r.ParentReplyID != nil && *r.ParentReplyID == replyID {
			hasChildren = true
		}
	}
	if !found {
		return ErrNotFound
	}

	if hasChildren {
		_, err = s.c.UpdateOne(ctx,
			bson.M{"_id": commentID, "domain_id": domainID, "replies.reply_id": replyID},
			bson.M{"$set": bson.M{"replies.$.deleted": true}})
	} else {
		_, err = s.c.UpdateOne(ctx,
			bson.M{"_id": commentID, "domain_id": domainID},
			bson.M{"$pull": bson.M{"replies": bson.M{"reply_id": replyID}}})
	}
	if err != nil {
		return err
	}
	return s.decrementCount(ctx, domainID, postID)
}

// decrementCount lowers the post's denormalized counter by one, never below
// zero.
func (s *Store) decrementCount(ctx context.Context, domainID, postID primitive.ObjectID) error {
	_, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "domain_id": domainID, "comment_count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"comment_count": -1}})
	return err
}

// CountForPost computes the live comment total for a post: non-deleted
// top-level comments plus non-deleted replies across all comments. A
// soft-deleted parent no longer counts itself but its still-active replies
// do.
func (s *Store) CountForPost(ctx context.Context, domainID, postID primitive.ObjectID) (int64, error) {
	cur, err := s.c.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"domain_id": domainID, "post_id": postID}},
		{"$project": bson.M{
			"top": bson.M{"$cond": bson.A{"$deleted", 0, 1}},
			"live_replies": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": bson.M{"$ifNull": bson.A{"$replies", bson.A{}}},
				"as":    "r",
				"cond":  bson.M{"$ne": bson.A{"$$r.deleted", true}},
			}}},
		}},
		{"$group": bson.M{
			"_id": nil,
			"n":   bson.M{"$sum": bson.M{"$add": bson.A{"$top", "$live_replies"}}},
		}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			N int64 `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		return row.N, nil
	}
	return 0, cur.Err()
}

// DeleteByCommunity hard-deletes every comment in a community. Returns the
// number of documents deleted.
func (s *Store) DeleteByCommunity(ctx context.Context, domainID, communityID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"domain_id": domainID, "community_id": communityID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByAuthor hard-deletes every comment a user authored and pulls their
// replies out of other users' comment threads, domain-wide.
func (s *Store) DeleteByAuthor(ctx context.Context, domainID, authorID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"domain_id": domainID, "author_id": authorID})
	if err != nil {
		return 0, err
	}
	_, err = s.c.UpdateMany(ctx,
		bson.M{"domain_id": domainID, "replies.author_id": authorID},
		bson.M{"$pull": bson.M{"replies": bson.M{"author_id": authorID}}})
	if err != nil {
		return res.DeletedCount, err
	}
	return res.DeletedCount, nil
}

// PullLikes removes the user from every comment's likes array and from the
// likes of every embedded reply. Safe to run when nothing matches.
func (s *Store) PullLikes(ctx context.Context, domainID, userID primitive.ObjectID) error {
	if _, err := s.c.UpdateMany(ctx,
		bson.M{"domain_id": domainID, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}}); err != nil {
		return err
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"domain_id": domainID, "replies.likes": userID},
		bson.M{"$pull": bson.M{"replies.$[].likes": userID}})
	return err
}

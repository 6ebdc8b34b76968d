package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a community feed entry. CommentCount is a denormalized counter
// maintained by the comment store; Likes holds bare user IDs and is scrubbed
// when an account is deleted.
type Post struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	DomainID     primitive.ObjectID   `bson:"domain_id" json:"domain_id"`
	CommunityID  primitive.ObjectID   `bson:"community_id" json:"community_id"`
	AuthorID     primitive.ObjectID   `bson:"author_id" json:"author_id"`
	Title        string               `bson:"title,omitempty" json:"title,omitempty"`
	Content      string               `bson:"content" json:"content"`
	Likes        []primitive.ObjectID `bson:"likes,omitempty" json:"likes,omitempty"`
	CommentCount int64                `bson:"comment_count" json:"comment_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PostSubscription subscribes a user to updates on one post. Purely
// relational; hard-deleted whenever the post, community, or user goes away.
type PostSubscription struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID    primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	CommunityID primitive.ObjectID `bson:"community_id" json:"community_id"`
	PostID      primitive.ObjectID `bson:"post_id" json:"post_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

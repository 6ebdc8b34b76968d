package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a top-level comment on a post with an embedded reply thread.
//
// Deletion keeps thread structure intact: a comment or reply that still has
// children is marked Deleted instead of being removed, so the children stay
// addressable. Childless comments/replies are physically removed. The bulk
// cascades run during account/community deletion skip the soft-delete path
// and always remove documents outright.
type Comment struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	DomainID    primitive.ObjectID   `bson:"domain_id" json:"domain_id"`
	CommunityID primitive.ObjectID   `bson:"community_id" json:"community_id"`
	PostID      primitive.ObjectID   `bson:"post_id" json:"post_id"`
	AuthorID    primitive.ObjectID   `bson:"author_id" json:"author_id"`
	Content     string               `bson:"content" json:"content"`
	Deleted     bool                 `bson:"deleted" json:"deleted"`
	Likes       []primitive.ObjectID `bson:"likes,omitempty" json:"likes,omitempty"`
	Replies     []Reply              `bson:"replies,omitempty" json:"replies,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Reply is an embedded reply inside a comment's thread. ParentReplyID is nil
// for direct replies to the comment and set for reply-to-reply.
type Reply struct {
	ReplyID       primitive.ObjectID   `bson:"reply_id" json:"reply_id"`
	ParentReplyID *primitive.ObjectID  `bson:"parent_reply_id,omitempty" json:"parent_reply_id,omitempty"`
	AuthorID      primitive.ObjectID   `bson:"author_id" json:"author_id"`
	Content       string               `bson:"content" json:"content"`
	Deleted       bool                 `bson:"deleted" json:"deleted"`
	Likes         []primitive.ObjectID `bson:"likes,omitempty" json:"likes,omitempty"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
}

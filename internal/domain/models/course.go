package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a sellable product owned by its creator. Customers is the list
// of user IDs who bought or enrolled; it is scrubbed (not cascaded) when a
// user account is deleted.
type Course struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	DomainID      primitive.ObjectID   `bson:"domain_id" json:"domain_id"`
	CreatorID     primitive.ObjectID   `bson:"creator_id" json:"creator_id"`
	Title         string               `bson:"title" json:"title"`
	TitleCI       string               `bson:"title_ci" json:"title_ci"`
	Published     bool                 `bson:"published" json:"published"`
	Customers     []primitive.ObjectID `bson:"customers,omitempty" json:"customers,omitempty"`
	FeaturedImage *Media               `bson:"featured_image,omitempty" json:"featured_image,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Lesson belongs to a course and follows the course creator's ownership
// rules during account deletion.
type Lesson struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DomainID  primitive.ObjectID `bson:"domain_id" json:"domain_id"`
	CourseID  primitive.ObjectID `bson:"course_id" json:"course_id"`
	CreatorID primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content,omitempty" json:"content,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

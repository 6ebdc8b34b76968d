package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/codelitdev/coursehub/internal/app/store/invoices"
	"github.com/codelitdev/coursehub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, collection string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert into %s: %v", collection, err)
	}
}

// Count returns the number of documents in collection matching filter.
func (f *Fixtures) Count(ctx context.Context, collection string, filter bson.M) int64 {
	f.t.Helper()
	n, err := f.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		f.t.Fatalf("count %s: %v", collection, err)
	}
	return n
}

// CreateDomain creates a tenant with the given settings.
func (f *Fixtures) CreateDomain(ctx context.Context, name string, settings models.DomainSettings) models.Domain {
	f.t.Helper()
	now := time.Now().UTC()
	d := models.Domain{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "domains", d)
	return d
}

// CreateUser creates an active user holding the given capability tags.
func (f *Fixtures) CreateUser(ctx context.Context, domainID primitive.ObjectID, name, email string, permissions ...string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:          primitive.NewObjectID(),
		DomainID:    domainID,
		Name:        name,
		NameCI:      text.Fold(name),
		Email:       email,
		Permissions: permissions,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateCommunity creates an enabled community.
func (f *Fixtures) CreateCommunity(ctx context.Context, domainID primitive.ObjectID, name string) models.Community {
	f.t.Helper()
	now := time.Now().UTC()
	c := models.Community{
		ID:        primitive.NewObjectID(),
		DomainID:  domainID,
		Name:      name,
		NameCI:    text.Fold(name),
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "communities", c)
	return c
}

// CreateMembership inserts m after filling in ID, status default, and
// timestamps. Callers set the fields the test cares about.
func (f *Fixtures) CreateMembership(ctx context.Context, m models.Membership) models.Membership {
	f.t.Helper()
	now := time.Now().UTC()
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.Status == "" {
		m.Status = models.MembershipActive
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	f.insert(ctx, "memberships", m)
	return m
}

// CreatePaymentPlan inserts p after filling in ID and timestamps.
func (f *Fixtures) CreatePaymentPlan(ctx context.Context, p models.PaymentPlan) models.PaymentPlan {
	f.t.Helper()
	now := time.Now().UTC()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	f.insert(ctx, "payment_plans", p)
	return p
}

// CreateInvoice creates a paid invoice against the membership, going through
// the invoice store so the invoice number is assigned the production way.
func (f *Fixtures) CreateInvoice(ctx context.Context, domainID, membershipID primitive.ObjectID) models.Invoice {
	f.t.Helper()
	inv, err := invoicestore.New(f.db).Create(ctx, models.Invoice{
		DomainID:     domainID,
		MembershipID: membershipID,
		Amount:       1000,
		Currency:     "usd",
		Status:       "paid",
	})
	if err != nil {
		f.t.Fatalf("create invoice: %v", err)
	}
	return inv
}

// CreatePost creates a community post by the author.
func (f *Fixtures) CreatePost(ctx context.Context, domainID, communityID, authorID primitive.ObjectID, likes ...primitive.ObjectID) models.Post {
	f.t.Helper()
	now := time.Now().UTC()
	p := models.Post{
		ID:          primitive.NewObjectID(),
		DomainID:    domainID,
		CommunityID: communityID,
		AuthorID:    authorID,
		Content:     "post content",
		Likes:       likes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "posts", p)
	return p
}

// CreateComment inserts c after filling in ID and timestamps.
func (f *Fixtures) CreateComment(ctx context.Context, c models.Comment) models.Comment {
	f.t.Helper()
	now := time.Now().UTC()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	f.insert(ctx, "comments", c)
	return c
}

// Reply builds an embedded reply for use with CreateComment.
func (f *Fixtures) Reply(authorID primitive.ObjectID, parent *primitive.ObjectID) models.Reply {
	f.t.Helper()
	return models.Reply{
		ReplyID:       primitive.NewObjectID(),
		ParentReplyID: parent,
		AuthorID:      authorID,
		Content:       "reply content",
		CreatedAt:     time.Now().UTC(),
	}
}

// CreateCourse creates a course owned by creatorID with the given customers.
func (f *Fixtures) CreateCourse(ctx context.Context, domainID, creatorID primitive.ObjectID, title string, customers ...primitive.ObjectID) models.Course {
	f.t.Helper()
	now := time.Now().UTC()
	c := models.Course{
		ID:        primitive.NewObjectID(),
		DomainID:  domainID,
		CreatorID: creatorID,
		Title:     title,
		TitleCI:   text.Fold(title),
		Published: true,
		Customers: customers,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "courses", c)
	return c
}

// CreateSequence creates an email sequence owned by creatorID with the
// given entrants.
func (f *Fixtures) CreateSequence(ctx context.Context, domainID, creatorID primitive.ObjectID, entrants ...primitive.ObjectID) models.Sequence {
	f.t.Helper()
	now := time.Now().UTC()
	s := models.Sequence{
		ID:        primitive.NewObjectID(),
		DomainID:  domainID,
		CreatorID: creatorID,
		Title:     "drip",
		Status:    "active",
		Entrants:  entrants,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "sequences", s)
	return s
}

// CreatePage creates the presentation page for an entity.
func (f *Fixtures) CreatePage(ctx context.Context, domainID, entityID primitive.ObjectID, entityType string, creatorID primitive.ObjectID) models.Page {
	f.t.Helper()
	now := time.Now().UTC()
	p := models.Page{
		ID:         primitive.NewObjectID(),
		DomainID:   domainID,
		EntityID:   entityID,
		EntityType: entityType,
		CreatorID:  creatorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "pages", p)
	return p
}

// CreateActivity inserts a after filling in ID and timestamp.
func (f *Fixtures) CreateActivity(ctx context.Context, a models.Activity) models.Activity {
	f.t.Helper()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = time.Now().UTC()
	f.insert(ctx, "activities", a)
	return a
}

// CreateNotification creates an unread notification for the user.
func (f *Fixtures) CreateNotification(ctx context.Context, domainID, userID primitive.ObjectID) models.Notification {
	f.t.Helper()
	n := models.Notification{
		ID:        primitive.NewObjectID(),
		DomainID:  domainID,
		UserID:    userID,
		Message:   "hello",
		CreatedAt: time.Now().UTC(),
	}
	f.insert(ctx, "notifications", n)
	return n
}

// CreateReport files a moderation report in the community.
func (f *Fixtures) CreateReport(ctx context.Context, domainID, communityID, contentID, reporterID primitive.ObjectID) models.Report {
	f.t.Helper()
	r := models.Report{
		ID:          primitive.NewObjectID(),
		DomainID:    domainID,
		CommunityID: communityID,
		ContentID:   contentID,
		ContentType: "post",
		ReporterID:  reporterID,
		Reason:      "spam",
		Status:      "open",
		CreatedAt:   time.Now().UTC(),
	}
	f.insert(ctx, "reports", r)
	return r
}

// CreatePostSubscription subscribes userID to updates on the post.
func (f *Fixtures) CreatePostSubscription(ctx context.Context, domainID, communityID, postID, userID primitive.ObjectID) models.PostSubscription {
	f.t.Helper()
	s := models.PostSubscription{
		ID:          primitive.NewObjectID(),
		DomainID:    domainID,
		CommunityID: communityID,
		PostID:      postID,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	f.insert(ctx, "post_subscriptions", s)
	return s
}

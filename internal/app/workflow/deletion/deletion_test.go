package deletion_test

import (
	"context"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/codelitdev/coursehub/internal/app/payments"
	"github.com/codelitdev/coursehub/internal/app/store/invoices"
	"github.com/codelitdev/coursehub/internal/app/store/memberships"
	"github.com/codelitdev/coursehub/internal/app/system/apperrors"
	"github.com/codelitdev/coursehub/internal/app/system/auth"
	"github.com/codelitdev/coursehub/internal/app/system/authz"
	"github.com/codelitdev/coursehub/internal/app/workflow/deletion"
	"github.com/codelitdev/coursehub/internal/domain/models"
	"github.com/codelitdev/coursehub/internal/testutil"
)

type fakeGateway struct {
	mu        sync.Mutex
	cancelled []string
	fail      bool
}

func (f *fakeGateway) Name() string { return "fake" }

func (f *fakeGateway) Cancel(ctx context.Context, subscriptionID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return false, context.DeadlineExceeded
	}
	f.cancelled = append(f.cancelled, subscriptionID)
	return true, nil
}

type fakeMedia struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeMedia) Delete(ctx context.Context, mediaID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, mediaID)
	return true, nil
}

func newWorkflows(t *testing.T) (*deletion.Workflows, *testutil.Fixtures, *fakeGateway, *fakeMedia) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	gw := &fakeGateway{}
	md := &fakeMedia{}
	resolver := func(settings models.DomainSettings, method string) (payments.Method, error) {
		return gw, nil
	}
	w := deletion.New(db, zap.NewNop(), resolver, md, nil)
	return w, testutil.NewFixtures(t, db), gw, md
}

func sessionFor(u models.User) auth.Session {
	return auth.Session{
		UserID:      u.ID,
		DomainID:    u.DomainID,
		Name:        u.Name,
		Permissions: u.Permissions,
	}
}

func TestDeleteUserGuards(t *testing.T) {
	w, f, _, _ := newWorkflows(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	admin := f.CreateUser(ctx, d.ID, "Admin", "admin@acme.test", authz.ManageUsers, authz.ManageSite)
	target := f.CreateUser(ctx, d.ID, "Member", "member@acme.test")

	if err := w.DeleteUser(ctx, auth.Session{DomainID: d.ID}, target.ID); err != apperrors.ErrUnauthorized {
		t.Fatalf("anonymous actor: got %v, want ErrUnauthorized", err)
	}

	plain := f.CreateUser(ctx, d.ID, "Plain", "plain@acme.test")
	if err := w.DeleteUser(ctx, sessionFor(plain), target.ID); err != apperrors.ErrActionNotAllowed {
		t.Fatalf("actor without capability: got %v, want ErrActionNotAllowed", err)
	}

	if err := w.DeleteUser(ctx, sessionFor(admin), admin.ID); err != apperrors.ErrActionNotAllowed {
		t.Fatalf("self-deletion: got %v, want ErrActionNotAllowed", err)
	}

	if n := f.Count(ctx, "users", bson.M{"domain_id": d.ID}); n != 3 {
		t.Fatalf("rejected deletions mutated users: %d left, want 3", n)
	}
}

func TestDeleteUserLastHolderInvariant(t *testing.T) {
	w, f, _, _ := newWorkflows(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	admin := f.CreateUser(ctx, d.ID, "Admin", "admin@acme.test", authz.ManageUsers)
	target := f.CreateUser(ctx, d.ID, "Owner", "owner@acme.test", authz.ManageSite)

	err := w.DeleteUser(ctx, sessionFor(admin), target.ID)
	if !apperrors.IsLastPermissionHolder(err) {
		t.Fatalf("sole site manager: got %v, want last-permission-holder", err)
	}
	if n := f.Count(ctx, "users", bson.M{"_id": target.ID}); n != 1 {
		t.Fatal("blocked deletion removed the user")
	}

	// A second active holder of every critical capability the target has
	// lifts the block.
	f.CreateUser(ctx, d.ID, "Backup", "backup@acme.test", authz.ManageSite)
	if err := w.DeleteUser(ctx, sessionFor(admin), target.ID); err != nil {
		t.Fatalf("with backup holder: %v", err)
	}
	if n := f.Count(ctx, "users", bson.M{"_id": target.ID}); n != 0 {
		t.Fatal("user still present after deletion")
	}
}

func TestDeleteUserInactiveHolderDoesNotCount(t *testing.T) {
	w, f, _, _ := newWorkflows(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	admin := f.CreateUser(ctx, d.ID, "Admin", "admin@acme.test", authz.ManageUsers)
	target := f.CreateUser(ctx, d.ID, "Owner", "owner@acme.test", authz.ManageSite)

	backup := f.CreateUser(ctx, d.ID, "Backup", "backup@acme.test", authz.ManageSite)
	if _, err := f.DB().Collection("users").UpdateOne(ctx,
		bson.M{"_id": backup.ID}, bson.M{"$set": bson.M{"active": false}}); err != nil {
		t.Fatal(err)
	}

	err := w.DeleteUser(ctx, sessionFor(admin), target.ID)
	if !apperrors.IsLastPermissionHolder(err) {
		t.Fatalf("inactive backup should not count: got %v", err)
	}
}

func TestDeleteUserMigratesOwnership(t *testing.T) {
	w, f, _, _ := newWorkflows(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	admin := f.CreateUser(ctx, d.ID, "Admin", "admin@acme.test", authz.ManageUsers)
	target := f.CreateUser(ctx, d.ID, "Creator", "creator@acme.test")
	other := f.CreateUser(ctx, d.ID, "Other", "other@acme.test")

	course := f.CreateCourse(ctx, d.ID, target.ID, "Go Basics", other.ID, target.ID)
	keep := f.CreateCourse(ctx, d.ID, other.ID, "Rust Basics")
	f.CreatePage(ctx, d.ID, course.ID, models.EntityCourse, target.ID)
	seq := f.CreateSequence(ctx, d.ID, target.ID, target.ID, other.ID)

	if err := w.DeleteUser(ctx, sessionFor(admin), target.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	var got models.Course
	if err := f.DB().Collection("courses").FindOne(ctx, bson.M{"_id": course.ID}).Decode(&got); err != nil {
		t.Fatalf("course vanished: %v", err)
	}
	if got.CreatorID != admin.ID {
		t.Fatalf("course creator = %s, want actor %s", got.CreatorID.Hex(), admin.ID.Hex())
	}
	if len(got.Customers) != 1 || got.Customers[0] != other.ID {
		t.Fatalf("customers = %v, want only %s", got.Customers, other.ID.Hex())
	}

	var p models.Page
	if err := f.DB().Collection("pages").FindOne(ctx, bson.M{"entity_id": course.ID}).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.CreatorID != admin.ID {
		t.Fatalf("page creator = %s, want %s", p.CreatorID.Hex(), admin.ID.Hex())
	}

	var s models.Sequence
	if err := f.DB().Collection("sequences").FindOne(ctx, bson.M{"_id": seq.ID}).Decode(&s); err != nil {
		t.Fatal(err)
	}
	if s.CreatorID != admin.ID {
		t.Fatalf("sequence creator = %s, want %s", s.CreatorID.Hex(), admin.ID.Hex())
	}
	if len(s.Entrants) != 1 || s.Entrants[0] != other.ID {
		t.Fatalf("entrants = %v, want only %s", s.Entrants, other.ID.Hex())
	}

	var untouched models.Course
	if err := f.DB().Collection("courses").FindOne(ctx, bson.M{"_id": keep.ID}).Decode(&untouched); err != nil {
		t.Fatal(err)
	}
	if untouched.CreatorID != other.ID {
		t.Fatal("unrelated course was reassigned")
	}
}

func TestDeleteUserMigratesModeratorRole(t *testing.T) {
	w, f, _, _ := newWorkflows(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	admin := f.CreateUser(ctx, d.ID, "Admin", "admin@acme.test", authz.ManageUsers)
	target := f.CreateUser(ctx, d.ID, "Mod", "mod@acme.test")
	c := f.CreateCommunity(ctx, d.ID, "gophers")

	// The successor already belongs to the community as a plain member, so
	// migration must upgrade that row rather than create a second one.
	f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: admin.ID, EntityID: c.ID,
		EntityType: models.EntityCommunity, Role: models.RoleMember,
	})
	f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: target.ID, EntityID: c.ID,
		EntityType: models.EntityCommunity,
		Role:       models.RoleModerator, RoleReason: models.RoleReasonSystem,
	})

	if err := w.DeleteUser(ctx, sessionFor(admin), target.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if n := f.Count(ctx, "memberships", bson.M{"entity_id": c.ID}); n != 1 {
		t.Fatalf("memberships for community = %d, want 1", n)
	}
	var m models.Membership
	if err := f.DB().Collection("memberships").FindOne(ctx, bson.M{"entity_id": c.ID}).Decode(&m); err != nil {
		t.Fatal(err)
	}
	if m.UserID != admin.ID || m.Role != models.RoleModerator || m.RoleReason != models.RoleReasonSystem {
		t.Fatalf("migrated membership = %+v, want successor as system moderator", m)
	}
}

func TestDeleteUserReconcilesBilling(t *testing.T) {
	w, f, gw, _ := newWorkflows(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{PaymentMethod: "fake"})
	admin := f.CreateUser(ctx, d.ID, "Admin", "admin@acme.test", authz.ManageUsers)
	target := f.CreateUser(ctx, d.ID, "Member", "member@acme.test")
	c := f.CreateCommunity(ctx, d.ID, "gophers")

	m := f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: target.ID, EntityID: c.ID,
		EntityType:         models.EntityCommunity,
		SubscriptionID:     "sub_123",
		SubscriptionMethod: "fake",
	})
	f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: target.ID, EntityID: primitive.NewObjectID(),
		EntityType: models.EntityCourse,
	})
	f.CreateInvoice(ctx, d.ID, m.ID)
	f.CreateInvoice(ctx, d.ID, m.ID)

	if err := w.DeleteUser(ctx, sessionFor(admin), target.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if len(gw.cancelled) != 1 || gw.cancelled[0] != "sub_123" {
		t.Fatalf("cancelled = %v, want exactly [sub_123]", gw.cancelled)
	}
	if n := f.Count(ctx, "memberships", bson.M{"user_id": target.ID}); n != 0 {
		t.Fatalf("memberships left = %d, want 0", n)
	}
	left, err := invoicestore.New(f.DB()).CountByMembership(ctx, d.ID, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if left != 0 {
		t.Fatalf("invoices left = %d, want 0", left)
	}
}

func TestDeleteUserCascadesAndScrubs(t *testing.T) {
	w, f, _, md := newWorkflows(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	admin := f.CreateUser(ctx, d.ID, "Admin", "admin@acme.test", authz.ManageUsers)
	target := f.CreateUser(ctx, d.ID, "Member", "member@acme.test")
	other := f.CreateUser(ctx, d.ID, "Other", "other@acme.test")
	c := f.CreateCommunity(ctx, d.ID, "gophers")

	if _, err := f.DB().Collection("users").UpdateOne(ctx, bson.M{"_id": target.ID},
		bson.M{"$set": bson.M{"avatar": models.Media{MediaID: "avatar-1", URL: "https://cdn/avatar-1"}}}); err != nil {
		t.Fatal(err)
	}

	f.CreatePost(ctx, d.ID, c.ID, target.ID)
	theirs := f.CreatePost(ctx, d.ID, c.ID, other.ID, target.ID, other.ID)
	f.CreateComment(ctx, models.Comment{
		DomainID: d.ID, CommunityID: c.ID, PostID: theirs.ID, AuthorID: target.ID,
	})
	f.CreateComment(ctx, models.Comment{
		DomainID: d.ID, CommunityID: c.ID, PostID: theirs.ID, AuthorID: other.ID,
		Likes: []primitive.ObjectID{target.ID},
	})
	f.CreatePostSubscription(ctx, d.ID, c.ID, theirs.ID, target.ID)
	f.CreateReport(ctx, d.ID, c.ID, theirs.ID, target.ID)
	f.CreateNotification(ctx, d.ID, target.ID)
	f.CreateActivity(ctx, models.Activity{DomainID: d.ID, UserID: target.ID, Type: "enrolled"})

	if err := w.DeleteUser(ctx, sessionFor(admin), target.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	for _, col := range []string{"post_subscriptions", "reports", "notifications", "activities"} {
		if n := f.Count(ctx, col, bson.M{"domain_id": d.ID}); n != 0 {
			t.Fatalf("%s left = %d, want 0", col, n)
		}
	}
	if n := f.Count(ctx, "posts", bson.M{"author_id": target.ID}); n != 0 {
		t.Fatal("authored post survived")
	}
	if n := f.Count(ctx, "comments", bson.M{"author_id": target.ID}); n != 0 {
		t.Fatal("authored comment survived")
	}

	var p models.Post
	if err := f.DB().Collection("posts").FindOne(ctx, bson.M{"_id": theirs.ID}).Decode(&p); err != nil {
		t.Fatalf("other author's post vanished: %v", err)
	}
	if len(p.Likes) != 1 || p.Likes[0] != other.ID {
		t.Fatalf("post likes = %v, want only %s", p.Likes, other.ID.Hex())
	}
	if n := f.Count(ctx, "comments", bson.M{"likes": target.ID}); n != 0 {
		t.Fatal("comment like not scrubbed")
	}

	if len(md.deleted) != 1 || md.deleted[0] != "avatar-1" {
		t.Fatalf("media deleted = %v, want [avatar-1]", md.deleted)
	}
}

func TestDeleteUserRetryReturnsNotFound(t *testing.T) {
	w, f, _, _ := newWorkflows(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	admin := f.CreateUser(ctx, d.ID, "Admin", "admin@acme.test", authz.ManageUsers)
	target := f.CreateUser(ctx, d.ID, "Member", "member@acme.test")

	if err := w.DeleteUser(ctx, sessionFor(admin), target.ID); err != nil {
		t.Fatalf("first DeleteUser: %v", err)
	}
	if err := w.DeleteUser(ctx, sessionFor(admin), target.ID); err != apperrors.ErrItemNotFound {
		t.Fatalf("second DeleteUser: got %v, want ErrItemNotFound", err)
	}
}

func TestDeleteCommunity(t *testing.T) {
	w, f, gw, md := newWorkflows(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{PaymentMethod: "fake"})
	admin := f.CreateUser(ctx, d.ID, "Admin", "admin@acme.test", authz.ManageCommunity)
	member := f.CreateUser(ctx, d.ID, "Member", "member@acme.test")
	c := f.CreateCommunity(ctx, d.ID, "gophers")

	if _, err := f.DB().Collection("communities").UpdateOne(ctx, bson.M{"_id": c.ID},
		bson.M{"$set": bson.M{"featured_image": models.Media{MediaID: "img-1"}}}); err != nil {
		t.Fatal(err)
	}

	course := f.CreateCourse(ctx, d.ID, admin.ID, "Bundled Course")
	plan := f.CreatePaymentPlan(ctx, models.PaymentPlan{
		DomainID: d.ID, EntityID: c.ID, EntityType: models.EntityCommunity,
		Type:               models.PlanSubscription,
		IncludedProductIDs: []primitive.ObjectID{course.ID},
	})
	m := f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: member.ID, EntityID: c.ID,
		EntityType: models.EntityCommunity, PaymentPlanID: plan.ID,
		SubscriptionID: "sub_777", SubscriptionMethod: "fake",
	})
	f.CreateInvoice(ctx, d.ID, m.ID)
	bundled := f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: member.ID, EntityID: course.ID,
		EntityType: models.EntityCourse, PaymentPlanID: plan.ID,
		IsIncludedInPlan: true,
		SubscriptionID:   "sub_888", SubscriptionMethod: "fake",
	})
	f.CreateInvoice(ctx, d.ID, bundled.ID)
	f.CreateActivity(ctx, models.Activity{
		DomainID: d.ID, UserID: member.ID, Type: "enrolled",
		EntityID: course.ID, PaymentPlanID: plan.ID, IsIncludedInPlan: true,
	})

	post := f.CreatePost(ctx, d.ID, c.ID, member.ID)
	f.CreateComment(ctx, models.Comment{DomainID: d.ID, CommunityID: c.ID, PostID: post.ID, AuthorID: member.ID})
	f.CreatePostSubscription(ctx, d.ID, c.ID, post.ID, member.ID)
	f.CreateReport(ctx, d.ID, c.ID, post.ID, member.ID)
	f.CreatePage(ctx, d.ID, c.ID, models.EntityCommunity, admin.ID)

	if err := w.DeleteCommunity(ctx, sessionFor(admin), c.ID); err != nil {
		t.Fatalf("DeleteCommunity: %v", err)
	}

	if len(gw.cancelled) != 2 || gw.cancelled[0] != "sub_777" || gw.cancelled[1] != "sub_888" {
		t.Fatalf("cancelled = %v, want [sub_777 sub_888]", gw.cancelled)
	}
	onCommunity, err := membershipstore.New(f.DB()).CountByEntity(ctx, d.ID, c.ID, models.EntityCommunity)
	if err != nil {
		t.Fatal(err)
	}
	if onCommunity != 0 {
		t.Fatalf("memberships on community = %d, want 0", onCommunity)
	}
	for _, col := range []string{
		"memberships", "invoices", "payment_plans",
		"posts", "comments", "post_subscriptions", "reports",
	} {
		if n := f.Count(ctx, col, bson.M{"domain_id": d.ID}); n != 0 {
			t.Fatalf("%s left = %d, want 0", col, n)
		}
	}
	if n := f.Count(ctx, "activities", bson.M{"is_included_in_plan": true}); n != 0 {
		t.Fatal("bundled activity survived")
	}
	if n := f.Count(ctx, "pages", bson.M{"entity_id": c.ID}); n != 0 {
		t.Fatal("community page survived")
	}
	if n := f.Count(ctx, "communities", bson.M{"_id": c.ID}); n != 0 {
		t.Fatal("community document survived")
	}
	if len(md.deleted) != 1 || md.deleted[0] != "img-1" {
		t.Fatalf("media deleted = %v, want [img-1]", md.deleted)
	}

	// The course itself was bundled, not owned by the community.
	if n := f.Count(ctx, "courses", bson.M{"_id": course.ID}); n != 1 {
		t.Fatal("bundled course must survive community deletion")
	}
}

func TestDeleteCommunityGuards(t *testing.T) {
	w, f, _, _ := newWorkflows(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	admin := f.CreateUser(ctx, d.ID, "Admin", "admin@acme.test", authz.ManageCommunity)
	plain := f.CreateUser(ctx, d.ID, "Plain", "plain@acme.test")
	c := f.CreateCommunity(ctx, d.ID, "gophers")

	if err := w.DeleteCommunity(ctx, auth.Session{DomainID: d.ID}, c.ID); err != apperrors.ErrUnauthorized {
		t.Fatalf("anonymous: got %v, want ErrUnauthorized", err)
	}
	if err := w.DeleteCommunity(ctx, sessionFor(plain), c.ID); err != apperrors.ErrActionNotAllowed {
		t.Fatalf("no capability: got %v, want ErrActionNotAllowed", err)
	}
	if err := w.DeleteCommunity(ctx, sessionFor(admin), primitive.NewObjectID()); err != apperrors.ErrItemNotFound {
		t.Fatalf("unknown id: got %v, want ErrItemNotFound", err)
	}
}

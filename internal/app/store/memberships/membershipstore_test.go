package membershipstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/codelitdev/coursehub/internal/app/store/memberships"
	"github.com/codelitdev/coursehub/internal/app/system/apperrors"
	"github.com/codelitdev/coursehub/internal/domain/models"
	"github.com/codelitdev/coursehub/internal/testutil"
)

func TestMigrateModeratorUpgradesExistingMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)
	store := membershipstore.New(db)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	subject := f.CreateUser(ctx, d.ID, "Mod", "mod@acme.test")
	successor := f.CreateUser(ctx, d.ID, "Heir", "heir@acme.test")
	c := f.CreateCommunity(ctx, d.ID, "gophers")

	f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: successor.ID, EntityID: c.ID,
		EntityType: models.EntityCommunity, Role: models.RoleMember,
	})
	mod := f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: subject.ID, EntityID: c.ID,
		EntityType: models.EntityCommunity,
		Role:       models.RoleModerator, RoleReason: models.RoleReasonSystem,
	})

	if err := store.MigrateModerator(ctx, d.ID, mod, successor.ID); err != nil {
		t.Fatalf("MigrateModerator: %v", err)
	}

	if n := f.Count(ctx, "memberships", bson.M{"entity_id": c.ID}); n != 1 {
		t.Fatalf("memberships = %d, want exactly 1", n)
	}
	var got models.Membership
	if err := db.Collection("memberships").FindOne(ctx, bson.M{"entity_id": c.ID}).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.UserID != successor.ID {
		t.Fatalf("holder = %s, want successor", got.UserID.Hex())
	}
	if got.Role != models.RoleModerator || got.RoleReason != models.RoleReasonSystem {
		t.Fatalf("role = %s/%s, want system moderator", got.Role, got.RoleReason)
	}
}

func TestMigrateModeratorReassignsWhenSuccessorAbsent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)
	store := membershipstore.New(db)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	subject := f.CreateUser(ctx, d.ID, "Mod", "mod@acme.test")
	successor := f.CreateUser(ctx, d.ID, "Heir", "heir@acme.test")
	c := f.CreateCommunity(ctx, d.ID, "gophers")

	mod := f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: subject.ID, EntityID: c.ID,
		EntityType: models.EntityCommunity,
		Role:       models.RoleModerator, RoleReason: models.RoleReasonSystem,
	})

	if err := store.MigrateModerator(ctx, d.ID, mod, successor.ID); err != nil {
		t.Fatalf("MigrateModerator: %v", err)
	}

	var got models.Membership
	if err := db.Collection("memberships").FindOne(ctx, bson.M{"_id": mod.ID}).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.UserID != successor.ID {
		t.Fatalf("holder = %s, want successor", got.UserID.Hex())
	}
	if n := f.Count(ctx, "memberships", bson.M{"entity_id": c.ID}); n != 1 {
		t.Fatalf("memberships = %d, want 1", n)
	}
}

func TestSetStatusRejectionRequiresReason(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)
	store := membershipstore.New(db)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	user := f.CreateUser(ctx, d.ID, "Member", "member@acme.test")
	c := f.CreateCommunity(ctx, d.ID, "gophers")
	m := f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: user.ID, EntityID: c.ID,
		EntityType: models.EntityCommunity, Status: models.MembershipPending,
	})

	err := store.SetStatus(ctx, d.ID, m.ID, models.MembershipRejected, "  ")
	if err != apperrors.ErrRejectionReasonMissing {
		t.Fatalf("blank reason: got %v, want ErrRejectionReasonMissing", err)
	}

	if err := store.SetStatus(ctx, d.ID, m.ID, models.MembershipRejected, "policy violation"); err != nil {
		t.Fatalf("reject with reason: %v", err)
	}
	status, err := store.StatusOf(ctx, d.ID, user.ID, c.ID, models.EntityCommunity)
	if err != nil {
		t.Fatal(err)
	}
	if status.Status != models.MembershipRejected || status.RejectionReason != "policy violation" {
		t.Fatalf("status = %+v, want rejected with reason", status)
	}

	// Approval clears the recorded reason.
	if err := store.SetStatus(ctx, d.ID, m.ID, models.MembershipActive, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	status, err = store.StatusOf(ctx, d.ID, user.ID, c.ID, models.EntityCommunity)
	if err != nil {
		t.Fatal(err)
	}
	if status.Status != models.MembershipActive || status.RejectionReason != "" {
		t.Fatalf("status = %+v, want active with cleared reason", status)
	}
}

func TestSetStatusValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)
	store := membershipstore.New(db)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	user := f.CreateUser(ctx, d.ID, "Member", "member@acme.test")
	c := f.CreateCommunity(ctx, d.ID, "gophers")
	m := f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: user.ID, EntityID: c.ID,
		EntityType: models.EntityCommunity,
	})

	if err := store.SetStatus(ctx, d.ID, m.ID, "banned", ""); err != membershipstore.ErrBadStatus {
		t.Fatalf("unknown status: got %v, want ErrBadStatus", err)
	}

	missing := f.CreateMembership(ctx, models.Membership{
		DomainID: d.ID, UserID: user.ID, EntityID: c.ID, EntityType: models.EntityCourse,
	})
	if err := store.Delete(ctx, d.ID, missing.ID); err != nil {
		t.Fatal(err)
	}
	if err := store.SetStatus(ctx, d.ID, missing.ID, models.MembershipActive, ""); err != membershipstore.ErrNotFound {
		t.Fatalf("deleted membership: got %v, want ErrNotFound", err)
	}
}

// Package indexes creates the indexes the app relies on. All ensure calls
// are idempotent; EnsureAll runs at startup and fails fast so a missing
// unique constraint never goes unnoticed.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll creates every index the app depends on.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(collection string, models []mongo.IndexModel) {
		_, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			problems = append(problems, collection+": "+err.Error())
		}
	}

	unique := options.Index().SetUnique(true)

	ensure("users", []mongo.IndexModel{
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "permissions", Value: 1}, {Key: "active", Value: 1}}},
	})
	ensure("communities", []mongo.IndexModel{
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "name_ci", Value: 1}}},
	})
	ensure("memberships", []mongo.IndexModel{
		// One membership per (user, entity) pair; the moderator migration
		// depends on this constraint.
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "user_id", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "entity_type", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "entity_type", Value: 1}}},
	})
	ensure("invoices", []mongo.IndexModel{
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "membership_id", Value: 1}}},
	})
	ensure("payment_plans", []mongo.IndexModel{
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "entity_type", Value: 1}}},
	})
	ensure("posts", []mongo.IndexModel{
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "community_id", Value: 1}}},
	})
	ensure("comments", []mongo.IndexModel{
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "post_id", Value: 1}}},
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "community_id", Value: 1}}},
	})
	ensure("post_subscriptions", []mongo.IndexModel{
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique},
	})
	ensure("pages", []mongo.IndexModel{
		{Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "entity_id", Value: 1}}},
	})
	ensure("deletion_progress", []mongo.IndexModel{
		{Keys: bson.D{{Key: "workflow", Value: 1}, {Key: "subject_id", Value: 1}, {Key: "step", Value: 1}}, Options: unique},
	})

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

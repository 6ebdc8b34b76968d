package deletion

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// cascadeAuthoredContent deletes everything the subject wrote, leaf-first:
// subscriptions and comments before the posts they hang off, so the store
// never holds a dangling reference to a deleted post.
func (w *Workflows) cascadeAuthoredContent(ctx context.Context, domainID, userID primitive.ObjectID) error {
	if _, err := w.db.Collection("post_subscriptions").DeleteMany(ctx,
		bson.M{"domain_id": domainID, "user_id": userID}); err != nil {
		return fmt.Errorf("delete post subscriptions: %w", err)
	}
	if _, err := w.comments.DeleteByAuthor(ctx, domainID, userID); err != nil {
		return fmt.Errorf("delete authored comments: %w", err)
	}
	if _, err := w.db.Collection("reports").DeleteMany(ctx,
		bson.M{"domain_id": domainID, "reporter_id": userID}); err != nil {
		return fmt.Errorf("delete filed reports: %w", err)
	}
	if _, err := w.posts.DeleteByAuthor(ctx, domainID, userID); err != nil {
		return fmt.Errorf("delete authored posts: %w", err)
	}
	return nil
}

// cascadeCommunityContent wipes a community's social content. Order matters
// the same way: post subscriptions and comments first, then reports, then
// the posts themselves.
func (w *Workflows) cascadeCommunityContent(ctx context.Context, domainID, communityID primitive.ObjectID) error {
	if _, err := w.db.Collection("post_subscriptions").DeleteMany(ctx,
		bson.M{"domain_id": domainID, "community_id": communityID}); err != nil {
		return fmt.Errorf("delete post subscriptions: %w", err)
	}
	n, err := w.comments.DeleteByCommunity(ctx, domainID, communityID)
	if err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	if _, err := w.db.Collection("reports").DeleteMany(ctx,
		bson.M{"domain_id": domainID, "community_id": communityID}); err != nil {
		return fmt.Errorf("delete reports: %w", err)
	}
	p, err := w.posts.DeleteByCommunity(ctx, domainID, communityID)
	if err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	w.log.Info("cascaded community content",
		zap.String("community_id", communityID.Hex()),
		zap.Int64("comments", n),
		zap.Int64("posts", p))
	return nil
}

// personalCollections hold records that exist only for a single user and
// have no successor: they are purged, never reassigned.
var personalCollections = []string{
	"activities",
	"notifications",
	"progress",
	"certificates",
	"download_links",
	"mail_request_status",
}

func (w *Workflows) purgePersonalRecords(ctx context.Context, domainID, userID primitive.ObjectID) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range personalCollections {
		name := name
		g.Go(func() error {
			if _, err := w.db.Collection(name).DeleteMany(ctx,
				bson.M{"domain_id": domainID, "user_id": userID}); err != nil {
				return fmt.Errorf("purge %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

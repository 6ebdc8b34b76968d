package deletion

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// scrubUserReferences removes the subject's id from every array that embeds
// it in other people's documents: post and comment likes, sequence entrant
// lists, and course customer rosters. Pulls match nothing on a re-run, so
// the phase is idempotent.
func (w *Workflows) scrubUserReferences(ctx context.Context, domainID, userID primitive.ObjectID) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := w.posts.PullLikes(ctx, domainID, userID); err != nil {
			return fmt.Errorf("scrub post likes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := w.comments.PullLikes(ctx, domainID, userID); err != nil {
			return fmt.Errorf("scrub comment likes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := w.db.Collection("sequences").UpdateMany(ctx,
			bson.M{"domain_id": domainID},
			bson.M{"$pull": bson.M{"entrants": userID}}); err != nil {
			return fmt.Errorf("scrub sequence entrants: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := w.db.Collection("courses").UpdateMany(ctx,
			bson.M{"domain_id": domainID},
			bson.M{"$pull": bson.M{"customers": userID}}); err != nil {
			return fmt.Errorf("scrub course customers: %w", err)
		}
		return nil
	})

	return g.Wait()
}

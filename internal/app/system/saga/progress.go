package saga

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProgress persists step-completion markers in the deletion_progress
// collection. Upserts keyed on (workflow, subject_id, step) keep it
// idempotent under retries.
type MongoProgress struct {
	c *mongo.Collection
}

// NewMongoProgress builds a recorder on the given database.
func NewMongoProgress(db *mongo.Database) *MongoProgress {
	return &MongoProgress{c: db.Collection("deletion_progress")}
}

func (p *MongoProgress) Completed(ctx context.Context, workflow string, subject primitive.ObjectID) (map[string]bool, error) {
	cur, err := p.c.Find(ctx, bson.M{"workflow": workflow, "subject_id": subject})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	done := make(map[string]bool)
	for cur.Next(ctx) {
		var row struct {
			Step string `bson:"step"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		done[row.Step] = true
	}
	return done, cur.Err()
}

func (p *MongoProgress) MarkDone(ctx context.Context, workflow string, subject primitive.ObjectID, step string) error {
	_, err := p.c.UpdateOne(ctx,
		bson.M{"workflow": workflow, "subject_id": subject, "step": step},
		bson.M{"$setOnInsert": bson.M{"completed_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (p *MongoProgress) Clear(ctx context.Context, workflow string, subject primitive.ObjectID) error {
	_, err := p.c.DeleteMany(ctx, bson.M{"workflow": workflow, "subject_id": subject})
	return err
}

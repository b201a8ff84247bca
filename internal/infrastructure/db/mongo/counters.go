package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// nextSequence atomically allocates the next value of a named monotonic
// sequence. FindOneAndUpdate with $inc is the single serialization point,
// so concurrently allocated ids never collide and never decrease.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := db.Collection(countersCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", name, err)
	}
	return counter.Value, nil
}

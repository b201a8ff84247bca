package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/acme/account-service/internal/core/domain"
)

const eventsCollection = "security_events"

// EventRepository is the MongoDB-backed audit trail. Event ids come from
// the shared counters collection, which makes the append the single global
// serialization point required for total ordering.
type EventRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{db: db, coll: db.Collection(eventsCollection)}
}

type mongoEvent struct {
	ID      int64     `bson:"id"`
	Date    time.Time `bson:"date"`
	Action  string    `bson:"action"`
	Subject string    `bson:"subject"`
	Object  string    `bson:"object"`
	Path    string    `bson:"path"`
}

func (r *EventRepository) Append(ctx context.Context, event *domain.SecurityEvent) (*domain.SecurityEvent, error) {
	id, err := nextSequence(ctx, r.db, "security_events")
	if err != nil {
		return nil, err
	}

	stored := *event
	stored.ID = id
	doc := mongoEvent{
		ID:      stored.ID,
		Date:    stored.Date,
		Action:  string(stored.Action),
		Subject: stored.Subject,
		Object:  stored.Object,
		Path:    stored.Path,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}
	return &stored, nil
}

func (r *EventRepository) List(ctx context.Context) ([]*domain.SecurityEvent, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*domain.SecurityEvent
	for cursor.Next(ctx) {
		var doc mongoEvent
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, &domain.SecurityEvent{
			ID:      doc.ID,
			Date:    doc.Date,
			Action:  domain.SecurityEventAction(doc.Action),
			Subject: doc.Subject,
			Object:  doc.Object,
			Path:    doc.Path,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

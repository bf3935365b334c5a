package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cropbank/banking-system/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository appends immutable audit records. Records are never updated
// or deleted; downstream observability consumers read the collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDocument struct {
	EventID    string            `bson:"event_id"`
	Topic      string            `bson:"topic"`
	Key        string            `bson:"key"`
	Payload    domain.AuditEvent `bson:"payload"`
	RecordedAt time.Time         `bson:"recorded_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDocument{
		EventID:    event.EventID(),
		Topic:      event.Topic(),
		Key:        event.Key(),
		Payload:    event,
		RecordedAt: time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the per-resource stream index.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "key", Value: 1}, {Key: "recorded_at", Value: 1}}},
		{Keys: bson.D{{Key: "event_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

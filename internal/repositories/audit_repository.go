package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditEntry is one record in the append-only moderation trail
type AuditEntry struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AdminID   uint               `json:"admin_id" bson:"admin_id"`
	Action    string             `json:"action" bson:"action"` // e.g. "report_dismiss", "suspend", "community_approve"
	TargetID  uint               `json:"target_id" bson:"target_id"`
	Detail    string             `json:"detail,omitempty" bson:"detail,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// AuditRepository defines the interface for the moderation audit trail
type AuditRepository interface {
	Append(ctx context.Context, entry *AuditEntry) error
	GetRecent(ctx context.Context, limit int64) ([]AuditEntry, error)
}

// MongoAuditRepository implements AuditRepository for MongoDB
type MongoAuditRepository struct {
	collection *mongo.Collection
}

// NewMongoAuditRepository creates a new MongoAuditRepository
func NewMongoAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{collection: db.Collection("admin_audit")}
}

// Append records one moderation action
func (r *MongoAuditRepository) Append(ctx context.Context, entry *AuditEntry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// GetRecent retrieves the newest audit entries
func (r *MongoAuditRepository) GetRecent(ctx context.Context, limit int64) ([]AuditEntry, error) {
	var entries []AuditEntry
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Package mongodb stores slots as documents in a MongoDB collection:
// {_id: key, value: <json text>, updatedAt}. The value is kept as text so the
// document shape never depends on the slot's JSON content.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tinoosan/finboard/internal/storage"
)

// CollectionName is the collection slots are written to.
const CollectionName = "slots"

// ---- Abstractions for Testability ----

// SingleResult is the part of *mongo.SingleResult the store reads.
type SingleResult interface {
	Decode(v interface{}) error
}

// Collection defines the operations the store performs on a collection.
type Collection interface {
	FindOne(ctx context.Context, filter interface{}) SingleResult
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// MongoCollection adapts *mongo.Collection to Collection.
type MongoCollection struct {
	*mongo.Collection
}

// FindOne runs a single-document lookup.
func (c *MongoCollection) FindOne(ctx context.Context, filter interface{}) SingleResult {
	return c.Collection.FindOne(ctx, filter)
}

type slotDoc struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Store implements storage.Slots on top of a Collection.
type Store struct {
	coll   Collection
	client *mongo.Client
	now    func() time.Time
}

// New wraps an existing collection.
func New(coll Collection) *Store {
	return &Store{coll: coll, now: time.Now}
}

// Connect establishes a connection to MongoDB and returns a store bound to
// database db.
func Connect(ctx context.Context, uri, db string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.DebugContext(ctx, "connecting to MongoDB", "database", db)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	logger.InfoContext(ctx, "connected to MongoDB", "database", db)
	s := New(&MongoCollection{client.Database(db).Collection(CollectionName)})
	s.client = client
	return s, nil
}

// Close disconnects the client when the store owns one.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Ready pings the server when the store owns a client.
func (s *Store) Ready(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx, nil)
}

// Load implements storage.Slots.
func (s *Store) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var doc slotDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load slot %s: %w", key, err)
	}
	return []byte(doc.Value), true, nil
}

// Save implements storage.Slots with an upsert.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	update := bson.M{"$set": bson.M{"value": string(value), "updatedAt": s.now().UTC()}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", key, err)
	}
	return nil
}

// Clear implements storage.Slots.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": storage.Keys()}})
	if err != nil {
		return fmt.Errorf("failed to clear slots: %w", err)
	}
	return nil
}

var _ storage.Slots = (*Store)(nil)

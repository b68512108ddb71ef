package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/pagescope/backend/analyzer"
)

const collectionName = "scrapes"

// ErrNotFound is returned when a delete targets a record that does
// not exist.
var ErrNotFound = errors.New("record not found")

// StoredRecord wraps an analysis record with its storage identity and
// scrape timestamp. Records are inserted, never updated; a re-scrape
// of the same URL produces a new document.
type StoredRecord struct {
	ID        primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	URL       string                 `json:"url" bson:"url"`
	ScrapedAt time.Time              `json:"scrapedAt" bson:"scraped_at"`
	Record    analyzer.ScrapedRecord `json:"record" bson:"record"`
}

// MongoStore persists analysis records in a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
	log  *zap.Logger
}

// NewMongoStore connects to MongoDB and verifies the connection. The
// caller decides what to do when the backend is unreachable; analysis
// must keep working without a store.
func NewMongoStore(ctx context.Context, uri, database string, log *zap.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MongoStore{
		coll: client.Database(database).Collection(collectionName),
		log:  log,
	}, nil
}

// Save inserts a new record stamped with the current time.
func (s *MongoStore) Save(ctx context.Context, record *analyzer.ScrapedRecord) error {
	doc := StoredRecord{
		URL:       record.URL,
		ScrapedAt: time.Now().UTC(),
		Record:    *record,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("inserting record for %s: %w", record.URL, err)
	}
	return nil
}

// List returns all stored records, most recent scrape first.
func (s *MongoStore) List(ctx context.Context) ([]StoredRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scraped_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []StoredRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return records, nil
}

// Delete removes a stored record by its hex identifier.
func (s *MongoStore) Delete(ctx context.Context, hexID string) error {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", hexID, err)
	}
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", hexID, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Defaults for mongodb:// locations.
const (
	DefaultMongoDatabase   = "uiregistry"
	DefaultMongoCollection = "artifacts"
	DefaultMongoID         = "registry"
)

// MongoStore keeps the artifact as one document in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	id         string
	location   string
}

// artifactDoc is the stored document shape.
type artifactDoc struct {
	ID        string    `bson:"_id"`
	Artifact  []byte    `bson:"artifact"`
	Checksum  string    `bson:"checksum"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type mongoLocation struct {
	uri        string
	database   string
	collection string
	id         string
}

// NewMongoStore connects to the MongoDB deployment addressed by location
// (mongodb://host/database?collection=name&id=doc) and verifies it with a ping.
func NewMongoStore(ctx context.Context, location string) (Store, error) {
	loc, err := parseMongoLocation(location)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(loc.uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return withHooks(&MongoStore{
		client:     client,
		collection: client.Database(loc.database).Collection(loc.collection),
		id:         loc.id,
		location:   fmt.Sprintf("%s#%s.%s/%s", redactURL(loc.uri), loc.database, loc.collection, loc.id),
	}, "mongodb"), nil
}

// parseMongoLocation removes the store-specific collection and id parameters
// and resolves the database from the URL path.
func parseMongoLocation(location string) (mongoLocation, error) {
	u, err := url.Parse(location)
	if err != nil {
		return mongoLocation{}, fmt.Errorf("parse mongodb location: %w", err)
	}
	q := u.Query()
	loc := mongoLocation{
		database:   strings.Trim(u.Path, "/"),
		collection: q.Get("collection"),
		id:         q.Get("id"),
	}
	if loc.database == "" {
		loc.database = DefaultMongoDatabase
	}
	if loc.collection == "" {
		loc.collection = DefaultMongoCollection
	}
	if loc.id == "" {
		loc.id = DefaultMongoID
	}
	q.Del("collection")
	q.Del("id")
	u.RawQuery = q.Encode()
	loc.uri = u.String()
	return loc, nil
}

// Load fetches the artifact document.
func (s *MongoStore) Load(ctx context.Context) ([]byte, error) {
	var doc artifactDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": s.id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb find %s: %w", s.id, err)
	}
	return doc.Artifact, nil
}

// Save upserts the artifact document, replacing any previous version.
func (s *MongoStore) Save(ctx context.Context, data []byte) error {
	doc := artifactDoc{
		ID:        s.id,
		Artifact:  data,
		Checksum:  Hash(data),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": s.id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb replace %s: %w", s.id, err)
	}
	return nil
}

// Location returns the redacted deployment URL and document address.
func (s *MongoStore) Location() string { return s.location }

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)

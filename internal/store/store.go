package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	defaultURI        = "mongodb://localhost:27017"
	defaultDatabase   = "interview"
	defaultCollection = "candidates"
	defaultTimeout    = 5 * time.Second
)

// Config describes how to reach the document store. Zero values fall back to
// a local MongoDB with the default database.
type Config struct {
	URI      string
	Database string
	// Timeout bounds server selection during the initial connect. Individual
	// operations after that are not given their own deadline.
	Timeout time.Duration
}

// collectionAPI is the slice of *mongo.Collection the gateway needs. Tests
// substitute an in-memory implementation.
type collectionAPI interface {
	UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// Store is the persistence gateway over the candidates collection. Construct
// it once with Connect and pass it down; there is no lazy global instance.
type Store struct {
	client     *mongo.Client
	candidates collectionAPI
	logger     *zap.Logger
	now        func() time.Time
}

// Connect establishes a verified connection to MongoDB and ensures the unique
// email index. A failure to reach the server within the configured timeout is
// returned as a ConnectionError.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		uri = defaultURI
	}

	database := strings.TrimSpace(cfg.Database)
	if database == "" {
		database = defaultDatabase
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, &ConnectionError{URI: uri, Err: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Force a round trip to verify availability and credentials.
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, &ConnectionError{URI: uri, Err: err}
	}

	coll := client.Database(database).Collection(defaultCollection)

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Index creation must not break startup; duplicates may already exist.
		logger.Warn("could not ensure unique email index", zap.Error(err))
	}

	logger.Info("connected to mongodb", zap.String("database", database))

	return &Store{
		client:     client,
		candidates: coll,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Close releases the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Package mongo is a MongoDB backed snapshot store.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/appgraph/pkg/flow"
	"github.com/matzehuels/appgraph/pkg/store"
)

// Collection is the name of the collection holding snapshots.
const Collection = "layouts"

// Store keeps snapshots in a MongoDB collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Config selects the server and database.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration // connect and ping timeout, default 10s
}

// Open connects to MongoDB, pings the server and ensures the created_at
// index used by List exists.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = "appgraph"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Store{client: client, coll: coll}, nil
}

func (s *Store) Save(ctx context.Context, l flow.Layout) (store.Snapshot, error) {
	snap := store.NewSnapshot(l, time.Now())
	if _, err := s.coll.InsertOne(ctx, snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	return snap, nil
}

func (s *Store) Get(ctx context.Context, id string) (store.Snapshot, error) {
	if err := store.ValidateID(id); err != nil {
		return store.Snapshot{}, err
	}
	var snap store.Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.Snapshot{}, store.NotFound(id)
	}
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("find snapshot %s: %w", id, err)
	}
	return snap, nil
}

func (s *Store) List(ctx context.Context, limit int) ([]store.Snapshot, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	out := []store.Snapshot{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	return out, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ store.Store = (*Store)(nil)

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps snapshots in a mongo collection, one document per
// record, upserted by name.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type snapshotDoc struct {
	Name      string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection("snapshots"),
	}, nil
}

func (m *MongoStore) Load(ctx context.Context, name string) ([]byte, error) {
	var doc snapshotDoc
	err := m.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", name, err)
	}

	return doc.Data, nil
}

func (m *MongoStore) Save(ctx context.Context, name string, data []byte) error {
	filter := bson.M{"_id": name}
	update := bson.M{"$set": bson.M{
		"data":       data,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", name, err)
	}

	return nil
}

func (m *MongoStore) Delete(ctx context.Context, name string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", name, err)
	}

	return nil
}

func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

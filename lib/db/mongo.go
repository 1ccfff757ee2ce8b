package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// NewMongoClient connects to uri and checks the primary is reachable.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri).SetMaxPoolSize(5)
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)

	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)

	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error pinging mongo: %w", err)
	}

	return client, nil
}

func NewGridFsBucket(client *mongo.Client, database string) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(
		client.Database(database),
	)

	if err != nil {
		return nil, fmt.Errorf("error initializing GridFS: %w", err)
	}

	return bucket, nil
}

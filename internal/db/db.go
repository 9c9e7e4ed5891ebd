package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database holds the Mongo client and the database handle the registry
// lives in.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// New connects to MongoDB and verifies connectivity with a ping.
func New(uri, dbName string, connectTimeout time.Duration) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// close the client before returning the ping error
		if dErr := client.Disconnect(context.Background()); dErr != nil {
			return nil, dErr
		}
		return nil, err
	}

	return &Database{Client: client, DB: client.Database(dbName)}, nil
}

// Close disconnects the underlying client.
func (d *Database) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.Client.Disconnect(ctx)
}

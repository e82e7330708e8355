package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const connectTimeout = 10 * time.Second

// MongoOptions selects the deployment and database holding leg history
type MongoOptions struct {
	URI      string
	Database string
	Username string
	Password string
}

// OpenMongo connects, pings the primary and returns the configured database.
// The returned close function disconnects the client.
func OpenMongo(ctx context.Context, opts MongoOptions) (*mongo.Database, func(context.Context) error, error) {
	clientOptions := options.Client().
		ApplyURI(opts.URI).
		SetAppName("boardingpass-service").
		SetWriteConcern(writeconcern.Majority())

	if opts.Username != "" && opts.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: opts.Username,
			Password: opts.Password,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client.Database(opts.Database), client.Disconnect, nil
}

// Package mongo owns the MongoDB side of the account store: the connection
// bootstrap here and the user repository next to it.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultDatabase = "monitoring_system"
	dialTimeout     = 10 * time.Second
)

// Config holds what the server needs to reach the account store.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect dials the store and insists on a successful ping before the
// server starts taking traffic. An empty database name falls back to the
// monitoring default, an unset timeout to dialTimeout.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = dialTimeout
	}
	name := cfg.Database
	if name == "" {
		name = defaultDatabase
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("account store connect: %w", err)
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("account store ping: %w", err)
	}

	return client, client.Database(name), nil
}

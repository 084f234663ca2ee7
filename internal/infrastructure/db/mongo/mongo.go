package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	closeTimeout   = 5 * time.Second
)

// Conn bundles the driver client with the selected database so callers can
// pass the database around and still disconnect cleanly on shutdown.
type Conn struct {
	client *mongo.Client
	DB     *mongo.Database
}

// Open dials MongoDB and verifies connectivity with a primary-preferred ping
// before returning. User profiles are optional, so callers treat an error
// here as "profiles disabled" rather than fatal.
func Open(ctx context.Context, uri, database string) (*Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.PrimaryPreferred()); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Conn{client: client, DB: client.Database(database)}, nil
}

// Close disconnects the underlying client with a bounded timeout.
func (c *Conn) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return c.client.Disconnect(ctx)
}

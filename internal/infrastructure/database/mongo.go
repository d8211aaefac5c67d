package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DBConfig holds everything needed to reach the Mongo deployment.
type DBConfig struct {
	URI      string
	Database string

	// Retry configuration for the initial connect.
	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

// MongoDB wraps the driver client and manages its lifecycle. One instance is
// created at startup and shared by every collection store; the underlying
// client multiplexes concurrent operations over its connection pool.
type MongoDB struct {
	Client *mongo.Client
	Config *DBConfig
}

func NewMongoDB(config *DBConfig) *MongoDB {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = time.Second
	}
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 10 * time.Second
	}
	return &MongoDB{Config: config}
}

// connectWithRetry dials the deployment with exponential backoff between
// attempts, verifying each attempt with a ping.
func (db *MongoDB) connectWithRetry(ctx context.Context) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(db.Config.URI)

	var lastErr error
	for attempt := 1; attempt <= db.Config.MaxRetries; attempt++ {
		log.Printf("[DATABASE] Connection attempt %d/%d", attempt, db.Config.MaxRetries)

		connectCtx, cancel := context.WithTimeout(ctx, db.Config.ConnectTimeout)
		client, err := mongo.Connect(connectCtx, clientOptions)
		if err == nil {
			err = client.Ping(connectCtx, readpref.Primary())
			if err == nil {
				cancel()
				log.Printf("[DATABASE] Successfully connected on attempt %d", attempt)
				return client, nil
			}
			_ = client.Disconnect(context.Background())
		}
		cancel()
		lastErr = err
		log.Printf("[DATABASE] Attempt %d failed: %v", attempt, lastErr)

		if attempt < db.Config.MaxRetries {
			delay := db.Config.RetryDelay * time.Duration(1<<uint(attempt-1))
			log.Printf("[DATABASE] Retrying in %v...", delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w",
		db.Config.MaxRetries, lastErr)
}

// Connect establishes the client connection. Safe to call once at startup.
func (db *MongoDB) Connect(ctx context.Context) error {
	log.Println("[DATABASE] Initializing MongoDB connection...")

	client, err := db.connectWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	db.Client = client
	log.Println("[DATABASE] MongoDB connection established successfully")
	return nil
}

// Close tears the connection down. Must not be called before Connect; calling
// it on an already-closed handle is a no-op rather than a crash.
func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	err := db.Client.Disconnect(ctx)
	db.Client = nil
	return err
}

// HealthCheck verifies database connectivity. Intended for the health
// endpoint, called with a short deadline.
func (db *MongoDB) HealthCheck(ctx context.Context) error {
	if db.Client == nil {
		return fmt.Errorf("database client is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Client.Ping(healthCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Collection returns a handle bound to the configured database.
func (db *MongoDB) Collection(name string) *mongo.Collection {
	return db.Client.Database(db.Config.Database).Collection(name)
}

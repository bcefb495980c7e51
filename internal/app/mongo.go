package app

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"rideauth/internal/config"
)

// NewMongoClient connects to MongoDB. If nrApp is provided, commands are
// reported to New Relic as datastore segments.
func NewMongoClient(ctx context.Context, cfg config.MongoConfig, nrApp *newrelic.Application) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if nrApp != nil {
		opts.SetMonitor(nrmongo.NewCommandMonitor(nil))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}

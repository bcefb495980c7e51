package app

import (
	"context"
	"fmt"
	"log"

	"github.com/newrelic/go-agent/v3/newrelic"

	"rideauth/internal/config"
	"rideauth/internal/repository"
	mongorepo "rideauth/internal/repository/mongo"
	"rideauth/internal/repository/postgres"
	"rideauth/internal/repository/sqlite"
)

// UserStore is an opened credential store and the function that closes it.
type UserStore struct {
	Users repository.UserRepository
	Close func() error
}

// NewUserStore opens the credential store selected by cfg.Store.Driver.
func NewUserStore(ctx context.Context, cfg *config.Config, nrApp *newrelic.Application) (*UserStore, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			return nil, err
		}
		log.Println("Connected to PostgreSQL")
		return &UserStore{Users: postgres.NewUserRepository(db), Close: db.Close}, nil

	case config.StoreMongo:
		client, err := NewMongoClient(ctx, cfg.Mongo, nrApp)
		if err != nil {
			return nil, err
		}
		users := mongorepo.NewUserRepository(client.Database(cfg.Mongo.Database))
		if err := users.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Println("Connected to MongoDB")
		return &UserStore{
			Users: users,
			Close: func() error { return client.Disconnect(context.Background()) },
		}, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		log.Printf("Opened SQLite store at %s", cfg.SQLite.Path)
		return &UserStore{Users: sqlite.NewUserRepository(db), Close: db.Close}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

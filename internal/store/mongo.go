package store

import (
	"context"
	"fmt"
	"time"

	"github.com/noreyni/webhook-api/internal/config"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Collection names used across repositories.
const (
	CollectionUsers       = "users"
	CollectionProjects    = "projects"
	CollectionInvitations = "project_invitations"
)

// Module provides the mongo client and database handles.
var Module = fx.Module("store",
	fx.Provide(NewClient, NewDatabase),
	fx.Invoke(EnsureIndexes),
)

// NewClient connects to the document store. The pool is sized at startup and
// not resized afterwards.
func NewClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(cfg.MongoMaxPoolSize).
		SetAppName(cfg.AppName)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
				return fmt.Errorf("ping mongo: %w", err)
			}
			log.Info("mongo connected",
				zap.String("database", cfg.MongoDatabase),
				zap.Uint64("max_pool_size", cfg.MongoMaxPoolSize),
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("disconnecting mongo")
			return client.Disconnect(ctx)
		},
	})

	return client, nil
}

// NewDatabase returns the application database handle.
func NewDatabase(client *mongo.Client, cfg config.Config) *mongo.Database {
	return client.Database(cfg.MongoDatabase)
}

// EnsureIndexes provisions the unique indexes that backstop the application
// level uniqueness checks: duplicate writes racing past the check-then-act
// sequence fail at the store and surface as conflicts.
func EnsureIndexes(lc fx.Lifecycle, db *mongo.Database, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			models := map[string][]mongo.IndexModel{
				CollectionProjects: {
					{
						Keys:    bson.D{{Key: "name", Value: 1}},
						Options: options.Index().SetUnique(true).SetName("uniq_project_name"),
					},
					{
						Keys:    bson.D{{Key: "owner_id", Value: 1}},
						Options: options.Index().SetName("idx_project_owner"),
					},
				},
				CollectionUsers: {
					{
						Keys:    bson.D{{Key: "email", Value: 1}},
						Options: options.Index().SetUnique(true).SetName("uniq_user_email"),
					},
				},
				CollectionInvitations: {
					{
						Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "invitee_id", Value: 1}},
						Options: options.Index().SetName("idx_invitation_project_invitee"),
					},
					{
						Keys:    bson.D{{Key: "invitee_id", Value: 1}},
						Options: options.Index().SetName("idx_invitation_invitee"),
					},
				},
			}

			for collection, indexes := range models {
				if _, err := db.Collection(collection).Indexes().CreateMany(indexCtx, indexes); err != nil {
					return fmt.Errorf("ensure indexes on %s: %w", collection, err)
				}
			}

			log.Info("store indexes ensured")
			return nil
		},
	})
}

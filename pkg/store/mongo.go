package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/tombiddulph/BushtarionScraper/pkg/dump"
	"github.com/tombiddulph/BushtarionScraper/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoStore implements Store on a MongoDB database. World partitions are
// keyed by _id (the tick number as a string); players and alliances
// partitions carry a unique index on pk and are written by replace-upsert.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logger.Logger
}

// MongoConfig holds connection settings.
type MongoConfig struct {
	URI      string
	Database string
}

// NewMongo connects to MongoDB and verifies the connection.
func NewMongo(ctx context.Context, cfg MongoConfig, l *logger.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(cfg.Database),
		logger: l,
	}, nil
}

// EnsurePartitions creates the round's collections if they do not exist
// yet, and puts a unique pk index on the players and alliances partitions
// so the upsert key is enforced by the store.
func (s *MongoStore) EnsurePartitions(ctx context.Context, round int) error {
	p := PartitionsFor(round)

	if err := s.ensureCollection(ctx, p.World); err != nil {
		return err
	}
	for _, name := range []string{p.Players, p.Alliances} {
		if err := s.ensureCollection(ctx, name); err != nil {
			return err
		}
		_, err := s.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "pk", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("ensuring pk index on %s: %w", name, err)
		}
	}
	return nil
}

func (s *MongoStore) ensureCollection(ctx context.Context, name string) error {
	err := s.db.CreateCollection(ctx, name)
	if err != nil {
		// NamespaceExists: the collection is already there, which is the
		// normal case on every run after the round's first.
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == 48 {
			return nil
		}
		return fmt.Errorf("creating collection %s: %w", name, err)
	}
	s.logger.Info("created partition", zap.String("collection", name))
	return nil
}

// HasWorldTick checks the round's world partition for the tick.
func (s *MongoStore) HasWorldTick(ctx context.Context, round, tick int) (bool, error) {
	p := PartitionsFor(round)
	err := s.db.Collection(p.World).
		FindOne(ctx, bson.M{"_id": strconv.Itoa(tick)}).
		Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying world partition: %w", err)
	}
	return true, nil
}

// InsertWorld inserts the world record. The _id is the tick, so a
// concurrent run that already recorded this tick surfaces as a duplicate
// key error, mapped to ErrDuplicateTick.
func (s *MongoStore) InsertWorld(ctx context.Context, w *dump.World) error {
	p := PartitionsFor(w.Round)
	_, err := s.db.Collection(p.World).InsertOne(ctx, w)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: round %d tick %s", ErrDuplicateTick, w.Round, w.ID)
	}
	if err != nil {
		return fmt.Errorf("inserting world record: %w", err)
	}
	return nil
}

// UpsertPlayer replaces the player's document, creating it on first sight.
func (s *MongoStore) UpsertPlayer(ctx context.Context, round int, pl *dump.Player) error {
	p := PartitionsFor(round)
	_, err := s.db.Collection(p.Players).ReplaceOne(ctx,
		bson.M{"pk": pl.Pk}, pl, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upserting player %s: %w", pl.Pk, err)
	}
	return nil
}

// UpsertAlliance replaces the alliance's document, creating it on first sight.
func (s *MongoStore) UpsertAlliance(ctx context.Context, round int, a *dump.Alliance) error {
	p := PartitionsFor(round)
	_, err := s.db.Collection(p.Alliances).ReplaceOne(ctx,
		bson.M{"pk": a.Pk}, a, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upserting alliance %s: %w", a.Pk, err)
	}
	return nil
}

// Ping verifies store connectivity.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

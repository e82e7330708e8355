package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"boardingpass-service/internal/domain/entity"
	"boardingpass-service/internal/domain/repository"
	"boardingpass-service/pkg/logger"
)

const legCollection = "flight_legs"

// legDocument keeps the stored order of the collection
type legDocument struct {
	Position         int `bson:"position"`
	entity.FlightLeg `bson:",inline"`
}

// MongoLegRepository implements FlightLegRepository over a mongo collection
type MongoLegRepository struct {
	collection *mongo.Collection
	locker     repository.Locker
	logger     logger.Logger
}

// NewMongoLegRepository creates a new mongo leg repository
func NewMongoLegRepository(db *mongo.Database, locker repository.Locker, logger logger.Logger) *MongoLegRepository {
	collection := db.Collection(legCollection)

	ctx := context.Background()
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "position", Value: 1}}},
		{Keys: bson.D{
			{Key: "confirmationNumber", Value: 1},
			{Key: "flightNumber", Value: 1},
			{Key: "julianDate", Value: 1},
		}},
		{Keys: bson.M{"sourceFile": 1}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create leg indexes", "collection", legCollection, "error", err)
	}

	return &MongoLegRepository{
		collection: collection,
		locker:     locker,
		logger:     logger,
	}
}

// Load returns every stored leg in stored order
func (r *MongoLegRepository) Load(ctx context.Context) ([]entity.FlightLeg, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find legs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []legDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode legs: %w", err)
	}

	legs := make([]entity.FlightLeg, 0, len(docs))
	for _, d := range docs {
		legs = append(legs, d.FlightLeg)
	}
	return legs, nil
}

// Update holds the lock across load, fn and the rewrite of the collection
func (r *MongoLegRepository) Update(ctx context.Context, fn repository.UpdateFunc) ([]entity.FlightLeg, error) {
	release, err := r.locker.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	defer release()

	persisted, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(persisted)
	if err != nil {
		return nil, err
	}

	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("clear legs: %w", err)
	}
	if len(next) == 0 {
		return []entity.FlightLeg{}, nil
	}

	docs := make([]interface{}, len(next))
	for i, leg := range next {
		docs[i] = legDocument{Position: i, FlightLeg: leg}
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("insert legs: %w", err)
	}

	r.logger.Debug("Leg history rewritten", "collection", legCollection, "legs", len(next))
	return next, nil
}

// File: database/repository/entry/mongo.go
package entryRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"huddle/database"
	"huddle/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoEntryRepo struct {
	coll *mongo.Collection
}

// NewMongoEntryRepo constructs a new MongoDB EntryRepository.
func NewMongoEntryRepo() EntryRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoEntryRepo{coll: db.Collection("entries")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *mongoEntryRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "teamId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create entry indexes: %w", err)
	}
	return nil
}

// Create inserts a new entry.
func (r *mongoEntryRepo) Create(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries for a team.
func (r *mongoEntryRepo) Recent(ctx context.Context, teamID, category string, limit int) ([]models.Entry, error) {
	filter := bson.M{"teamId": teamID}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	return entries, nil
}

// Search matches the query against summaries, raw input, and tags.
func (r *mongoEntryRepo) Search(ctx context.Context, teamID, query string, categories []string, limit int) ([]models.Entry, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"teamId": teamID,
		"$or": []bson.M{
			{"summary": pattern},
			{"rawInput": pattern},
			{"tags": pattern},
		},
	}
	if len(categories) > 0 {
		filter["category"] = bson.M{"$in": categories}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	return entries, nil
}

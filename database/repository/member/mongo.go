package memberRepo

import (
	"context"
	"fmt"
	"time"

	"huddle/database"
	"huddle/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMemberRepo implements MemberRepository using MongoDB.
type MongoMemberRepo struct {
	coll *mongo.Collection
}

// NewMongoMemberRepo creates a new instance of MemberRepository using MongoDB.
func NewMongoMemberRepo() MemberRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("members")
	repo := &MongoMemberRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoMemberRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new member document.
func (r *MongoMemberRepo) Create(member *models.Member) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, member)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// Update modifies an existing member document.
func (r *MongoMemberRepo) Update(member *models.Member) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	member.UpdatedAt = time.Now()
	filter := bson.M{"id": member.ID}
	update := bson.M{"$set": member}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update member with id %s: %w", member.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("member with id %s not found", member.ID)
	}
	return nil
}

// UpdateRelayKey stores a sealed relay key on the member document.
func (r *MongoMemberRepo) UpdateRelayKey(id, sealedKey string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"relayKey": sealedKey, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update relay key for member %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("member with id %s not found", id)
	}
	return nil
}

// GetByIDWithProjection retrieves a member by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoMemberRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Member, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var member models.Member
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&member); err != nil {
		return nil, fmt.Errorf("failed to fetch member with id %s: %w", id, err)
	}
	return &member, nil
}

// GetByID retrieves a member by its unique ID (full document).
func (r *MongoMemberRepo) GetByID(id string) (*models.Member, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetByEmail retrieves a member by email address. Returns nil without
// an error when no member carries the email.
func (r *MongoMemberRepo) GetByEmail(email string) (*models.Member, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var member models.Member
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&member); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch member with email %s: %w", email, err)
	}
	return &member, nil
}

// GetByIDs retrieves every member whose ID is in the given set.
func (r *MongoMemberRepo) GetByIDs(ids []string) ([]models.Member, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	return members, nil
}

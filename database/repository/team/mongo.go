// File: database/repository/team/mongo.go
package teamRepo

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

type mongoTeamRepo struct {
	teams       *mongo.Collection
	memberships *mongo.Collection
}

// NewMongoTeamRepo constructs a new MongoDB TeamRepository.
func NewMongoTeamRepo() TeamRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoTeamRepo{
		teams:       db.Collection("teams"),
		memberships: db.Collection("memberships"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries.
// The compound membership index doubles as the duplicate-join guard.
func (r *mongoTeamRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.teams.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "inviteCode", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create team indexes: %w", err)
	}

	_, err = r.memberships.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "teamId", Value: 1}, {Key: "memberId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "memberId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create membership indexes: %w", err)
	}
	return nil
}

// Create inserts a new team document.
func (r *mongoTeamRepo) Create(ctx context.Context, team *models.Team) error {
	if team.ID == "" {
		team.ID = uuid.New().String()
	}
	team.CreatedAt = time.Now()

	if _, err := r.teams.InsertOne(ctx, team); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// GetByID returns a team by its ID.
func (r *mongoTeamRepo) GetByID(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team
	if err := r.teams.FindOne(ctx, bson.M{"id": id}).Decode(&team); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch team with id %s: %w", id, err)
	}
	return &team, nil
}

// GetByInviteCode returns the team carrying the invite code, nil when absent.
func (r *mongoTeamRepo) GetByInviteCode(ctx context.Context, code string) (*models.Team, error) {
	var team models.Team
	if err := r.teams.FindOne(ctx, bson.M{"inviteCode": code}).Decode(&team); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch team with invite code %s: %w", code, err)
	}
	return &team, nil
}

// AddMembership links a member to a team. The unique compound index
// rejects a second join of the same pair.
func (r *mongoTeamRepo) AddMembership(ctx context.Context, membership models.Membership) error {
	membership.JoinedAt = time.Now()
	if _, err := r.memberships.InsertOne(ctx, membership); err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

// IsMember reports whether the member belongs to the team.
func (r *mongoTeamRepo) IsMember(ctx context.Context, teamID, memberID string) (bool, error) {
	count, err := r.memberships.CountDocuments(ctx, bson.M{"teamId": teamID, "memberId": memberID})
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// GetMemberIDs returns the IDs of every member of the team.
func (r *mongoTeamRepo) GetMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	cursor, err := r.memberships.Find(ctx, bson.M{"teamId": teamID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memberships: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var m models.Membership
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode membership: %w", err)
		}
		ids = append(ids, m.MemberID)
	}
	return ids, nil
}

// GetTeamsForMember returns every team the member belongs to.
func (r *mongoTeamRepo) GetTeamsForMember(ctx context.Context, memberID string) ([]models.Team, error) {
	cursor, err := r.memberships.Find(ctx, bson.M{"memberId": memberID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memberships: %w", err)
	}
	defer cursor.Close(ctx)

	var teamIDs []string
	for cursor.Next(ctx) {
		var m models.Membership
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode membership: %w", err)
		}
		teamIDs = append(teamIDs, m.TeamID)
	}
	if len(teamIDs) == 0 {
		return nil, nil
	}

	teamCursor, err := r.teams.Find(ctx, bson.M{"id": bson.M{"$in": teamIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	defer teamCursor.Close(ctx)

	var teams []models.Team
	if err := teamCursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}
	return teams, nil
}

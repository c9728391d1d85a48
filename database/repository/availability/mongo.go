// File: database/repository/availability/mongo.go
package availabilityRepo

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

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoAvailabilityRepo{coll: db.Collection("availability_reports")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *mongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "memberId", Value: 1},
				{Key: "dateStart", Value: 1},
				{Key: "dateEnd", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}

// Upsert stores a report, replacing any earlier one for the same
// member and date range.
func (r *mongoAvailabilityRepo) Upsert(ctx context.Context, report *models.AvailabilityReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	report.SyncedAt = time.Now()

	filter := bson.M{
		"memberId":  report.MemberID,
		"dateStart": report.DateStart,
		"dateEnd":   report.DateEnd,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, report, opts); err != nil {
		return fmt.Errorf("failed to upsert availability report for member %s: %w", report.MemberID, err)
	}
	return nil
}

// GetReport fetches one member's report for the exact range. A member
// who has not synced that range yields nil, not an error.
func (r *mongoAvailabilityRepo) GetReport(ctx context.Context, memberID, dateStart, dateEnd string) (*models.AvailabilityReport, error) {
	filter := bson.M{
		"memberId":  memberID,
		"dateStart": dateStart,
		"dateEnd":   dateEnd,
	}
	var report models.AvailabilityReport
	if err := r.coll.FindOne(ctx, filter).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch availability report for member %s: %w", memberID, err)
	}
	return &report, nil
}

// GetTeamReports fetches every listed member's report for the range
// in a single query.
func (r *mongoAvailabilityRepo) GetTeamReports(ctx context.Context, memberIDs []string, dateStart, dateEnd string) (map[string]models.AvailabilityReport, error) {
	reports := make(map[string]models.AvailabilityReport)
	if len(memberIDs) == 0 {
		return reports, nil
	}

	filter := bson.M{
		"memberId":  bson.M{"$in": memberIDs},
		"dateStart": dateStart,
		"dateEnd":   dateEnd,
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability reports: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var report models.AvailabilityReport
		if err := cursor.Decode(&report); err != nil {
			return nil, fmt.Errorf("failed to decode availability report: %w", err)
		}
		reports[report.MemberID] = report
	}
	return reports, nil
}

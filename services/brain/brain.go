// File: services/brain/brain.go
package brain

import (
	"context"
	"fmt"

	"huddle/models"
	"huddle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requireMembership loads the team and checks the caller belongs to it.
func (s *DefaultBrainService) requireMembership(ctx context.Context, teamID, memberID string) error {
	team, err := s.Teams.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to load team: %w", err)
	}
	if team == nil {
		return &TeamNotFoundError{TeamID: teamID}
	}
	ok, err := s.Teams.IsMember(ctx, teamID, memberID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !ok {
		return &NotAMemberError{TeamID: teamID, MemberID: memberID}
	}
	return nil
}

// Dump classifies the input and stores it for the team. A primary
// store failure downgrades to the in-process fallback so the capture
// is never lost to an outage.
func (s *DefaultBrainService) Dump(ctx context.Context, teamID, memberID, input string) (*models.DumpResult, error) {
	if err := s.requireMembership(ctx, teamID, memberID); err != nil {
		return nil, err
	}

	cls, err := s.Classifier.Classify(ctx, input)
	if err != nil {
		return nil, &ClassificationError{Reason: err.Error()}
	}

	entry := models.Entry{
		ID:       uuid.New().String(),
		TeamID:   teamID,
		MemberID: memberID,
		Category: cls.Category,
		Summary:  cls.Summary,
		RawInput: input,
		Tags:     cls.Tags,
		Fields:   cls.Fields,
	}

	storage := StorageMongo
	if err := s.Repo.Create(ctx, &entry); err != nil {
		utils.GetLogger().Warn("primary entry store failed, falling back to memory",
			zap.String("teamId", teamID), zap.Error(err))
		if ferr := s.Fallback.Create(ctx, &entry); ferr != nil {
			return nil, fmt.Errorf("failed to store entry: %w", ferr)
		}
		storage = StorageMemory
	}

	return &models.DumpResult{Success: true, Entry: entry, Storage: storage}, nil
}

// Query searches the team's entries, falling back to the in-process
// store when the primary search fails.
func (s *DefaultBrainService) Query(ctx context.Context, teamID, memberID string, req models.QueryRequest) (*models.QueryResult, error) {
	if err := s.requireMembership(ctx, teamID, memberID); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	results, err := s.Repo.Search(ctx, teamID, req.Query, req.Categories, limit)
	if err != nil {
		utils.GetLogger().Warn("primary entry search failed, falling back to memory",
			zap.String("teamId", teamID), zap.Error(err))
		results, err = s.Fallback.Search(ctx, teamID, req.Query, req.Categories, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to search entries: %w", err)
		}
	}
	if results == nil {
		results = []models.Entry{}
	}
	return &models.QueryResult{Results: results, Count: len(results)}, nil
}

// Entries lists the team's newest entries.
func (s *DefaultBrainService) Entries(ctx context.Context, teamID, memberID, category string, limit int) ([]models.Entry, error) {
	if err := s.requireMembership(ctx, teamID, memberID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}

	entries, err := s.Repo.Recent(ctx, teamID, category, limit)
	if err != nil {
		utils.GetLogger().Warn("primary entry listing failed, falling back to memory",
			zap.String("teamId", teamID), zap.Error(err))
		entries, err = s.Fallback.Recent(ctx, teamID, category, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list entries: %w", err)
		}
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	return entries, nil
}

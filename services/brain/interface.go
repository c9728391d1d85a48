package brain

import (
	"context"

	entryRepo "huddle/database/repository/entry"
	teamRepo "huddle/database/repository/team"
	"huddle/models"
)

// Storage labels in DumpResult.
const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// BrainService captures free-text dumps into a team's shared memory
// and answers questions over it.
type BrainService interface {
	// Dump classifies the input and stores the resulting entry. When
	// the primary store is unreachable the entry is parked in the
	// in-process fallback rather than lost.
	Dump(ctx context.Context, teamID, memberID, input string) (*models.DumpResult, error)

	// Query searches the team's entries by text, optionally scoped to
	// categories.
	Query(ctx context.Context, teamID, memberID string, req models.QueryRequest) (*models.QueryResult, error)

	// Entries lists the team's newest entries, optionally filtered to
	// one category.
	Entries(ctx context.Context, teamID, memberID, category string, limit int) ([]models.Entry, error)
}

// DefaultBrainService is the production implementation.
type DefaultBrainService struct {
	Teams      teamRepo.TeamRepository
	Repo       entryRepo.EntryRepository
	Fallback   entryRepo.EntryRepository
	Classifier Classifier
}

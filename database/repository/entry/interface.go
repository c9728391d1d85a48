// File: database/repository/entry/interface.go
package entryRepo

import (
	"context"

	"huddle/models"
)

// EntryRepository stores classified brain entries per team.
type EntryRepository interface {
	Create(ctx context.Context, entry *models.Entry) error
	// Recent returns the newest entries for a team, optionally
	// filtered to one category. Empty category means all.
	Recent(ctx context.Context, teamID, category string, limit int) ([]models.Entry, error)
	// Search matches the query against summaries, raw input, and tags,
	// newest first, optionally restricted to the given categories.
	Search(ctx context.Context, teamID, query string, categories []string, limit int) ([]models.Entry, error)
}

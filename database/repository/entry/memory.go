// File: database/repository/entry/memory.go
package entryRepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"huddle/models"

	"github.com/google/uuid"
)

// MemoryEntryRepo is an in-process EntryRepository. Besides memory
// mode and tests, it serves as the fallback store when the primary
// repository is unreachable, so captured entries survive an outage.
type MemoryEntryRepo struct {
	mu      sync.RWMutex
	entries []models.Entry
}

// NewMemoryEntryRepo creates an empty in-memory entry repository.
func NewMemoryEntryRepo() *MemoryEntryRepo {
	return &MemoryEntryRepo{}
}

func (r *MemoryEntryRepo) Create(_ context.Context, entry *models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *MemoryEntryRepo) Recent(_ context.Context, teamID, category string, limit int) ([]models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Entry
	for _, e := range r.entries {
		if e.TeamID != teamID {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, e)
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryEntryRepo) Search(_ context.Context, teamID, query string, categories []string, limit int) ([]models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var out []models.Entry
	for _, e := range r.entries {
		if e.TeamID != teamID {
			continue
		}
		if len(categories) > 0 && !containsString(categories, e.Category) {
			continue
		}
		if matchesQuery(e, q) {
			out = append(out, e)
		}
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func matchesQuery(e models.Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.Summary), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.RawInput), q) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func sortNewestFirst(entries []models.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

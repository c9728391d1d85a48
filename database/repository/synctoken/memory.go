// File: database/repository/synctoken/memory.go
package synctokenRepo

import (
	"context"
	"sync"
	"time"

	"huddle/models"
	"huddle/utils"
)

type storedToken struct {
	data      models.SyncTokenData
	expiresAt time.Time
}

// MemorySyncTokenRepo is an in-process SyncTokenRepository used in
// memory mode and in tests. The mutex makes Consume atomic.
type MemorySyncTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]storedToken
}

// NewMemorySyncTokenRepo creates an empty in-memory token repository.
func NewMemorySyncTokenRepo() *MemorySyncTokenRepo {
	return &MemorySyncTokenRepo{tokens: make(map[string]storedToken)}
}

func (r *MemorySyncTokenRepo) Issue(_ context.Context, data models.SyncTokenData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[data.Token] = storedToken{
		data:      data,
		expiresAt: time.Now().Add(utils.SyncTokenTTL),
	}
	return nil
}

func (r *MemorySyncTokenRepo) Consume(_ context.Context, token string) (*models.SyncTokenData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tokens[token]
	if !ok {
		return nil, nil
	}
	delete(r.tokens, token)

	if time.Now().After(stored.expiresAt) {
		return nil, nil
	}
	out := stored.data
	return &out, nil
}

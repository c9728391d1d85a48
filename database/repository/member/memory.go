package memberRepo

import (
	"fmt"
	"sync"
	"time"

	"huddle/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// MemoryMemberRepo is an in-process MemberRepository used in memory
// mode and in tests.
type MemoryMemberRepo struct {
	mu      sync.RWMutex
	members map[string]models.Member
}

// NewMemoryMemberRepo creates an empty in-memory member repository.
func NewMemoryMemberRepo() *MemoryMemberRepo {
	return &MemoryMemberRepo{members: make(map[string]models.Member)}
}

func (r *MemoryMemberRepo) Create(member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	for _, m := range r.members {
		if m.Email == member.Email {
			return fmt.Errorf("member with email %s already exists", member.Email)
		}
	}
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now
	r.members[member.ID] = *member
	return nil
}

func (r *MemoryMemberRepo) Update(member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[member.ID]; !ok {
		return fmt.Errorf("member with id %s not found", member.ID)
	}
	member.UpdatedAt = time.Now()
	r.members[member.ID] = *member
	return nil
}

func (r *MemoryMemberRepo) UpdateRelayKey(id, sealedKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return fmt.Errorf("member with id %s not found", id)
	}
	m.RelayKey = sealedKey
	m.UpdatedAt = time.Now()
	r.members[id] = m
	return nil
}

func (r *MemoryMemberRepo) GetByID(id string) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch member with id %s: not found", id)
	}
	out := m
	return &out, nil
}

func (r *MemoryMemberRepo) GetByEmail(email string) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members {
		if m.Email == email {
			out := m
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryMemberRepo) GetByIDs(ids []string) ([]models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var members []models.Member
	for _, id := range ids {
		if m, ok := r.members[id]; ok {
			members = append(members, m)
		}
	}
	return members, nil
}

// GetByIDWithProjection ignores the projection: in-memory lookups are
// cheap and the full document is always available.
func (r *MemoryMemberRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Member, error) {
	return r.GetByID(id)
}

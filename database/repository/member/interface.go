package memberRepo

import (
	"huddle/models"

	"go.mongodb.org/mongo-driver/bson"
)

// MemberRepository defines methods for member data access.
type MemberRepository interface {
	// Create inserts a new member record.
	Create(member *models.Member) error
	// Update modifies an existing member record.
	Update(member *models.Member) error
	// UpdateRelayKey stores a sealed relay key on the member.
	UpdateRelayKey(id, sealedKey string) error
	// GetByID retrieves a member by its unique ID.
	GetByID(id string) (*models.Member, error)
	// GetByEmail retrieves a member by email, nil when absent.
	GetByEmail(email string) (*models.Member, error)
	// GetByIDs retrieves every member whose ID is in the given set.
	GetByIDs(ids []string) ([]models.Member, error)
	// GetByIDWithProjection retrieves a member by ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Member, error)
}

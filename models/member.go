package models

import "time"

// Member represents a registered account that can join teams and
// receive calendar sync requests through its relay agent.
type Member struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	TokenHash string    `bson:"tokenHash,omitempty" json:"-"`
	RelayKey  string    `bson:"relayKey,omitempty" json:"-"` // sealed with the server key, never exposed
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasRelayKey reports whether the member has connected a relay agent.
func (m *Member) HasRelayKey() bool {
	return m.RelayKey != ""
}

// RegisterMemberRequest defines the payload for creating an account.
type RegisterMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateRelayKeyRequest defines the payload for connecting a relay agent.
type UpdateRelayKeyRequest struct {
	RelayKey string `json:"relayKey" binding:"required"`
}

// AuthResponse is returned after registration with the bearer token
// the client must present on subsequent requests.
type AuthResponse struct {
	Token  string `json:"token"`
	Member Member `json:"member"`
}

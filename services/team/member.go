// File: services/team/member.go
package team

import (
	"context"
	"fmt"
	"time"

	"huddle/models"
	"huddle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The bearer token acts as an API key for a relay agent, not as a
// browser session, so it stays valid for a year.
const memberTokenValidity = 365 * 24 * time.Hour

// RegisterMember creates the member record and mints their bearer
// token. The raw token is returned exactly once; the record keeps a
// SHA-256 hash for the auth middleware to compare against.
func (s *DefaultTeamService) RegisterMember(req models.RegisterMemberRequest) (*models.AuthResponse, error) {
	existing, err := s.Members.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("failed to check for existing member", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, &EmailTakenError{Email: req.Email}
	}

	member := models.Member{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Email: req.Email,
	}

	token, err := utils.GenerateToken(member.ID, member.Email, memberTokenValidity)
	if err != nil {
		utils.GetLogger().Error("failed to generate member token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	member.TokenHash = utils.HashToken(token)

	if err := s.Members.Create(&member); err != nil {
		utils.GetLogger().Error("failed to create member", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &models.AuthResponse{Token: token, Member: member}, nil
}

// UpdateRelayKey stores a sealed copy of the member's relay API key.
// The key has to be recoverable for outbound delivery, so it is
// encrypted rather than hashed, and it never leaves the server again.
func (s *DefaultTeamService) UpdateRelayKey(ctx context.Context, teamID, memberID, relayKey string) error {
	if _, err := s.requireMembership(ctx, teamID, memberID); err != nil {
		return err
	}

	sealed, err := utils.SealKey(relayKey)
	if err != nil {
		return fmt.Errorf("failed to seal relay key: %w", err)
	}
	if err := s.Members.UpdateRelayKey(memberID, sealed); err != nil {
		return fmt.Errorf("failed to store relay key: %w", err)
	}
	return nil
}

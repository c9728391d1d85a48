// File: database/repository/synctoken/interface.go
package synctokenRepo

import (
	"context"

	"huddle/models"
)

// SyncTokenRepository stores the one-time tokens minted for calendar
// sync requests. Consume must be atomic: two calls with the same
// token can never both succeed.
type SyncTokenRepository interface {
	Issue(ctx context.Context, data models.SyncTokenData) error
	// Consume returns the token's data and deletes it in one step.
	// Unknown or already-consumed tokens yield nil without an error.
	Consume(ctx context.Context, token string) (*models.SyncTokenData, error)
}

package repositories

import (
	"context"

	"rln-faucet.backend/internal/domain/entities"
)

// UserRepository interface
type UserRepository interface {
	// GetOrCreate returns the user with the given Telegram identity,
	// creating the record on first contact.
	GetOrCreate(ctx context.Context, telegramID int64) (*entities.User, error)
}

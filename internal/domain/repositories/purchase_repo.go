package repositories

import (
	"context"

	"github.com/google/uuid"
	"rln-faucet.backend/internal/domain/entities"
)

// PurchaseRepository interface
type PurchaseRepository interface {
	Create(ctx context.Context, invoice string, chatID int64) (*entities.Purchase, error)
	// FindPending returns the pending purchase for the chat, or nil when
	// there is none.
	FindPending(ctx context.Context, chatID int64) (*entities.Purchase, error)
	AllPending(ctx context.Context) ([]*entities.Purchase, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PurchaseStatus) error
}

package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"rln-faucet.backend/internal/domain/entities"
)

// SendRequestRepository interface. Every update is a single-record atomic
// write; no method spans more than one row.
type SendRequestRepository interface {
	Create(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID) (*entities.SendRequest, error)
	// LatestOpen returns the most recent request of the kind still open for
	// the user (pending or already_used), or nil when there is none.
	LatestOpen(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID) (*entities.SendRequest, error)
	CountRecentSuccesses(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID, since time.Time) (int, error)
	// OldestRecentSuccess returns the oldest successful request of the kind
	// after since, or nil when there is none. Used to compute retry times.
	OldestRecentSuccess(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID, since time.Time) (*entities.SendRequest, error)
	// IsDescriptorConsumed reports whether an asset request with this
	// descriptor ever reached success or already_used, for any user.
	IsDescriptorConsumed(ctx context.Context, descriptor string) (bool, error)
	SetDescriptor(ctx context.Context, id uuid.UUID, descriptor string) error
	MarkSuccess(ctx context.Context, id uuid.UUID, txid string) error
	MarkDescriptorUsed(ctx context.Context, id uuid.UUID) error
}

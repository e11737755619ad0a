package entities

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseStatus represents the status of a Purchase entry
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusDelivered PurchaseStatus = "delivered"
	PurchaseStatusExpired   PurchaseStatus = "expired"
	PurchaseStatusFailed    PurchaseStatus = "failed"
)

// Purchase represents one issued LN invoice awaiting payment. At most one
// pending purchase may exist per chat; terminal states are permanent and
// only the reconciliation loop drives transitions out of pending.
type Purchase struct {
	ID        uuid.UUID      `json:"id"`
	Invoice   string         `json:"invoice"`
	ChatID    int64          `json:"chatId"`
	Status    PurchaseStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

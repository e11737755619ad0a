package entities

import (
	"time"

	"github.com/google/uuid"
)

// SendRequestKind discriminates asset sends from plain on-chain BTC payouts.
type SendRequestKind string

const (
	SendRequestKindAsset SendRequestKind = "asset"
	SendRequestKindBtc   SendRequestKind = "btc"
)

// SendRequestStatus represents the status of a send request
type SendRequestStatus string

const (
	SendRequestStatusPending     SendRequestStatus = "pending"
	SendRequestStatusAlreadyUsed SendRequestStatus = "already_used"
	SendRequestStatusSuccess     SendRequestStatus = "success"
)

// IsOpen reports whether a request in this status is still the user's
// current ask. Superseded requests keep their terminal status forever.
func (s SendRequestStatus) IsOpen() bool {
	return s == SendRequestStatusPending || s == SendRequestStatusAlreadyUsed
}

// SendRequest represents one attempt to deliver assets or bitcoins to a user.
// Requests are append-only: a request is never deleted, only superseded.
type SendRequest struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"userId"`
	Kind       SendRequestKind   `json:"kind"`
	Descriptor string            `json:"descriptor,omitempty"` // RGB invoice or BTC address, empty until submitted
	TxID       string            `json:"txid,omitempty"`
	Status     SendRequestStatus `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

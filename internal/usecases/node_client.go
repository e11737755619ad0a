package usecases

import (
	"context"

	"rln-faucet.backend/internal/infrastructure/node"
)

// NodeClient is the slice of the node API the use cases need
type NodeClient interface {
	SendAsset(ctx context.Context, recipientID string, transportEndpoints []string) (string, error)
	SendBtc(ctx context.Context, address string) (string, error)
	Invoice(ctx context.Context) (string, error)
	InvoiceStatus(ctx context.Context, invoice string) (node.InvoiceStatus, error)
	RefreshTransfers(ctx context.Context) error
}

package usecases

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"rln-faucet.backend/internal/domain/entities"
	"rln-faucet.backend/internal/domain/repositories"
	"rln-faucet.backend/internal/infrastructure/node"
	"rln-faucet.backend/pkg/logger"
	"rln-faucet.backend/pkg/metrics"
)

// PurchaseUsecase issues LN invoices and reconciles pending purchases
// against the node's view of their payment state.
type PurchaseUsecase struct {
	purchases repositories.PurchaseRepository
	node      NodeClient
	notifier  Notifier
	stickers  []string
}

// NewPurchaseUsecase creates a new purchase usecase
func NewPurchaseUsecase(
	purchases repositories.PurchaseRepository,
	nodeClient NodeClient,
	notifier Notifier,
	stickers []string,
) *PurchaseUsecase {
	return &PurchaseUsecase{
		purchases: purchases,
		node:      nodeClient,
		notifier:  notifier,
		stickers:  stickers,
	}
}

// RequestInvoice returns the chat's pending invoice, or issues a new one
// when none is outstanding
func (u *PurchaseUsecase) RequestInvoice(ctx context.Context, chatID int64) (Reply, error) {
	pending, err := u.purchases.FindPending(ctx, chatID)
	if err != nil {
		return Reply{}, err
	}
	if pending != nil {
		return Reply{Kind: ReplyInvoicePending, Invoice: pending.Invoice}, nil
	}

	invoice, err := u.node.Invoice(ctx)
	if err != nil {
		return Reply{}, err
	}
	if _, err := u.purchases.Create(ctx, invoice, chatID); err != nil {
		return Reply{}, err
	}
	return Reply{Kind: ReplyInvoiceIssued, Invoice: invoice}, nil
}

// ReconcilePending sweeps every pending purchase once. Each purchase is
// handled independently: a node error on one invoice skips it and moves
// on. The status write always lands before the user is told about it, so
// a crash between the two can only lose a notification, never repeat a
// delivery.
func (u *PurchaseUsecase) ReconcilePending(ctx context.Context) error {
	pending, err := u.purchases.AllPending(ctx)
	if err != nil {
		return err
	}

	for _, purchase := range pending {
		status, err := u.node.InvoiceStatus(ctx, purchase.Invoice)
		if err != nil {
			logger.Error(ctx, "invoice status check failed",
				zap.String("purchaseId", purchase.ID.String()), zap.Error(err))
			continue
		}

		switch status {
		case node.InvoiceStatusPending:
			continue

		case node.InvoiceStatusSucceeded:
			if err := u.purchases.UpdateStatus(ctx, purchase.ID, entities.PurchaseStatusDelivered); err != nil {
				logger.Error(ctx, "mark purchase delivered failed",
					zap.String("purchaseId", purchase.ID.String()), zap.Error(err))
				continue
			}
			metrics.PurchaseTransitionsTotal.WithLabelValues(string(entities.PurchaseStatusDelivered)).Inc()
			u.notifier.Notify(ctx, purchase.ChatID, Reply{Kind: ReplyInvoicePaid})
			if sticker := u.randomSticker(); sticker != "" {
				u.notifier.SendSticker(ctx, purchase.ChatID, sticker)
			}

		case node.InvoiceStatusExpired:
			if err := u.purchases.UpdateStatus(ctx, purchase.ID, entities.PurchaseStatusExpired); err != nil {
				logger.Error(ctx, "mark purchase expired failed",
					zap.String("purchaseId", purchase.ID.String()), zap.Error(err))
				continue
			}
			metrics.PurchaseTransitionsTotal.WithLabelValues(string(entities.PurchaseStatusExpired)).Inc()
			u.notifier.Notify(ctx, purchase.ChatID, Reply{Kind: ReplyInvoiceExpired})

		default:
			if err := u.purchases.UpdateStatus(ctx, purchase.ID, entities.PurchaseStatusFailed); err != nil {
				logger.Error(ctx, "mark purchase failed failed",
					zap.String("purchaseId", purchase.ID.String()), zap.Error(err))
				continue
			}
			metrics.PurchaseTransitionsTotal.WithLabelValues(string(entities.PurchaseStatusFailed)).Inc()
			u.notifier.Notify(ctx, purchase.ChatID, Reply{Kind: ReplyInvoiceFailed})
			u.notifier.NotifyOperator(ctx, fmt.Sprintf(
				"Purchase %s ended in unexpected invoice status %q", purchase.ID, status))
		}
	}

	metrics.ReconcilePassesTotal.Inc()
	return nil
}

func (u *PurchaseUsecase) randomSticker() string {
	if len(u.stickers) == 0 {
		return ""
	}
	return u.stickers[rand.Intn(len(u.stickers))]
}

package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rln-faucet.backend/internal/domain/entities"
	domainerrors "rln-faucet.backend/internal/domain/errors"
	"rln-faucet.backend/internal/domain/repositories"
	"rln-faucet.backend/pkg/logger"
	"rln-faucet.backend/pkg/metrics"
	"rln-faucet.backend/pkg/redis"
)

const consumedDescriptorTTL = 30 * 24 * time.Hour

// FaucetUsecase drives the asset and BTC send request lifecycle
type FaucetUsecase struct {
	users    repositories.UserRepository
	requests repositories.SendRequestRepository
	limiter  *RateLimiter
	node     NodeClient
	notifier Notifier
}

// NewFaucetUsecase creates a new faucet usecase
func NewFaucetUsecase(
	users repositories.UserRepository,
	requests repositories.SendRequestRepository,
	limiter *RateLimiter,
	node NodeClient,
	notifier Notifier,
) *FaucetUsecase {
	return &FaucetUsecase{
		users:    users,
		requests: requests,
		limiter:  limiter,
		node:     node,
		notifier: notifier,
	}
}

// RequestAsset opens (or re-surfaces) an asset request for the user.
// Repeating the command while a request is open is a no-op apart from the
// reminder reply.
func (u *FaucetUsecase) RequestAsset(ctx context.Context, telegramID int64) (Reply, error) {
	return u.openRequest(ctx, telegramID, entities.SendRequestKindAsset, ReplyAskAssetInvoice)
}

// RequestBtc opens (or re-surfaces) a BTC request for the user
func (u *FaucetUsecase) RequestBtc(ctx context.Context, telegramID int64) (Reply, error) {
	return u.openRequest(ctx, telegramID, entities.SendRequestKindBtc, ReplyAskBtcAddress)
}

func (u *FaucetUsecase) openRequest(ctx context.Context, telegramID int64, kind entities.SendRequestKind, ask ReplyKind) (Reply, error) {
	user, err := u.users.GetOrCreate(ctx, telegramID)
	if err != nil {
		return Reply{}, err
	}

	decision, err := u.limiter.Allow(ctx, kind, user.ID)
	if err != nil {
		return Reply{}, err
	}
	if !decision.Allowed {
		return Reply{Kind: ReplyRateLimited, RetryAt: decision.RetryAt}, nil
	}

	open, err := u.requests.LatestOpen(ctx, kind, user.ID)
	if err != nil {
		return Reply{}, err
	}
	if open == nil {
		if _, err := u.requests.Create(ctx, kind, user.ID); err != nil {
			return Reply{}, err
		}
	}
	return Reply{Kind: ask}, nil
}

// SubmitInput routes free-form text from the user to whichever request is
// open. An RGB invoice only matches an open asset request and a BTC address
// only matches an open BTC request; everything else is unrecognized.
func (u *FaucetUsecase) SubmitInput(ctx context.Context, telegramID int64, chatID int64, input string) (Reply, error) {
	user, err := u.users.GetOrCreate(ctx, telegramID)
	if err != nil {
		return Reply{}, err
	}

	assetReq, err := u.requests.LatestOpen(ctx, entities.SendRequestKindAsset, user.ID)
	if err != nil {
		return Reply{}, err
	}
	btcReq, err := u.requests.LatestOpen(ctx, entities.SendRequestKindBtc, user.ID)
	if err != nil {
		return Reply{}, err
	}
	if assetReq == nil && btcReq == nil {
		return Reply{Kind: ReplyNone}, nil
	}

	if invoice, perr := ParseRGBInvoice(input); perr == nil {
		if assetReq == nil {
			return Reply{Kind: ReplyUnrecognizedInput}, nil
		}
		return u.submitAssetDescriptor(ctx, chatID, assetReq, invoice)
	}

	if address, perr := ValidateBtcAddress(input); perr == nil {
		if btcReq == nil {
			return Reply{Kind: ReplyUnrecognizedInput}, nil
		}
		return u.submitBtcAddress(ctx, chatID, btcReq, address)
	}

	return Reply{Kind: ReplyUnrecognizedInput}, nil
}

func (u *FaucetUsecase) submitAssetDescriptor(ctx context.Context, chatID int64, req *entities.SendRequest, invoice *RGBInvoice) (Reply, error) {
	consumed, err := u.descriptorConsumed(ctx, invoice.RecipientID)
	if err != nil {
		return Reply{}, err
	}
	if consumed {
		return Reply{Kind: ReplyDescriptorUsed}, nil
	}

	// A request parked in already_used is superseded by a fresh pending one
	// as soon as the user comes back with a new invoice.
	if req.Status == entities.SendRequestStatusAlreadyUsed {
		fresh, err := u.requests.Create(ctx, entities.SendRequestKindAsset, req.UserID)
		if err != nil {
			return Reply{}, err
		}
		req = fresh
	}

	if err := u.requests.SetDescriptor(ctx, req.ID, invoice.RecipientID); err != nil {
		return Reply{}, err
	}

	u.notifier.Notify(ctx, chatID, Reply{Kind: ReplySending})

	txid, err := u.node.SendAsset(ctx, invoice.RecipientID, invoice.TransportEndpoints)
	switch {
	case err == nil:
		if err := u.requests.MarkSuccess(ctx, req.ID, txid); err != nil {
			return Reply{}, err
		}
		u.cacheConsumedDescriptor(ctx, invoice.RecipientID)
		metrics.SendsTotal.WithLabelValues(string(entities.SendRequestKindAsset)).Inc()
		if rerr := u.node.RefreshTransfers(ctx); rerr != nil {
			logger.Warn(ctx, "refresh transfers after send failed", zap.Error(rerr))
		}
		return Reply{Kind: ReplyAssetSent, TxID: txid}, nil

	case errors.Is(err, domainerrors.ErrRecipientAlreadyUsed):
		// The node is authoritative on reuse; the local exclusion check can
		// lose the race against a concurrent send of the same invoice.
		if err := u.requests.MarkDescriptorUsed(ctx, req.ID); err != nil {
			return Reply{}, err
		}
		u.cacheConsumedDescriptor(ctx, invoice.RecipientID)
		return Reply{Kind: ReplyDescriptorUsed}, nil

	case errors.Is(err, domainerrors.ErrInvalidTransportEndpoints):
		return Reply{Kind: ReplyInvalidEndpoints}, nil

	default:
		metrics.SendFailuresTotal.WithLabelValues(string(entities.SendRequestKindAsset)).Inc()
		logger.Error(ctx, "asset send failed", zap.String("requestId", req.ID.String()), zap.Error(err))
		u.notifier.NotifyOperator(ctx, fmt.Sprintf("Asset send failed for request %s: %v", req.ID, err))
		return Reply{Kind: ReplySendFailed}, nil
	}
}

func (u *FaucetUsecase) submitBtcAddress(ctx context.Context, chatID int64, req *entities.SendRequest, address string) (Reply, error) {
	if err := u.requests.SetDescriptor(ctx, req.ID, address); err != nil {
		return Reply{}, err
	}

	u.notifier.Notify(ctx, chatID, Reply{Kind: ReplySending})

	txid, err := u.node.SendBtc(ctx, address)
	if err != nil {
		metrics.SendFailuresTotal.WithLabelValues(string(entities.SendRequestKindBtc)).Inc()
		logger.Error(ctx, "btc send failed", zap.String("requestId", req.ID.String()), zap.Error(err))
		u.notifier.NotifyOperator(ctx, fmt.Sprintf("BTC send failed for request %s: %v", req.ID, err))
		return Reply{Kind: ReplySendFailed}, nil
	}

	if err := u.requests.MarkSuccess(ctx, req.ID, txid); err != nil {
		return Reply{}, err
	}
	metrics.SendsTotal.WithLabelValues(string(entities.SendRequestKindBtc)).Inc()
	return Reply{Kind: ReplyBtcSent, TxID: txid}, nil
}

// descriptorConsumed checks the cache first and falls back to the store
func (u *FaucetUsecase) descriptorConsumed(ctx context.Context, descriptor string) (bool, error) {
	if redis.Enabled() {
		if _, err := redis.Get(ctx, consumedKey(descriptor)); err == nil {
			return true, nil
		}
	}
	return u.requests.IsDescriptorConsumed(ctx, descriptor)
}

func (u *FaucetUsecase) cacheConsumedDescriptor(ctx context.Context, descriptor string) {
	if !redis.Enabled() {
		return
	}
	if err := redis.Set(ctx, consumedKey(descriptor), "1", consumedDescriptorTTL); err != nil {
		logger.Warn(ctx, "cache consumed descriptor failed", zap.Error(err))
	}
}

func consumedKey(descriptor string) string {
	return "faucet:consumed:" + descriptor
}

package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domainerrors "rln-faucet.backend/internal/domain/errors"
	"rln-faucet.backend/internal/infrastructure/node"
	"rln-faucet.backend/pkg/logger"
)

// HealthNode is the slice of the node API the health job polls
type HealthNode interface {
	AssetBalance(ctx context.Context) (*node.AssetBalanceResponse, error)
	BtcBalance(ctx context.Context) (*node.BtcBalanceResponse, error)
	CreateUtxos(ctx context.Context) error
}

// OperatorReporter delivers health findings to the operator chat
type OperatorReporter interface {
	NotifyOperator(ctx context.Context, text string)
}

// NodeHealthJob periodically checks node liquidity and replenishes UTXOs.
// The three checks are independent: one failing does not stop the others.
type NodeHealthJob struct {
	node            HealthNode
	reporter        OperatorReporter
	minAssetBalance uint64
	minBtcBalance   uint64
	interval        time.Duration
	stop            chan struct{}
}

// NewNodeHealthJob creates a new node health job
func NewNodeHealthJob(healthNode HealthNode, reporter OperatorReporter, minAssetBalance, minBtcBalance uint64, interval time.Duration) *NodeHealthJob {
	return &NodeHealthJob{
		node:            healthNode,
		reporter:        reporter,
		minAssetBalance: minAssetBalance,
		minBtcBalance:   minBtcBalance,
		interval:        interval,
		stop:            make(chan struct{}),
	}
}

// Start begins the health loop
func (j *NodeHealthJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting node health job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.run(ctx)
		case <-j.stop:
			logger.Info(ctx, "node health job stopped")
			return
		case <-ctx.Done():
			logger.Info(ctx, "node health job stopped", zap.Error(ctx.Err()))
			return
		}
	}
}

// Stop stops the job
func (j *NodeHealthJob) Stop() {
	close(j.stop)
}

func (j *NodeHealthJob) run(ctx context.Context) {
	j.checkAssetBalance(ctx)
	j.replenishUtxos(ctx)
	j.checkBtcBalance(ctx)
}

func (j *NodeHealthJob) checkAssetBalance(ctx context.Context) {
	balance, err := j.node.AssetBalance(ctx)
	if err != nil {
		logger.Error(ctx, "asset balance check failed", zap.Error(err))
		j.reporter.NotifyOperator(ctx, fmt.Sprintf("Asset balance check failed: %v", err))
		return
	}
	if balance.Future < j.minAssetBalance {
		j.reporter.NotifyOperator(ctx, fmt.Sprintf(
			"Asset balance under minimum acceptable: %d < %d", balance.Future, j.minAssetBalance))
	}
}

func (j *NodeHealthJob) replenishUtxos(ctx context.Context) {
	err := j.node.CreateUtxos(ctx)
	if err == nil || errors.Is(err, domainerrors.ErrAllocationsAlreadyAvailable) {
		return
	}
	logger.Error(ctx, "utxo replenishment failed", zap.Error(err))
	j.reporter.NotifyOperator(ctx, fmt.Sprintf("UTXO replenishment failed: %v", err))
}

func (j *NodeHealthJob) checkBtcBalance(ctx context.Context) {
	balance, err := j.node.BtcBalance(ctx)
	if err != nil {
		logger.Error(ctx, "btc balance check failed", zap.Error(err))
		j.reporter.NotifyOperator(ctx, fmt.Sprintf("BTC balance check failed: %v", err))
		return
	}
	if balance.Vanilla.Future < j.minBtcBalance {
		j.reporter.NotifyOperator(ctx, fmt.Sprintf(
			"BTC balance under minimum acceptable: %d < %d", balance.Vanilla.Future, j.minBtcBalance))
	}
}

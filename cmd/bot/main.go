package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rln-faucet.backend/internal/config"
	"rln-faucet.backend/internal/infrastructure/jobs"
	"rln-faucet.backend/internal/infrastructure/models"
	"rln-faucet.backend/internal/infrastructure/node"
	infrarepos "rln-faucet.backend/internal/infrastructure/repositories"
	httpiface "rln-faucet.backend/internal/interfaces/http"
	"rln-faucet.backend/internal/interfaces/telegram"
	"rln-faucet.backend/internal/usecases"
	"rln-faucet.backend/pkg/logger"
	"rln-faucet.backend/pkg/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Error(ctx, "failed to open database", zap.Error(err))
		os.Exit(1)
	}
	if err := db.AutoMigrate(&models.User{}, &models.SendRequest{}, &models.Purchase{}); err != nil {
		logger.Error(ctx, "failed to migrate database", zap.Error(err))
		os.Exit(1)
	}

	if cfg.Redis.URL != "" {
		if err := redis.Init(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Warn(ctx, "redis unavailable, running without descriptor cache", zap.Error(err))
		}
	}

	nodeClient := node.NewClient(cfg.Node.URL, cfg.Node.RequestTimeout, node.Params{
		AssetID:              cfg.Faucet.AssetID,
		AssetAmount:          cfg.Faucet.AssetAmountToSend,
		SatAmount:            cfg.Faucet.SatAmountToSend,
		InvoiceExpirationSec: cfg.Faucet.InvoiceExpirationSec,
		InvoicePriceMsat:     cfg.Faucet.InvoicePriceMsat,
		UtxosToCreate:        cfg.Faucet.UtxosToCreate,
		FeeRate:              cfg.Faucet.FeeRate,
	})

	identity, err := resolveNodeIdentity(ctx, nodeClient, cfg)
	if err != nil {
		logger.Error(ctx, "failed to resolve node identity", zap.Error(err))
		os.Exit(1)
	}
	logger.Info(ctx, "node identity resolved",
		zap.String("pubkey", identity.Pubkey),
		zap.String("network", identity.Network),
		zap.String("ticker", identity.AssetTicker))

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Error(ctx, "failed to connect to telegram", zap.Error(err))
		os.Exit(1)
	}

	msgs := &telegram.MessageCatalog{
		AssetTicker: identity.AssetTicker,
		AssetAmount: cfg.Faucet.AssetAmountToSend,
		SatAmount:   cfg.Faucet.SatAmountToSend,
		NodeURI:     identity.URI,
		Network:     identity.Network,
	}
	sender := telegram.NewSender(api, msgs, cfg.Telegram.OperatorChatID)

	userRepo := infrarepos.NewUserRepository(db)
	requestRepo := infrarepos.NewSendRequestRepository(db)
	purchaseRepo := infrarepos.NewPurchaseRepository(db)

	limiter := usecases.NewRateLimiter(requestRepo, cfg.Faucet.MaxDailySuccesses)
	faucetUsecase := usecases.NewFaucetUsecase(userRepo, requestRepo, limiter, nodeClient, sender)
	purchaseUsecase := usecases.NewPurchaseUsecase(purchaseRepo, nodeClient, sender, cfg.Faucet.Stickers)

	reconcileJob := jobs.NewInvoiceReconcileJob(purchaseUsecase, cfg.Jobs.ReconcileInterval)
	healthJob := jobs.NewNodeHealthJob(nodeClient, sender,
		cfg.Faucet.MinAssetBalance, cfg.Faucet.MinBtcBalance, cfg.Jobs.HealthInterval)
	go reconcileJob.Start(ctx)
	go healthJob.Start(ctx)

	router := httpiface.NewRouter(cfg.Server.Env)
	go func() {
		if err := router.Run(":" + cfg.Server.Port); err != nil {
			logger.Error(ctx, "ops server stopped", zap.Error(err))
		}
	}()

	bot := telegram.NewBot(api, sender, msgs, faucetUsecase, purchaseUsecase, cfg.Telegram.UpdateTimeout)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(ctx, "shutting down")
		reconcileJob.Stop()
		healthJob.Stop()
		cancel()
	}()

	sender.NotifyOperator(ctx, "Bot started")
	bot.Run(ctx)
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.Database.URL()), &gorm.Config{})
	default:
		if err := os.MkdirAll(cfg.Database.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return gorm.Open(sqlite.Open(cfg.Database.SqlitePath()), &gorm.Config{})
	}
}

// resolveNodeIdentity queries the node once at startup. A faucet pointed
// at a node that does not know its configured asset must not come up.
func resolveNodeIdentity(ctx context.Context, client *node.Client, cfg *config.Config) (*config.NodeIdentity, error) {
	ctx, cancelTimeout := context.WithTimeout(ctx, 30*time.Second)
	defer cancelTimeout()

	info, err := client.NodeInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("node info: %w", err)
	}

	network, err := client.NetworkInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("network info: %w", err)
	}

	assets, err := client.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	ticker := ""
	for _, asset := range assets {
		if asset.AssetID == cfg.Faucet.AssetID {
			ticker = asset.Ticker
			break
		}
	}
	if ticker == "" {
		return nil, fmt.Errorf("node does not know asset %s", cfg.Faucet.AssetID)
	}

	uri := info.Pubkey
	if cfg.Node.AnnouncementAddr != "" {
		uri = info.Pubkey + "@" + cfg.Node.AnnouncementAddr
	}

	return &config.NodeIdentity{
		Pubkey:      info.Pubkey,
		URI:         uri,
		Network:     network.Network,
		AssetTicker: ticker,
	}, nil
}

package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"rln-faucet.backend/internal/usecases"
	"rln-faucet.backend/pkg/logger"
)

// Bot runs the Telegram update loop and routes commands and free text
// into the use cases.
type Bot struct {
	api           *tgbotapi.BotAPI
	sender        *Sender
	msgs          *MessageCatalog
	faucet        *usecases.FaucetUsecase
	purchases     *usecases.PurchaseUsecase
	updateTimeout int
}

// NewBot creates a new bot
func NewBot(
	api *tgbotapi.BotAPI,
	sender *Sender,
	msgs *MessageCatalog,
	faucet *usecases.FaucetUsecase,
	purchases *usecases.PurchaseUsecase,
	updateTimeout int,
) *Bot {
	return &Bot{
		api:           api,
		sender:        sender,
		msgs:          msgs,
		faucet:        faucet,
		purchases:     purchases,
		updateTimeout: updateTimeout,
	}
}

// Run polls for updates until the context ends. Each message is handled
// in its own goroutine so a slow node call never blocks other users.
func (b *Bot) Run(ctx context.Context) {
	b.registerCommands(ctx)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.updateTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	logger.Info(ctx, "bot update loop started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logger.Info(ctx, "bot update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) registerCommands(ctx context.Context) {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "getasset", Description: "Receive testnet assets"},
		tgbotapi.BotCommand{Command: "getbtc", Description: "Receive testnet bitcoins"},
		tgbotapi.BotCommand{Command: "getinvoice", Description: "Buy assets over Lightning"},
		tgbotapi.BotCommand{Command: "getnodeinfo", Description: "Show the backing node"},
		tgbotapi.BotCommand{Command: "help", Description: "Show available commands"},
	)
	if _, err := b.api.Request(commands); err != nil {
		logger.Warn(ctx, "setting bot commands failed", zap.Error(err))
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	telegramID := message.From.ID

	if message.IsCommand() {
		b.handleCommand(ctx, message, telegramID, chatID)
		return
	}

	reply, err := b.faucet.SubmitInput(ctx, telegramID, chatID, message.Text)
	b.deliver(ctx, chatID, reply, err)
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message, telegramID, chatID int64) {
	switch message.Command() {
	case "start":
		b.sender.SendText(ctx, chatID, b.msgs.Welcome())

	case "help":
		b.sender.SendText(ctx, chatID, b.msgs.Help())

	case "getasset":
		reply, err := b.faucet.RequestAsset(ctx, telegramID)
		b.deliver(ctx, chatID, reply, err)

	case "getbtc":
		reply, err := b.faucet.RequestBtc(ctx, telegramID)
		b.deliver(ctx, chatID, reply, err)

	case "getinvoice":
		reply, err := b.purchases.RequestInvoice(ctx, chatID)
		b.deliver(ctx, chatID, reply, err)

	case "getnodeinfo":
		b.sender.SendText(ctx, chatID, b.msgs.NodeInfo())

	default:
		b.sender.SendText(ctx, chatID, b.msgs.Help())
	}
}

func (b *Bot) deliver(ctx context.Context, chatID int64, reply usecases.Reply, err error) {
	if err != nil {
		logger.Error(ctx, "handling message failed", zap.Int64("chatId", chatID), zap.Error(err))
		b.sender.SendText(ctx, chatID, b.msgs.SomethingWentWrong())
		b.sender.NotifyOperator(ctx, "Handling a message failed: "+err.Error())
		return
	}
	b.sender.Notify(ctx, chatID, reply)
}

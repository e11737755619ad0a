package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"rln-faucet.backend/internal/usecases"
	"rln-faucet.backend/pkg/logger"
)

// Sender delivers messages over the Telegram Bot API. Send errors are
// logged and dropped; a failed delivery must not propagate into the
// state machine that triggered it.
type Sender struct {
	api            *tgbotapi.BotAPI
	msgs           *MessageCatalog
	operatorChatID int64
}

// NewSender creates a new sender
func NewSender(api *tgbotapi.BotAPI, msgs *MessageCatalog, operatorChatID int64) *Sender {
	return &Sender{
		api:            api,
		msgs:           msgs,
		operatorChatID: operatorChatID,
	}
}

// Notify renders and sends a reply to the chat
func (s *Sender) Notify(ctx context.Context, chatID int64, reply usecases.Reply) {
	text := s.msgs.Render(reply)
	if text == "" {
		return
	}
	s.sendText(ctx, chatID, text)
}

// SendSticker sends a sticker to the chat
func (s *Sender) SendSticker(ctx context.Context, chatID int64, stickerID string) {
	sticker := tgbotapi.NewSticker(chatID, tgbotapi.FileID(stickerID))
	if _, err := s.api.Send(sticker); err != nil {
		logger.Warn(ctx, "sticker delivery failed",
			zap.Int64("chatId", chatID), zap.Error(err))
	}
}

// NotifyOperator sends free text to the operator chat, when configured
func (s *Sender) NotifyOperator(ctx context.Context, text string) {
	if s.operatorChatID == 0 {
		return
	}
	s.sendText(ctx, s.operatorChatID, text)
}

// SendText sends plain text to a chat
func (s *Sender) SendText(ctx context.Context, chatID int64, text string) {
	s.sendText(ctx, chatID, text)
}

func (s *Sender) sendText(ctx context.Context, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := s.api.Send(msg); err != nil {
		logger.Warn(ctx, "message delivery failed",
			zap.Int64("chatId", chatID), zap.Error(err))
	}
}

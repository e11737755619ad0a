package usecases

import "context"

// Notifier delivers replies to users and reports to the operator. Delivery
// failures are swallowed by implementations; a lost chat message must never
// abort a state transition that already happened.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, reply Reply)
	SendSticker(ctx context.Context, chatID int64, stickerID string)
	NotifyOperator(ctx context.Context, text string)
}

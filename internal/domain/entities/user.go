package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents a chat user of the faucet. Created on first interaction,
// never mutated or deleted afterwards.
type User struct {
	ID         uuid.UUID `json:"id"`
	TelegramID int64     `json:"telegramId"`
	CreatedAt  time.Time `json:"createdAt"`
}

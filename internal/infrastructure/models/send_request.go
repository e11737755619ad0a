package models

import (
	"time"

	"github.com/google/uuid"
)

type SendRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind       string    `gorm:"type:varchar(10);not null;index"`
	Descriptor string    `gorm:"type:varchar(512);index"`
	TxID       string    `gorm:"column:tx_id;type:varchar(256)"`
	Status     string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Purchase struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Invoice   string    `gorm:"type:varchar(512);uniqueIndex;not null"`
	ChatID    int64     `gorm:"not null;index"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

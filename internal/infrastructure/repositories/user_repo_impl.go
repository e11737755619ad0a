package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"rln-faucet.backend/internal/domain/entities"
	"rln-faucet.backend/internal/infrastructure/models"
	"rln-faucet.backend/pkg/utils"
)

// UserRepositoryImpl implements UserRepository
type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) GetOrCreate(ctx context.Context, telegramID int64) (*entities.User, error) {
	var m models.User
	err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&m).Error
	if err == nil {
		return r.toEntity(&m), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m = models.User{
		ID:         utils.GenerateUUIDv7(),
		TelegramID: telegramID,
		CreatedAt:  time.Now(),
	}
	if createErr := r.db.WithContext(ctx).Create(&m).Error; createErr != nil {
		// A concurrent first contact may have won the unique index race;
		// fall back to the row that made it in.
		if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&m).Error; err != nil {
			return nil, createErr
		}
	}
	return r.toEntity(&m), nil
}

func (r *UserRepositoryImpl) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:         m.ID,
		TelegramID: m.TelegramID,
		CreatedAt:  m.CreatedAt,
	}
}

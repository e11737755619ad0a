package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rln-faucet.backend/internal/domain/entities"
	"rln-faucet.backend/internal/infrastructure/models"
	"rln-faucet.backend/pkg/utils"
)

// PurchaseRepositoryImpl implements PurchaseRepository
type PurchaseRepositoryImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepositoryImpl {
	return &PurchaseRepositoryImpl{db: db}
}

func (r *PurchaseRepositoryImpl) Create(ctx context.Context, invoice string, chatID int64) (*entities.Purchase, error) {
	now := time.Now()
	m := &models.Purchase{
		ID:        utils.GenerateUUIDv7(),
		Invoice:   invoice,
		ChatID:    chatID,
		Status:    string(entities.PurchaseStatusPending),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

func (r *PurchaseRepositoryImpl) FindPending(ctx context.Context, chatID int64) (*entities.Purchase, error) {
	var m models.Purchase
	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND status = ?", chatID, string(entities.PurchaseStatusPending)).
		Order("created_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *PurchaseRepositoryImpl) AllPending(ctx context.Context) ([]*entities.Purchase, error) {
	var ms []models.Purchase
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.PurchaseStatusPending)).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var purchases []*entities.Purchase
	for _, m := range ms {
		model := m
		purchases = append(purchases, r.toEntity(&model))
	}
	return purchases, nil
}

func (r *PurchaseRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PurchaseStatus) error {
	return r.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		}).Error
}

func (r *PurchaseRepositoryImpl) toEntity(m *models.Purchase) *entities.Purchase {
	return &entities.Purchase{
		ID:        m.ID,
		Invoice:   m.Invoice,
		ChatID:    m.ChatID,
		Status:    entities.PurchaseStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

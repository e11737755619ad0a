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

// SendRequestRepositoryImpl implements SendRequestRepository
type SendRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewSendRequestRepository(db *gorm.DB) *SendRequestRepositoryImpl {
	return &SendRequestRepositoryImpl{db: db}
}

func (r *SendRequestRepositoryImpl) Create(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID) (*entities.SendRequest, error) {
	now := time.Now()
	m := &models.SendRequest{
		ID:        utils.GenerateUUIDv7(),
		UserID:    userID,
		Kind:      string(kind),
		Status:    string(entities.SendRequestStatusPending),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

func (r *SendRequestRepositoryImpl) LatestOpen(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID) (*entities.SendRequest, error) {
	var m models.SendRequest
	err := r.db.WithContext(ctx).
		Where("kind = ? AND user_id = ? AND status IN ?", string(kind), userID,
			[]string{string(entities.SendRequestStatusPending), string(entities.SendRequestStatusAlreadyUsed)}).
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

func (r *SendRequestRepositoryImpl) CountRecentSuccesses(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID, since time.Time) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.SendRequest{}).
		Where("kind = ? AND user_id = ? AND status = ? AND created_at > ?",
			string(kind), userID, string(entities.SendRequestStatusSuccess), since).
		Count(&total).Error
	return int(total), err
}

func (r *SendRequestRepositoryImpl) OldestRecentSuccess(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID, since time.Time) (*entities.SendRequest, error) {
	var m models.SendRequest
	err := r.db.WithContext(ctx).
		Where("kind = ? AND user_id = ? AND status = ? AND created_at > ?",
			string(kind), userID, string(entities.SendRequestStatusSuccess), since).
		Order("created_at ASC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *SendRequestRepositoryImpl) IsDescriptorConsumed(ctx context.Context, descriptor string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.SendRequest{}).
		Where("kind = ? AND descriptor = ? AND status IN ?",
			string(entities.SendRequestKindAsset), descriptor,
			[]string{string(entities.SendRequestStatusSuccess), string(entities.SendRequestStatusAlreadyUsed)}).
		Count(&total).Error
	return total > 0, err
}

func (r *SendRequestRepositoryImpl) SetDescriptor(ctx context.Context, id uuid.UUID, descriptor string) error {
	return r.db.WithContext(ctx).Model(&models.SendRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"descriptor": descriptor,
			"updated_at": time.Now(),
		}).Error
}

func (r *SendRequestRepositoryImpl) MarkSuccess(ctx context.Context, id uuid.UUID, txid string) error {
	return r.db.WithContext(ctx).Model(&models.SendRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(entities.SendRequestStatusSuccess),
			"tx_id":      txid,
			"updated_at": time.Now(),
		}).Error
}

func (r *SendRequestRepositoryImpl) MarkDescriptorUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.SendRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(entities.SendRequestStatusAlreadyUsed),
			"updated_at": time.Now(),
		}).Error
}

func (r *SendRequestRepositoryImpl) toEntity(m *models.SendRequest) *entities.SendRequest {
	return &entities.SendRequest{
		ID:         m.ID,
		UserID:     m.UserID,
		Kind:       entities.SendRequestKind(m.Kind),
		Descriptor: m.Descriptor,
		TxID:       m.TxID,
		Status:     entities.SendRequestStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rln-faucet.backend/internal/domain/entities"
	"rln-faucet.backend/internal/infrastructure/node"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetOrCreate(ctx context.Context, telegramID int64) (*entities.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockSendRequestRepo struct{ mock.Mock }

func (m *mockSendRequestRepo) Create(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID) (*entities.SendRequest, error) {
	args := m.Called(ctx, kind, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SendRequest), args.Error(1)
}

func (m *mockSendRequestRepo) LatestOpen(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID) (*entities.SendRequest, error) {
	args := m.Called(ctx, kind, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SendRequest), args.Error(1)
}

func (m *mockSendRequestRepo) CountRecentSuccesses(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID, since time.Time) (int, error) {
	args := m.Called(ctx, kind, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *mockSendRequestRepo) OldestRecentSuccess(ctx context.Context, kind entities.SendRequestKind, userID uuid.UUID, since time.Time) (*entities.SendRequest, error) {
	args := m.Called(ctx, kind, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SendRequest), args.Error(1)
}

func (m *mockSendRequestRepo) IsDescriptorConsumed(ctx context.Context, descriptor string) (bool, error) {
	args := m.Called(ctx, descriptor)
	return args.Bool(0), args.Error(1)
}

func (m *mockSendRequestRepo) SetDescriptor(ctx context.Context, id uuid.UUID, descriptor string) error {
	return m.Called(ctx, id, descriptor).Error(0)
}

func (m *mockSendRequestRepo) MarkSuccess(ctx context.Context, id uuid.UUID, txid string) error {
	return m.Called(ctx, id, txid).Error(0)
}

func (m *mockSendRequestRepo) MarkDescriptorUsed(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockPurchaseRepo struct{ mock.Mock }

func (m *mockPurchaseRepo) Create(ctx context.Context, invoice string, chatID int64) (*entities.Purchase, error) {
	args := m.Called(ctx, invoice, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Purchase), args.Error(1)
}

func (m *mockPurchaseRepo) FindPending(ctx context.Context, chatID int64) (*entities.Purchase, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Purchase), args.Error(1)
}

func (m *mockPurchaseRepo) AllPending(ctx context.Context) ([]*entities.Purchase, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Purchase), args.Error(1)
}

func (m *mockPurchaseRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PurchaseStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockNodeClient struct{ mock.Mock }

func (m *mockNodeClient) SendAsset(ctx context.Context, recipientID string, transportEndpoints []string) (string, error) {
	args := m.Called(ctx, recipientID, transportEndpoints)
	return args.String(0), args.Error(1)
}

func (m *mockNodeClient) SendBtc(ctx context.Context, address string) (string, error) {
	args := m.Called(ctx, address)
	return args.String(0), args.Error(1)
}

func (m *mockNodeClient) Invoice(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockNodeClient) InvoiceStatus(ctx context.Context, invoice string) (node.InvoiceStatus, error) {
	args := m.Called(ctx, invoice)
	return args.Get(0).(node.InvoiceStatus), args.Error(1)
}

func (m *mockNodeClient) RefreshTransfers(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, chatID int64, reply Reply) {
	m.Called(ctx, chatID, reply)
}

func (m *mockNotifier) SendSticker(ctx context.Context, chatID int64, stickerID string) {
	m.Called(ctx, chatID, stickerID)
}

func (m *mockNotifier) NotifyOperator(ctx context.Context, text string) {
	m.Called(ctx, text)
}

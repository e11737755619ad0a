package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rln-faucet.backend/internal/domain/entities"
	domainerrors "rln-faucet.backend/internal/domain/errors"
	"rln-faucet.backend/internal/infrastructure/node"
	"rln-faucet.backend/pkg/utils"
)

func newPurchaseFixture() (*mockPurchaseRepo, *mockNodeClient, *mockNotifier, *PurchaseUsecase) {
	purchases := new(mockPurchaseRepo)
	nodeClient := new(mockNodeClient)
	notifier := new(mockNotifier)
	usecase := NewPurchaseUsecase(purchases, nodeClient, notifier, []string{"sticker-1"})
	return purchases, nodeClient, notifier, usecase
}

func pendingPurchase(chatID int64, invoice string) *entities.Purchase {
	return &entities.Purchase{
		ID:      utils.GenerateUUIDv7(),
		Invoice: invoice,
		ChatID:  chatID,
		Status:  entities.PurchaseStatusPending,
	}
}

func TestRequestInvoiceIssuesNew(t *testing.T) {
	purchases, nodeClient, _, usecase := newPurchaseFixture()
	purchases.On("FindPending", mock.Anything, testChatID).Return(nil, nil)
	nodeClient.On("Invoice", mock.Anything).Return("lnbcrt1new", nil)
	purchases.On("Create", mock.Anything, "lnbcrt1new", testChatID).
		Return(pendingPurchase(testChatID, "lnbcrt1new"), nil)

	reply, err := usecase.RequestInvoice(context.Background(), testChatID)
	require.NoError(t, err)
	require.Equal(t, ReplyInvoiceIssued, reply.Kind)
	require.Equal(t, "lnbcrt1new", reply.Invoice)
}

func TestRequestInvoiceReturnsPending(t *testing.T) {
	purchases, nodeClient, _, usecase := newPurchaseFixture()
	purchases.On("FindPending", mock.Anything, testChatID).
		Return(pendingPurchase(testChatID, "lnbcrt1old"), nil)

	reply, err := usecase.RequestInvoice(context.Background(), testChatID)
	require.NoError(t, err)
	require.Equal(t, ReplyInvoicePending, reply.Kind)
	require.Equal(t, "lnbcrt1old", reply.Invoice)
	nodeClient.AssertNotCalled(t, "Invoice", mock.Anything)
	purchases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestInvoiceNodeDown(t *testing.T) {
	purchases, nodeClient, _, usecase := newPurchaseFixture()
	purchases.On("FindPending", mock.Anything, testChatID).Return(nil, nil)
	nodeClient.On("Invoice", mock.Anything).Return("", domainerrors.ErrNodeUnavailable)

	_, err := usecase.RequestInvoice(context.Background(), testChatID)
	require.ErrorIs(t, err, domainerrors.ErrNodeUnavailable)
}

func TestReconcileDeliversPaidInvoice(t *testing.T) {
	purchases, nodeClient, notifier, usecase := newPurchaseFixture()
	purchase := pendingPurchase(testChatID, "lnbcrt1paid")
	purchases.On("AllPending", mock.Anything).Return([]*entities.Purchase{purchase}, nil)
	nodeClient.On("InvoiceStatus", mock.Anything, "lnbcrt1paid").
		Return(node.InvoiceStatusSucceeded, nil)
	purchases.On("UpdateStatus", mock.Anything, purchase.ID, entities.PurchaseStatusDelivered).Return(nil)
	notifier.On("Notify", mock.Anything, testChatID, Reply{Kind: ReplyInvoicePaid}).Return()
	notifier.On("SendSticker", mock.Anything, testChatID, "sticker-1").Return()

	require.NoError(t, usecase.ReconcilePending(context.Background()))
	purchases.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReconcileCommitsBeforeNotifying(t *testing.T) {
	purchases, nodeClient, notifier, usecase := newPurchaseFixture()
	purchase := pendingPurchase(testChatID, "lnbcrt1paid")
	purchases.On("AllPending", mock.Anything).Return([]*entities.Purchase{purchase}, nil)
	nodeClient.On("InvoiceStatus", mock.Anything, "lnbcrt1paid").
		Return(node.InvoiceStatusSucceeded, nil)

	committed := false
	purchases.On("UpdateStatus", mock.Anything, purchase.ID, entities.PurchaseStatusDelivered).
		Run(func(args mock.Arguments) { committed = true }).Return(nil)
	notifier.On("Notify", mock.Anything, testChatID, Reply{Kind: ReplyInvoicePaid}).
		Run(func(args mock.Arguments) { require.True(t, committed) }).Return()
	notifier.On("SendSticker", mock.Anything, testChatID, "sticker-1").Return()

	require.NoError(t, usecase.ReconcilePending(context.Background()))
}

func TestReconcileSkipsStillPending(t *testing.T) {
	purchases, nodeClient, notifier, usecase := newPurchaseFixture()
	purchase := pendingPurchase(testChatID, "lnbcrt1wait")
	purchases.On("AllPending", mock.Anything).Return([]*entities.Purchase{purchase}, nil)
	nodeClient.On("InvoiceStatus", mock.Anything, "lnbcrt1wait").
		Return(node.InvoiceStatusPending, nil)

	require.NoError(t, usecase.ReconcilePending(context.Background()))
	purchases.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileExpiresInvoice(t *testing.T) {
	purchases, nodeClient, notifier, usecase := newPurchaseFixture()
	purchase := pendingPurchase(testChatID, "lnbcrt1late")
	purchases.On("AllPending", mock.Anything).Return([]*entities.Purchase{purchase}, nil)
	nodeClient.On("InvoiceStatus", mock.Anything, "lnbcrt1late").
		Return(node.InvoiceStatusExpired, nil)
	purchases.On("UpdateStatus", mock.Anything, purchase.ID, entities.PurchaseStatusExpired).Return(nil)
	notifier.On("Notify", mock.Anything, testChatID, Reply{Kind: ReplyInvoiceExpired}).Return()

	require.NoError(t, usecase.ReconcilePending(context.Background()))
	purchases.AssertExpectations(t)
}

func TestReconcileUnexpectedStatusFailsAndAlerts(t *testing.T) {
	purchases, nodeClient, notifier, usecase := newPurchaseFixture()
	purchase := pendingPurchase(testChatID, "lnbcrt1odd")
	purchases.On("AllPending", mock.Anything).Return([]*entities.Purchase{purchase}, nil)
	nodeClient.On("InvoiceStatus", mock.Anything, "lnbcrt1odd").
		Return(node.InvoiceStatusFailed, nil)
	purchases.On("UpdateStatus", mock.Anything, purchase.ID, entities.PurchaseStatusFailed).Return(nil)
	notifier.On("Notify", mock.Anything, testChatID, Reply{Kind: ReplyInvoiceFailed}).Return()
	notifier.On("NotifyOperator", mock.Anything, mock.AnythingOfType("string")).Return()

	require.NoError(t, usecase.ReconcilePending(context.Background()))
	notifier.AssertCalled(t, "NotifyOperator", mock.Anything, mock.AnythingOfType("string"))
}

func TestReconcileNodeErrorSkipsOnlyThatPurchase(t *testing.T) {
	purchases, nodeClient, notifier, usecase := newPurchaseFixture()
	broken := pendingPurchase(1, "lnbcrt1broken")
	healthy := pendingPurchase(2, "lnbcrt1ok")
	purchases.On("AllPending", mock.Anything).Return([]*entities.Purchase{broken, healthy}, nil)
	nodeClient.On("InvoiceStatus", mock.Anything, "lnbcrt1broken").
		Return(node.InvoiceStatus(""), domainerrors.ErrNodeUnavailable)
	nodeClient.On("InvoiceStatus", mock.Anything, "lnbcrt1ok").
		Return(node.InvoiceStatusSucceeded, nil)
	purchases.On("UpdateStatus", mock.Anything, healthy.ID, entities.PurchaseStatusDelivered).Return(nil)
	notifier.On("Notify", mock.Anything, int64(2), Reply{Kind: ReplyInvoicePaid}).Return()
	notifier.On("SendSticker", mock.Anything, int64(2), "sticker-1").Return()

	require.NoError(t, usecase.ReconcilePending(context.Background()))
	purchases.AssertNotCalled(t, "UpdateStatus", mock.Anything, broken.ID, mock.Anything)
}

func TestReconcileStatusWriteFailureSuppressesNotification(t *testing.T) {
	purchases, nodeClient, notifier, usecase := newPurchaseFixture()
	purchase := pendingPurchase(testChatID, "lnbcrt1paid")
	purchases.On("AllPending", mock.Anything).Return([]*entities.Purchase{purchase}, nil)
	nodeClient.On("InvoiceStatus", mock.Anything, "lnbcrt1paid").
		Return(node.InvoiceStatusSucceeded, nil)
	purchases.On("UpdateStatus", mock.Anything, purchase.ID, entities.PurchaseStatusDelivered).
		Return(domainerrors.ErrNotFound)

	require.NoError(t, usecase.ReconcilePending(context.Background()))
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/pod"
	"lastmile/internal/core/domain/model/stopevent"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	photoDataURI     = "data:image/jpeg;base64,/9j/4AAQ"
	signatureDataURI = "data:image/png;base64,iVBORw0KGgo="
)

func newCompleteCmd(t *testing.T, orderID, driverID kernel.UUID, photo, signature string) commands.CompleteDeliveryCommand {
	t.Helper()
	cmd, err := commands.NewCompleteDeliveryCommand(orderID, driverID, photo, signature, "left at door", "Dana")
	require.NoError(t, err)
	return cmd
}

func TestCompleteDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	cmd := newCompleteCmd(t, orderID, driverID, photoDataURI, signatureDataURI)

	blob := new(MockBlobStorage)
	blob.On("Upload", mock.Anything, mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "pod-photos/"+orderID.String()+"-")
	}), "image/jpeg", photoDataURI).Return("https://cdn.example.com/p.jpg", nil).Once()
	blob.On("Upload", mock.Anything, mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "pod-signatures/"+orderID.String()+"-")
	}), "image/png", signatureDataURI).Return("https://cdn.example.com/s.png", nil).Once()

	podRepo := new(MockPodRepository)
	podUoW := new(MockUoW)
	mock.InOrder(
		podUoW.On("Begin", ctx).Return(nil).Once(),
		podUoW.On("PodRepository").Return(podRepo).Once(),
		podRepo.On("Add", mock.Anything, mock.MatchedBy(func(p *pod.POD) bool {
			return p.OrderID().IsEqual(orderID) &&
				p.DriverID().IsEqual(driverID) &&
				p.PhotoURL() == "https://cdn.example.com/p.jpg" &&
				p.SignatureURL() == "https://cdn.example.com/s.png" &&
				p.Notes() == "Recipient: Dana\nleft at door"
		})).Return(nil).Once(),
		podUoW.On("Commit", ctx).Return(nil).Once(),
		podUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	orderRepo := new(MockOrderRepository)
	statusUoW := new(MockUoW)
	mock.InOrder(
		statusUoW.On("Begin", ctx).Return(nil).Once(),
		statusUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateStatus", mock.Anything, orderID, order.Delivered, mock.AnythingOfType("time.Time")).
			Return(nil).Once(),
		statusUoW.On("Commit", ctx).Return(nil).Once(),
		statusUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	eventRepo := new(MockStopEventRepository)
	eventUoW := new(MockUoW)
	mock.InOrder(
		eventUoW.On("Begin", ctx).Return(nil).Once(),
		eventUoW.On("StopEventRepository").Return(eventRepo).Once(),
		eventRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *stopevent.StopEvent) bool {
			return e.OrderID().IsEqual(orderID) && e.Type() == stopevent.Delivered && e.Notes() == "left at door"
		})).Return(nil).Once(),
		eventUoW.On("Commit", ctx).Return(nil).Once(),
		eventUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(podUoW).Once()
	factory.On("Create").Return(statusUoW).Once()
	factory.On("Create").Return(eventUoW).Once()

	notified := make(chan struct{})
	notifier := new(MockNotificationSender)
	notifier.On("SendPODEmail", mock.Anything, orderID, mock.AnythingOfType("kernel.UUID")).
		Run(func(_ mock.Arguments) { close(notified) }).Return(nil).Once()

	h := commands.NewCompleteDeliveryCommandHandler(
		factory, blob, notifier, commands.CompletionPolicy{EmailEnabled: true}, testLogger(),
	)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("POD email was not dispatched")
	}

	blob.AssertExpectations(t)
	podRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	eventRepo.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_ReusesStoredSignatureURL(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	storedURL := "https://cdn.example.com/pod-signatures/earlier.png"
	cmd := newCompleteCmd(t, orderID, driverID, "", storedURL)

	blob := new(MockBlobStorage)

	podRepo := new(MockPodRepository)
	podUoW := new(MockUoW)
	podUoW.On("Begin", ctx).Return(nil).Once()
	podUoW.On("PodRepository").Return(podRepo).Once()
	podRepo.On("Add", mock.Anything, mock.MatchedBy(func(p *pod.POD) bool {
		return p.PhotoURL() == "" && p.SignatureURL() == storedURL
	})).Return(nil).Once()
	podUoW.On("Commit", ctx).Return(nil).Once()
	podUoW.On("Rollback", ctx).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	statusUoW := new(MockUoW)
	statusUoW.On("Begin", ctx).Return(nil).Once()
	statusUoW.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("UpdateStatus", mock.Anything, orderID, order.Delivered, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	statusUoW.On("Commit", ctx).Return(nil).Once()
	statusUoW.On("Rollback", ctx).Return(nil).Once()

	eventRepo := new(MockStopEventRepository)
	eventUoW := new(MockUoW)
	eventUoW.On("Begin", ctx).Return(nil).Once()
	eventUoW.On("StopEventRepository").Return(eventRepo).Once()
	eventRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	eventUoW.On("Commit", ctx).Return(nil).Once()
	eventUoW.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(podUoW).Once()
	factory.On("Create").Return(statusUoW).Once()
	factory.On("Create").Return(eventUoW).Once()

	notifier := new(MockNotificationSender)

	h := commands.NewCompleteDeliveryCommandHandler(factory, blob, notifier, commands.CompletionPolicy{}, testLogger())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	blob.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "SendPODEmail", mock.Anything, mock.Anything, mock.Anything)
	podRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_UploadErrorAbortsBeforePersistence(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd := newCompleteCmd(t, orderID, kernel.NewUUID(), photoDataURI, "")

	blob := new(MockBlobStorage)
	blob.On("Upload", mock.Anything, mock.Anything, "image/jpeg", photoDataURI).
		Return("", errors.New("bucket unreachable")).Once()

	factory := new(MockDeliveryUoWFactory)
	notifier := new(MockNotificationSender)

	h := commands.NewCompleteDeliveryCommandHandler(factory, blob, notifier, commands.CompletionPolicy{}, testLogger())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)

	factory.AssertNotCalled(t, "Create")
}

func TestCompleteDeliveryCommandHandler_Handle_StatusWriteFailureLeavesPOD(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd := newCompleteCmd(t, orderID, kernel.NewUUID(), "", "")

	podRepo := new(MockPodRepository)
	podUoW := new(MockUoW)
	mock.InOrder(
		podUoW.On("Begin", ctx).Return(nil).Once(),
		podUoW.On("PodRepository").Return(podRepo).Once(),
		podRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		podUoW.On("Commit", ctx).Return(nil).Once(),
		podUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	orderRepo := new(MockOrderRepository)
	statusUoW := new(MockUoW)
	mock.InOrder(
		statusUoW.On("Begin", ctx).Return(nil).Once(),
		statusUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateStatus", mock.Anything, orderID, order.Delivered, mock.AnythingOfType("time.Time")).
			Return(errors.New("connection reset")).Once(),
		statusUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(podUoW).Once()
	factory.On("Create").Return(statusUoW).Once()

	notifier := new(MockNotificationSender)

	h := commands.NewCompleteDeliveryCommandHandler(
		factory, blobNever(t), notifier, commands.CompletionPolicy{EmailEnabled: true}, testLogger(),
	)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)

	// The POD commit already happened and is not undone.
	podRepo.AssertExpectations(t)
	podUoW.AssertExpectations(t)
	notifier.AssertNotCalled(t, "SendPODEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteDeliveryCommandHandler_Handle_AtomicCompletionUsesOneTransaction(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd := newCompleteCmd(t, orderID, kernel.NewUUID(), "", "")

	podRepo := new(MockPodRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PodRepository").Return(podRepo).Once(),
		podRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateStatus", mock.Anything, orderID, order.Delivered, mock.AnythingOfType("time.Time")).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	eventRepo := new(MockStopEventRepository)
	eventUoW := new(MockUoW)
	eventUoW.On("Begin", ctx).Return(nil).Once()
	eventUoW.On("StopEventRepository").Return(eventRepo).Once()
	eventRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	eventUoW.On("Commit", ctx).Return(nil).Once()
	eventUoW.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()
	factory.On("Create").Return(eventUoW).Once()

	h := commands.NewCompleteDeliveryCommandHandler(
		factory, blobNever(t), new(MockNotificationSender),
		commands.CompletionPolicy{AtomicCompletion: true}, testLogger(),
	)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_StrictGuardRejectsTerminalOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd := newCompleteCmd(t, orderID, kernel.NewUUID(), "", "")

	podRepo := new(MockPodRepository)
	podUoW := new(MockUoW)
	podUoW.On("Begin", ctx).Return(nil).Once()
	podUoW.On("PodRepository").Return(podRepo).Once()
	podRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	podUoW.On("Commit", ctx).Return(nil).Once()
	podUoW.On("Rollback", ctx).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	statusUoW := new(MockUoW)
	statusUoW.On("Begin", ctx).Return(nil).Once()
	statusUoW.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("UpdateStatusIfNotTerminal", mock.Anything, orderID, order.Delivered, mock.AnythingOfType("time.Time")).
		Return(order.ErrOrderIsTerminal).Once()
	statusUoW.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(podUoW).Once()
	factory.On("Create").Return(statusUoW).Once()

	h := commands.NewCompleteDeliveryCommandHandler(
		factory, blobNever(t), new(MockNotificationSender),
		commands.CompletionPolicy{StrictStatusGuard: true}, testLogger(),
	)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrOrderIsTerminal)

	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteDeliveryCommandHandler_Handle_AuditFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd := newCompleteCmd(t, orderID, kernel.NewUUID(), "", "")

	podRepo := new(MockPodRepository)
	podUoW := new(MockUoW)
	podUoW.On("Begin", ctx).Return(nil).Once()
	podUoW.On("PodRepository").Return(podRepo).Once()
	podRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	podUoW.On("Commit", ctx).Return(nil).Once()
	podUoW.On("Rollback", ctx).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	statusUoW := new(MockUoW)
	statusUoW.On("Begin", ctx).Return(nil).Once()
	statusUoW.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("UpdateStatus", mock.Anything, orderID, order.Delivered, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	statusUoW.On("Commit", ctx).Return(nil).Once()
	statusUoW.On("Rollback", ctx).Return(nil).Once()

	eventUoW := new(MockUoW)
	eventUoW.On("Begin", ctx).Return(errors.New("pool exhausted")).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(podUoW).Once()
	factory.On("Create").Return(statusUoW).Once()
	factory.On("Create").Return(eventUoW).Once()

	h := commands.NewCompleteDeliveryCommandHandler(
		factory, blobNever(t), new(MockNotificationSender), commands.CompletionPolicy{}, testLogger(),
	)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
}

func TestCompleteDeliveryCommandHandler_Handle_NoArtifactsStillRecordsPOD(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	cmd := newCompleteCmd(t, orderID, driverID, "", "")

	podRepo := new(MockPodRepository)
	podUoW := new(MockUoW)
	podUoW.On("Begin", ctx).Return(nil).Once()
	podUoW.On("PodRepository").Return(podRepo).Once()
	podRepo.On("Add", mock.Anything, mock.MatchedBy(func(p *pod.POD) bool {
		return p.OrderID().IsEqual(orderID) && p.PhotoURL() == "" && p.SignatureURL() == ""
	})).Return(nil).Once()
	podUoW.On("Commit", ctx).Return(nil).Once()
	podUoW.On("Rollback", ctx).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	statusUoW := new(MockUoW)
	statusUoW.On("Begin", ctx).Return(nil).Once()
	statusUoW.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("UpdateStatus", mock.Anything, orderID, order.Delivered, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	statusUoW.On("Commit", ctx).Return(nil).Once()
	statusUoW.On("Rollback", ctx).Return(nil).Once()

	eventRepo := new(MockStopEventRepository)
	eventUoW := new(MockUoW)
	eventUoW.On("Begin", ctx).Return(nil).Once()
	eventUoW.On("StopEventRepository").Return(eventRepo).Once()
	eventRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	eventUoW.On("Commit", ctx).Return(nil).Once()
	eventUoW.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(podUoW).Once()
	factory.On("Create").Return(statusUoW).Once()
	factory.On("Create").Return(eventUoW).Once()

	h := commands.NewCompleteDeliveryCommandHandler(
		factory, blobNever(t), new(MockNotificationSender), commands.CompletionPolicy{}, testLogger(),
	)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	podRepo.AssertNumberOfCalls(t, "Add", 1)
	orderRepo.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CompleteDeliveryCommand{} // not constructed properly

	h := commands.NewCompleteDeliveryCommandHandler(
		new(MockDeliveryUoWFactory), blobNever(t), new(MockNotificationSender),
		commands.CompletionPolicy{}, testLogger(),
	)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

// blobNever returns a blob mock with no expectations: any Upload call
// fails the test immediately.
func blobNever(t *testing.T) *MockBlobStorage {
	t.Helper()
	return new(MockBlobStorage)
}

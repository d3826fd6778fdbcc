package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/pod"
	"lastmile/internal/core/domain/model/stopevent"
	"lastmile/internal/core/ports"
)

// notifyTimeout bounds the detached notification send so an unresponsive
// collaborator cannot leak goroutines.
const notifyTimeout = 10 * time.Second

// CompletionPolicy selects between the literal pipeline behavior and its
// documented hardening variants. All fields default to the literal behavior.
type CompletionPolicy struct {
	// EmailEnabled fires the POD notification after a successful
	// submission (ENABLE_POD_EMAIL).
	EmailEnabled bool

	// AtomicCompletion wraps the POD insert and the status update in one
	// transaction instead of two independent atomic operations
	// (POD_ATOMIC_COMPLETION). Changes the observable partial-failure
	// behavior: with it enabled a failed status write also removes the POD.
	AtomicCompletion bool

	// StrictStatusGuard refuses to overwrite a terminal order status
	// (STRICT_STATUS_GUARD) instead of performing the literal unconditional
	// write.
	StrictStatusGuard bool
}

// CompleteDeliveryCommandHandler is the delivery completion pipeline: it
// sequences artifact upload, POD insert, status write and audit append for
// one submission, then fires the best-effort notification.
//
// Step ordering is strict: a later step never runs before the earlier one
// succeeded. Upload and persistence failures abort the submission; already
// uploaded blobs and an already-inserted POD are not rolled back across
// step boundaries (accepted orphan-artifact and POD-without-status risk).
// The audit append and the notification are best-effort and never change
// the submission's outcome.
type CompleteDeliveryCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	blobStorage ports.BlobStorage
	notifier    ports.NotificationSender
	policy      CompletionPolicy
	logger      *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates the completion pipeline handler.
func NewCompleteDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	blobStorage ports.BlobStorage,
	notifier ports.NotificationSender,
	policy CompletionPolicy,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory:  uowFactory,
		blobStorage: blobStorage,
		notifier:    notifier,
		policy:      policy,
		logger:      logger.With("component", "complete_delivery"),
	}
}

// Handle processes one delivery completion submission.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	photoURL, err := h.uploadPhoto(ctx, cmd, now)
	if err != nil {
		return err
	}

	signatureURL, err := h.uploadSignature(ctx, cmd, now)
	if err != nil {
		return err
	}

	newPOD, err := pod.NewPOD(
		kernel.NewUUID(),
		cmd.OrderID(),
		cmd.DriverID(),
		photoURL,
		signatureURL,
		cmd.Notes(),
		cmd.RecipientName(),
		now,
	)
	if err != nil {
		return err
	}

	if err = h.persistPOD(ctx, newPOD, now); err != nil {
		return err
	}

	if err = h.persistStatus(ctx, cmd.OrderID(), now); err != nil {
		// The POD row from the previous step stays behind: the two writes
		// are independent atomic operations, not one transaction.
		return err
	}

	h.appendStopEvent(ctx, cmd.OrderID(), cmd.DriverID(), stopevent.Delivered, cmd.Notes())

	if h.policy.EmailEnabled {
		go h.notifyPOD(newPOD.OrderID(), newPOD.ID())
	}

	return nil
}

func (h *CompleteDeliveryCommandHandler) uploadPhoto(
	ctx context.Context, cmd CompleteDeliveryCommand, now time.Time,
) (string, error) {
	if cmd.PhotoData() == "" {
		return "", nil
	}

	objectName := fmt.Sprintf("pod-photos/%s-%d.jpg", cmd.OrderID(), now.UnixMilli())
	return h.blobStorage.Upload(ctx, objectName, "image/jpeg", cmd.PhotoData())
}

func (h *CompleteDeliveryCommandHandler) uploadSignature(
	ctx context.Context, cmd CompleteDeliveryCommand, now time.Time,
) (string, error) {
	sig := cmd.SignatureData()
	if sig == "" {
		return "", nil
	}

	// A non-data-URI payload is a previously stored signature URL echoed
	// back unchanged by the client; reuse it without re-uploading.
	if !strings.HasPrefix(sig, "data:") {
		return sig, nil
	}

	objectName := fmt.Sprintf("pod-signatures/%s-%d.png", cmd.OrderID(), now.UnixMilli())
	return h.blobStorage.Upload(ctx, objectName, "image/png", sig)
}

func (h *CompleteDeliveryCommandHandler) persistPOD(ctx context.Context, newPOD *pod.POD, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PodRepository().Add(ctx, newPOD); err != nil {
		return err
	}

	if h.policy.AtomicCompletion {
		if err := h.writeStatus(ctx, uow.OrderRepository(), newPOD.OrderID(), now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *CompleteDeliveryCommandHandler) persistStatus(ctx context.Context, orderID kernel.UUID, now time.Time) error {
	if h.policy.AtomicCompletion {
		// Already written inside the POD transaction.
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := h.writeStatus(ctx, uow.OrderRepository(), orderID, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CompleteDeliveryCommandHandler) writeStatus(
	ctx context.Context, repo ports.OrderRepository, orderID kernel.UUID, now time.Time,
) error {
	if h.policy.StrictStatusGuard {
		return repo.UpdateStatusIfNotTerminal(ctx, orderID, order.Delivered, now)
	}
	return repo.UpdateStatus(ctx, orderID, order.Delivered, now)
}

// appendStopEvent appends the audit record for a completed transition.
// The audit trail is best-effort relative to the authoritative status
// write: a failure here is logged and swallowed.
func (h *CompleteDeliveryCommandHandler) appendStopEvent(
	ctx context.Context,
	orderID, driverID kernel.UUID,
	eventType stopevent.EventType,
	notes string,
) {
	event, err := stopevent.NewStopEvent(kernel.NewUUID(), orderID, driverID, eventType, notes)
	if err != nil {
		h.logger.ErrorContext(ctx, "Stop event construction failed",
			"order_id", orderID.String(), "event_type", eventType.String(), "error", err)
		return
	}

	if err = appendEvent(ctx, h.uowFactory, event); err != nil {
		h.logger.ErrorContext(ctx, "Stop event append failed",
			"order_id", orderID.String(), "event_type", eventType.String(), "error", err)
	}
}

// notifyPOD dispatches the POD email on a detached context. The submission
// that triggered it has already returned; the outcome is only logged.
func (h *CompleteDeliveryCommandHandler) notifyPOD(orderID, podID kernel.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := h.notifier.SendPODEmail(ctx, orderID, podID); err != nil {
		h.logger.ErrorContext(ctx, "POD email send failed",
			"order_id", orderID.String(), "pod_id", podID.String(), "error", err)
	}
}

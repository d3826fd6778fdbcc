package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
)

// NotificationSender is the notification collaborator: given an order and
// POD reference it dispatches an email to the customer. The pipeline fires
// it without awaiting the result; failures are logged and otherwise
// invisible to the submitting driver.
type NotificationSender interface {
	SendPODEmail(ctx context.Context, orderID, podID kernel.UUID) error
}

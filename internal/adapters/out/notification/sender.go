// Package notification implements the NotificationSender port over an HTTP
// collaborator. The POD email service is a separate system reached by a
// JSON POST; this adapter only reports success or failure, it never
// retries.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lastmile/internal/core/domain/model/kernel"
)

// HTTPSender posts POD email requests to the notification service.
type HTTPSender struct {
	client   *http.Client
	endpoint string
}

// podEmailRequest is the wire format the notification service accepts.
type podEmailRequest struct {
	OrderID string `json:"orderId"`
	PodID   string `json:"podId"`
}

// NewHTTPSender creates a sender targeting the given endpoint. The client
// timeout bounds the whole exchange so a stalled notification service
// cannot pin goroutines.
func NewHTTPSender(endpoint string) *HTTPSender {
	return &HTTPSender{
		client:   &http.Client{Timeout: 5 * time.Second},
		endpoint: endpoint,
	}
}

// SendPODEmail requests one POD email. Any non-2xx response is an error;
// callers decide whether that error matters.
func (s *HTTPSender) SendPODEmail(ctx context.Context, orderID, podID kernel.UUID) error {
	payload, err := json.Marshal(podEmailRequest{
		OrderID: orderID.String(),
		PodID:   podID.String(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	return nil
}

package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"storeapi/internal/domain/service"

	"github.com/pkg/errors"
)

const localSubscription = "projects/local/subscriptions/mailer-confirm-email"

// localHTTPPublisher pushes events straight to a mailer endpoint in the push
// subscription format, for development without a Pub/Sub emulator.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewLocalHTTPPublisher creates a publisher that POSTs to endpoint.
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		now:        time.Now,
	}
}

// PublishUserRegistered delivers the confirmation event to the local mailer.
func (p *localHTTPPublisher) PublishUserRegistered(ctx context.Context, event *service.UserRegisteredEvent) error {
	msg, err := newUserRegisteredMessage(event)
	if err != nil {
		return err
	}

	envelope := pushEnvelope(msg, localSubscription, p.now())
	if err := p.push(ctx, envelope, event.RequestID); err != nil {
		return errors.Wrapf(err, "push %s for user %d", EventTypeUserRegistered, event.UserID)
	}

	p.logger.InfoContext(ctx, "[LocalPubSub] Confirmation event delivered",
		slog.String("message_id", envelope.Message.MessageID),
		slog.String("ordering_key", msg.OrderingKey),
		slog.Int64("user_id", event.UserID),
	)

	return nil
}

func (p *localHTTPPublisher) push(ctx context.Context, envelope *PubSubPushMessage, requestID string) error {
	body, err := json.Marshal(envelope)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("push endpoint returned status %d", resp.StatusCode)
	}

	return nil
}

func (p *localHTTPPublisher) Close() error {
	p.httpClient.CloseIdleConnections()

	return nil
}

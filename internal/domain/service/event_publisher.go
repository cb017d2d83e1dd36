package service

import (
	"context"
)

// UserRegisteredEvent is emitted after a successful registration so that an
// external mailer can deliver the confirmation link.
type UserRegisteredEvent struct {
	RequestID       string `json:"request_id,omitempty"` // For distributed tracing
	UserID          int64  `json:"user_id"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	ConfirmationURL string `json:"confirmation_url"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishUserRegistered publishes a registration event for async processing
	PublishUserRegistered(ctx context.Context, event *UserRegisteredEvent) error

	// Close releases any resources held by the publisher
	Close() error
}

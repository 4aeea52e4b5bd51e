package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/furnico/internal/events"
	"github.com/Skotchmaster/furnico/pkg/logging"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrNotConfigured = errors.New("not configured")
)

// notFoundOr maps gorm's not-found to ErrNotFound with a message for the client.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s not found", ErrNotFound, what)
	}
	return err
}

func publish(ctx context.Context, p events.Publisher, topic, key, eventType string, data any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, eventType, data); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "type", eventType, "error", err)
	}
}

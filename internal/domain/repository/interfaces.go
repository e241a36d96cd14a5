package repository

import (
	"context"
	"errors"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps the validated dataset of each upload for the lifetime
// of its session. Implementations must expire entries by TTL; nothing is
// persisted across sessions.
type SessionStore interface {
	Put(ctx context.Context, id string, ds *models.Dataset) error
	Get(ctx context.Context, id string) (*models.Dataset, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// AlertPublisher emits restock alerts produced by a forecast run. Publish
// failures must never fail the run.
type AlertPublisher interface {
	Publish(ctx context.Context, alerts []models.RestockAlert) error
	Close() error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordRun(subcategory, result string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordPointsProduced(n int)
}

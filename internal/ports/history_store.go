package ports

import (
	"context"

	"travel-itinerary-service/internal/domain"
)

// Port: persisted list of past trip submissions, most recent first,
// capped at a fixed number of entries.
type HistoryStore interface {
	// Push records a submission, evicting the oldest beyond the cap.
	Push(ctx context.Context, sub domain.Submission) error
	// List returns submissions most recent first.
	List(ctx context.Context) ([]domain.Submission, error)
	// Get returns one submission by id, or nil when absent.
	Get(ctx context.Context, id string) (*domain.Submission, error)
}

package ports

import (
	"context"

	"travel-itinerary-service/internal/domain"
)

// Progress frame emitted while upstream assembles a plan.
type ProgressEvent struct {
	Type     string `json:"type"` // "status" or "info"
	Message  string `json:"message"`
	Progress int    `json:"progress"`
}

// Port: the upstream travel-planning backend.
type PlannerClient interface {
	// GeneratePlan submits a trip request and waits for the full plan.
	GeneratePlan(ctx context.Context, req domain.PlanRequest) (*domain.PlanResponse, error)

	// StreamPlan submits a trip request over the streaming variant,
	// invoking onProgress per progress frame until the terminal
	// complete or error frame. Malformed frames are skipped, not
	// surfaced.
	StreamPlan(ctx context.Context, req domain.PlanRequest, onProgress func(ProgressEvent)) (*domain.PlanResponse, error)
}

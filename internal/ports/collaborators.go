package ports

import (
	"context"

	"travel-itinerary-service/internal/domain"
)

// Port: the note-saving collaborator (e.g. a Notion integration).
type NoteSaver interface {
	// Save stores the plan externally and returns the saved page URL.
	Save(ctx context.Context, plan *domain.PlanResponse) (string, error)
}

// Port: the budget-calculation collaborator.
type BudgetEstimator interface {
	Estimate(ctx context.Context, itinerary []*domain.ItineraryItem, travelStyle string) (*domain.BudgetBreakdown, error)
}

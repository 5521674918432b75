package ports

import (
	"context"
	"fmt"

	"travel-itinerary-service/internal/domain"
)

// A directions lookup between two endpoints for one travel mode.
type DirectionsRequest struct {
	Origin      domain.Waypoint
	Destination domain.Waypoint
	Mode        domain.TravelMode
}

// Transit leg details as reported by the routing provider.
type TransitDetails struct {
	LineName      string
	LineColor     string
	Vehicle       string
	DepartureStop string
	ArrivalStop   string
	NumStops      int
}

// One step of a provider route. Instruction may contain provider HTML.
type DirectionsStep struct {
	TravelMode   string
	Instruction  string
	DistanceText string
	DurationText string
	Start        domain.Coordinates
	End          domain.Coordinates
	Transit      *TransitDetails
}

// A resolved provider route with per-step detail and totals.
type DirectionsRoute struct {
	Steps        []DirectionsStep
	DistanceText string
	DurationText string
}

// StatusError reports a non-OK provider status ("ZERO_RESULTS",
// "REQUEST_DENIED", ...). Callers map it to a human-readable reason;
// it is never shown raw.
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("directions provider status %s", e.Status)
}

// Port: external routing/directions provider.
type DirectionsProvider interface {
	// Directions resolves a path for the request. A provider status
	// other than OK is returned as *StatusError.
	Directions(ctx context.Context, req DirectionsRequest) (*DirectionsRoute, error)
}

package routing

import (
	"context"

	"travel-itinerary-service/internal/ports"
)

// MockDirectionsProvider serves canned routes keyed by
// "origin|destination|mode". A missing pair returns Err (or a
// zero-result status when Err is nil).
type MockDirectionsProvider struct {
	Routes map[string]*ports.DirectionsRoute
	Err    error

	Calls int
}

func NewMockDirectionsProvider() *MockDirectionsProvider {
	return &MockDirectionsProvider{Routes: make(map[string]*ports.DirectionsRoute)}
}

func MockKey(origin, destination, mode string) string {
	return origin + "|" + destination + "|" + mode
}

func (p *MockDirectionsProvider) Directions(
	ctx context.Context,
	req ports.DirectionsRequest,
) (*ports.DirectionsRoute, error) {
	p.Calls++

	if p.Err != nil {
		return nil, p.Err
	}

	key := MockKey(req.Origin.Name, req.Destination.Name, string(req.Mode))
	if route, ok := p.Routes[key]; ok {
		return route, nil
	}

	return nil, &ports.StatusError{Status: "ZERO_RESULTS"}
}

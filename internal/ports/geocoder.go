package ports

import (
	"context"

	"travel-itinerary-service/internal/domain"
)

// Port: reverse geocoding of a coordinate to a formatted address.
type ReverseGeocoder interface {
	FormattedAddress(ctx context.Context, coord domain.Coordinates) (string, error)
}

// Port: persistent coordinate -> formatted address cache in front of
// the reverse geocoder.
type AddressCache interface {
	// Fetch cached addresses for the given coordinates.
	GetMany(ctx context.Context, coords []domain.Coordinates) (map[domain.Coordinates]string, error)
	// Store coordinate -> address mappings.
	PutMany(ctx context.Context, addresses map[domain.Coordinates]string) error
}

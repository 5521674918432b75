package services

import (
	"context"
	"fmt"
	"log"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/platform/obs"
	"travel-itinerary-service/internal/ports"
)

// EnrichAddresses fills in missing item addresses by reverse geocoding
// their coordinates, consulting the persistent cache before issuing
// provider calls. Items without a valid coordinate are left untouched.
//
// Geocoding failures degrade to an empty address; they never fail the
// itinerary as a whole.
func EnrichAddresses(
	ctx context.Context,
	items []*domain.ItineraryItem,
	cache ports.AddressCache,
	geocoder ports.ReverseGeocoder,
) (err error) {
	defer obs.Time(ctx, "services.EnrichAddresses")(&err)

	pending := make([]*domain.ItineraryItem, 0)
	coords := make([]domain.Coordinates, 0)
	seen := make(map[domain.Coordinates]struct{})

	for _, it := range items {
		if it.FormattedAddress() != "" || !it.Coord().Valid() {
			continue
		}

		pending = append(pending, it)
		if _, ok := seen[it.Coord()]; !ok {
			seen[it.Coord()] = struct{}{}
			coords = append(coords, it.Coord())
		}
	}

	if len(pending) == 0 {
		return nil
	}

	hits := make(map[domain.Coordinates]string)
	if cache != nil {
		hits, err = cache.GetMany(ctx, coords)
		if err != nil {
			return fmt.Errorf("enrich addresses: get address cache: %w", err)
		}
	}

	fresh := make(map[domain.Coordinates]string)
	if geocoder != nil {
		for _, c := range coords {
			if _, ok := hits[c]; ok {
				continue
			}

			addr, gerr := geocoder.FormattedAddress(ctx, c)
			if gerr != nil {
				log.Printf("reverse geocode failed coord=%.6f,%.6f err=%v", c.Lat, c.Lng, gerr)
				continue
			}
			fresh[c] = addr
		}
	}

	if cache != nil && len(fresh) > 0 {
		if err := cache.PutMany(ctx, fresh); err != nil {
			log.Printf("address cache write failed: %v", err)
		}
	}

	for _, it := range pending {
		if addr, ok := hits[it.Coord()]; ok {
			it.Address = addr
			continue
		}
		if addr, ok := fresh[it.Coord()]; ok {
			it.Address = addr
		}
	}

	return nil
}

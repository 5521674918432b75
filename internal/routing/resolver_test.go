package routing

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/overlay"
	"travel-itinerary-service/internal/ports"
)

var (
	cityHall = domain.Waypoint{
		Name:  "시청",
		Coord: domain.Coordinates{Lat: 37.5665, Lng: 126.9780},
	}
	palace = domain.Waypoint{
		Name:  "경복궁",
		Coord: domain.Coordinates{Lat: 37.5765, Lng: 126.9880},
	}
)

func newTestResolver(provider ports.DirectionsProvider) (*Resolver, *overlay.Surface) {
	surface := overlay.NewSurface()
	return NewResolver(provider, overlay.NewManager(surface)), surface
}

func TestResolveFallbackDistanceAndDuration(t *testing.T) {
	provider := NewMockDirectionsProvider()
	provider.Err = errors.New("provider unreachable")

	resolver, surface := newTestResolver(provider)

	res, err := resolver.Resolve(context.Background(), cityHall, palace, domain.ModeWalking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Kind != domain.RouteEstimated {
		t.Fatalf("kind = %v, want estimated", res.Kind)
	}

	want := cityHall.Coord.DistanceTo(palace.Coord)
	if math.Abs(res.DistanceMeters-want) > 1e-6 {
		t.Errorf("distance = %f, want %f", res.DistanceMeters, want)
	}

	wantSeconds := int(math.Ceil(want / domain.ModeWalking.SpeedMetersPerSecond()))
	if res.DurationSeconds != wantSeconds {
		t.Errorf("duration = %d, want %d", res.DurationSeconds, wantSeconds)
	}

	if res.Reason == "" {
		t.Error("expected a human-readable fallback reason")
	}

	path := surface.RoutePath()
	if path == nil {
		t.Fatal("expected a drawn fallback line")
	}
	if !path.Dashed {
		t.Error("fallback line should be dashed")
	}
}

func TestResolveZeroResultsFallsBack(t *testing.T) {
	resolver, _ := newTestResolver(NewMockDirectionsProvider())

	res, err := resolver.Resolve(context.Background(), cityHall, palace, domain.ModeTransit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != domain.RouteEstimated {
		t.Fatalf("kind = %v, want estimated", res.Kind)
	}
	if !strings.Contains(res.Reason, "transit") {
		t.Errorf("reason %q is not mode-specific", res.Reason)
	}
}

func TestResolveInvalidCoordinatesNoFallback(t *testing.T) {
	provider := NewMockDirectionsProvider()
	provider.Err = errors.New("provider unreachable")

	resolver, surface := newTestResolver(provider)

	origin := domain.Waypoint{Name: "nowhere", Coord: domain.Coordinates{Lat: 0, Lng: 0}}

	_, err := resolver.Resolve(context.Background(), origin, palace, domain.ModeWalking)
	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Fatalf("err = %v, want ErrInvalidCoordinates", err)
	}

	if surface.RoutePath() != nil {
		t.Error("no fallback line may be drawn for invalid coordinates")
	}
}

func TestResolveTransitSegments(t *testing.T) {
	provider := NewMockDirectionsProvider()
	provider.Routes[MockKey("시청", "경복궁", "transit")] = &ports.DirectionsRoute{
		DistanceText: "2.1 km",
		DurationText: "12분",
		Steps: []ports.DirectionsStep{
			{
				TravelMode:   "WALKING",
				Instruction:  "<b>시청역</b>까지 도보",
				DistanceText: "200 m",
				DurationText: "3분",
				Start:        cityHall.Coord,
				End:          domain.Coordinates{Lat: 37.5655, Lng: 126.9770},
			},
			{
				TravelMode:   "TRANSIT",
				DistanceText: "1.9 km",
				DurationText: "9분",
				Start:        domain.Coordinates{Lat: 37.5655, Lng: 126.9770},
				End:          palace.Coord,
				Transit: &ports.TransitDetails{
					LineName:      "3호선",
					LineColor:     "#EF7C1C",
					Vehicle:       "SUBWAY",
					DepartureStop: "시청역",
					ArrivalStop:   "경복궁역",
					NumStops:      2,
				},
			},
		},
	}

	resolver, surface := newTestResolver(provider)

	res, err := resolver.Resolve(context.Background(), cityHall, palace, domain.ModeTransit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Kind != domain.RouteResolved {
		t.Fatalf("kind = %v, want resolved", res.Kind)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(res.Segments))
	}

	walk := res.Segments[0]
	if walk.Instruction != "시청역 까지 도보" {
		t.Errorf("walking instruction not cleaned: %q", walk.Instruction)
	}

	ride := res.Segments[1]
	if ride.LineName != "3호선" || ride.StopCount != 2 || ride.DepartStop != "시청역" {
		t.Errorf("transit segment incomplete: %+v", ride)
	}

	path := surface.RoutePath()
	if path == nil {
		t.Fatal("expected a drawn route path")
	}
	if path.Dashed {
		t.Error("resolved route must not be dashed")
	}
	if path.Color != domain.ModeTransit.PathColor() {
		t.Errorf("path color = %q, want mode color", path.Color)
	}
}

func TestResolveAgainReusesLastQuery(t *testing.T) {
	provider := NewMockDirectionsProvider()
	provider.Routes[MockKey("시청", "경복궁", "walking")] = &ports.DirectionsRoute{
		DistanceText: "1.4 km",
		DurationText: "20분",
		Steps: []ports.DirectionsStep{
			{
				TravelMode:  "WALKING",
				Instruction: "직진",
				Start:       cityHall.Coord,
				End:         palace.Coord,
			},
		},
	}

	resolver, _ := newTestResolver(provider)

	if _, err := resolver.Resolve(context.Background(), cityHall, palace, domain.ModeTransit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := resolver.ResolveAgain(context.Background(), domain.ModeWalking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != domain.RouteResolved {
		t.Fatalf("kind = %v, want resolved after mode switch", res.Kind)
	}
	if res.Mode != domain.ModeWalking {
		t.Errorf("mode = %v, want walking", res.Mode)
	}
}

func TestResolveAgainWithoutHistory(t *testing.T) {
	resolver, _ := newTestResolver(NewMockDirectionsProvider())

	if _, err := resolver.ResolveAgain(context.Background(), domain.ModeWalking); err == nil {
		t.Fatal("expected error without a previous query")
	}
}

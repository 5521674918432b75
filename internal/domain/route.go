package domain

import (
	"fmt"
	"math"
)

// Travel mode for point-to-point route lookups. Driving existed in an
// older variant of the product and was dropped.
type TravelMode string

const (
	ModeTransit TravelMode = "transit"
	ModeWalking TravelMode = "walking"
)

func ParseTravelMode(s string) (TravelMode, error) {
	switch TravelMode(s) {
	case ModeTransit, ModeWalking:
		return TravelMode(s), nil
	}
	return "", fmt.Errorf("unknown travel mode %q", s)
}

// Fixed speeds backing the straight-line duration estimate, in m/s.
// Walking is deliberately slower than transit.
func (m TravelMode) SpeedMetersPerSecond() float64 {
	if m == ModeWalking {
		return 1.2
	}
	return 8.0
}

// PathColor keys the drawn route line by mode.
func (m TravelMode) PathColor() string {
	if m == ModeWalking {
		return "#0F9D58"
	}
	return "#4285F4"
}

// Which RouteResult variant is active.
type RouteKind int

const (
	RouteResolved RouteKind = iota + 1 // provider returned a real path
	RouteEstimated                     // straight-line fallback
)

// One leg of a resolved route. Transit segments carry line and stop
// details; walking segments carry a cleaned instruction.
type RouteSegment struct {
	Mode         TravelMode
	Instruction  string
	LineName     string
	LineColor    string
	Vehicle      string
	DepartStop   string
	ArriveStop   string
	StopCount    int
	DistanceText string
	DurationText string
}

// Outcome of a single route query. Exactly one variant is populated:
// Resolved results carry Segments and the provider's totals, Estimated
// results carry the straight-line distance and derived duration.
type RouteResult struct {
	Kind        RouteKind
	Mode        TravelMode
	Origin      Waypoint
	Destination Waypoint

	// Resolved variant.
	Segments     []RouteSegment
	DistanceText string
	DurationText string
	Path         []Coordinates

	// Estimated variant.
	DistanceMeters  float64
	DurationSeconds int

	// Human-readable explanation of why a fallback was shown.
	// Empty on resolved results.
	Reason string
}

// Dashed reports whether the route line should be drawn dashed
// (estimates are, resolved paths are not).
func (r *RouteResult) Dashed() bool {
	return r.Kind == RouteEstimated
}

// EstimateRoute builds the straight-line fallback between two valid
// coordinates: great-circle distance plus duration at the mode's fixed
// speed, rounded up.
func EstimateRoute(origin, destination Waypoint, mode TravelMode) *RouteResult {
	meters := origin.Coord.DistanceTo(destination.Coord)
	seconds := int(math.Ceil(meters / mode.SpeedMetersPerSecond()))

	return &RouteResult{
		Kind:            RouteEstimated,
		Mode:            mode,
		Origin:          origin,
		Destination:     destination,
		Path:            []Coordinates{origin.Coord, destination.Coord},
		DistanceMeters:  meters,
		DurationSeconds: seconds,
	}
}

// Package routing resolves point-to-point routes through an external
// directions provider, degrading to a straight-line estimate when the
// provider fails or returns no path.
package routing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/overlay"
	"travel-itinerary-service/internal/platform/obs"
	"travel-itinerary-service/internal/ports"
)

// Returned when a fallback estimate is impossible because an endpoint
// has no usable coordinate. No visual fallback is drawn in that case.
var ErrInvalidCoordinates = errors.New("cannot determine the location of these stops")

// Resolver runs route queries and keeps the map overlay in sync with
// the most recent one. A new query supersedes the visual output of an
// earlier one without cancelling its in-flight request; a monotonic
// sequence number enforces last-writer-wins on the overlay.
type Resolver struct {
	provider ports.DirectionsProvider
	overlay  *overlay.Manager
	seq      atomic.Uint64

	mu   sync.Mutex
	last *ports.DirectionsRequest
}

func NewResolver(provider ports.DirectionsProvider, ov *overlay.Manager) *Resolver {
	return &Resolver{provider: provider, overlay: ov}
}

// Resolve looks up a route between two endpoints. On provider success
// it returns a Resolved result; on failure or an empty result it falls
// back to a straight-line estimate when both coordinates are valid,
// and to ErrInvalidCoordinates when they are not. The winning result
// is drawn on the overlay unless a later query has started.
func (r *Resolver) Resolve(
	ctx context.Context,
	origin domain.Waypoint,
	destination domain.Waypoint,
	mode domain.TravelMode,
) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "routing.Resolve")(&err)

	seq := r.seq.Add(1)

	req := ports.DirectionsRequest{Origin: origin, Destination: destination, Mode: mode}
	r.mu.Lock()
	r.last = &req
	r.mu.Unlock()

	route, err := r.provider.Directions(ctx, req)
	if err == nil && route != nil && len(route.Steps) > 0 {
		res := resolvedResult(req, route)
		r.render(seq, res)
		return res, nil
	}

	if err == nil {
		// Treat an OK-but-empty response like a zero-result status.
		err = &ports.StatusError{Status: "ZERO_RESULTS"}
	}

	if !origin.Coord.Valid() || !destination.Coord.Valid() {
		return nil, fmt.Errorf("resolve route: %w", ErrInvalidCoordinates)
	}

	res := domain.EstimateRoute(origin, destination, mode)
	res.Reason = fallbackReason(mode, err)
	r.render(seq, res)

	return res, nil
}

// ResolveAgain re-runs the most recent query with a different travel
// mode, supporting mode switches without re-selecting places.
func (r *Resolver) ResolveAgain(ctx context.Context, mode domain.TravelMode) (*domain.RouteResult, error) {
	r.mu.Lock()
	last := r.last
	r.mu.Unlock()

	if last == nil {
		return nil, errors.New("resolve again: no previous route query")
	}

	return r.Resolve(ctx, last.Origin, last.Destination, mode)
}

func (r *Resolver) render(seq uint64, res *domain.RouteResult) {
	if r.overlay == nil {
		return
	}
	if r.seq.Load() != seq {
		// A later query superseded this one; drop the visual output.
		return
	}
	r.overlay.DrawRoute(res)
}

func resolvedResult(req ports.DirectionsRequest, route *ports.DirectionsRoute) *domain.RouteResult {
	segments := make([]domain.RouteSegment, 0, len(route.Steps))
	path := make([]domain.Coordinates, 0, len(route.Steps)+1)

	for i, step := range route.Steps {
		segments = append(segments, segmentForStep(req.Mode, step))

		if step.Start.Valid() {
			path = append(path, step.Start)
		}
		if i == len(route.Steps)-1 && step.End.Valid() {
			path = append(path, step.End)
		}
	}

	return &domain.RouteResult{
		Kind:         domain.RouteResolved,
		Mode:         req.Mode,
		Origin:       req.Origin,
		Destination:  req.Destination,
		Segments:     segments,
		DistanceText: route.DistanceText,
		DurationText: route.DurationText,
		Path:         path,
	}
}

func segmentForStep(mode domain.TravelMode, step ports.DirectionsStep) domain.RouteSegment {
	if step.Transit != nil {
		return domain.RouteSegment{
			Mode:         domain.ModeTransit,
			LineName:     step.Transit.LineName,
			LineColor:    step.Transit.LineColor,
			Vehicle:      step.Transit.Vehicle,
			DepartStop:   step.Transit.DepartureStop,
			ArriveStop:   step.Transit.ArrivalStop,
			StopCount:    step.Transit.NumStops,
			DistanceText: step.DistanceText,
			DurationText: step.DurationText,
		}
	}

	segMode := mode
	if strings.EqualFold(step.TravelMode, "WALKING") {
		segMode = domain.ModeWalking
	}

	return domain.RouteSegment{
		Mode:         segMode,
		Instruction:  cleanInstruction(step.Instruction),
		DistanceText: step.DistanceText,
		DurationText: step.DurationText,
	}
}

// cleanInstruction strips provider HTML from a step instruction and
// collapses the leftover whitespace.
func cleanInstruction(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func fallbackReason(mode domain.TravelMode, err error) string {
	label := "transit"
	if mode == domain.ModeWalking {
		label = "walking"
	}

	var se *ports.StatusError
	if errors.As(err, &se) {
		switch se.Status {
		case "ZERO_RESULTS", "NOT_FOUND":
			return fmt.Sprintf("No %s route was found between these stops; showing a straight-line estimate.", label)
		case "OVER_QUERY_LIMIT":
			return fmt.Sprintf("The %s routing service is busy; showing a straight-line estimate.", label)
		case "REQUEST_DENIED":
			return fmt.Sprintf("The %s routing service rejected the request; showing a straight-line estimate.", label)
		case "INVALID_REQUEST":
			return fmt.Sprintf("The %s route request was invalid; showing a straight-line estimate.", label)
		}
	}

	return fmt.Sprintf("The %s routing service could not be reached; showing a straight-line estimate.", label)
}

// Package session holds the per-viewer state the browser renders: the
// partitioned itinerary, the active day tab, and the map overlay. One
// Session replaces the module-level globals of the original viewer;
// everything it touches is passed explicitly.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/overlay"
	"travel-itinerary-service/internal/ports"
	"travel-itinerary-service/internal/routing"
	"travel-itinerary-service/internal/services"
)

// Session is one viewer's itinerary view. All operations serialize on
// the session lock; overlay mutations stay clear-then-draw atomic with
// respect to observers.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu        sync.Mutex
	plan      *domain.PlanResponse
	days      services.DayGroups
	activeDay int
	start     domain.Waypoint
	surface   *overlay.Surface
	overlay   *overlay.Manager
	resolver  *routing.Resolver
	routeOpen bool
}

// Everything the client needs to render the map, captured atomically.
type MapState struct {
	Markers    []ports.Marker
	Route      *ports.Path
	Zoom       int
	Center     domain.Coordinates
	InfoOpenOn ports.MarkerID
}

func newSession(plan *domain.PlanResponse, start domain.Waypoint, provider ports.DirectionsProvider) *Session {
	surface := overlay.NewSurface()
	manager := overlay.NewManager(surface)

	s := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		plan:      plan,
		days:      services.PartitionDays(plan.Itinerary),
		start:     start,
		surface:   surface,
		overlay:   manager,
		resolver:  routing.NewResolver(provider, manager),
	}

	days := s.days.Days()
	s.activeDay = days[0]
	manager.ShowMarkers(s.days[s.activeDay])

	return s
}

// Days returns the day tabs in ascending order.
func (s *Session) Days() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.days.Days()
}

// ShowTabs reports whether the tab control should render at all; a
// single-day trip hides it entirely.
func (s *Session) ShowTabs() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.days) > 1
}

func (s *Session) ActiveDay() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeDay
}

// Timeline returns the active day's bucket in original order.
func (s *Session) Timeline() []*domain.ItineraryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.ItineraryItem(nil), s.days[s.activeDay]...)
}

// SelectDay switches the active tab: any open route overlay closes,
// and the day's markers replace the previous set.
func (s *Session) SelectDay(day int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.days[day]
	if !ok {
		return fmt.Errorf("select day: no day %d in this itinerary", day)
	}

	if s.routeOpen {
		s.overlay.Restore()
		s.routeOpen = false
	}
	s.overlay.ClearRoute()

	s.activeDay = day
	s.overlay.ShowMarkers(bucket)

	return nil
}

// RouteToStop resolves the route to the active day's stop at index.
// For the first stop the origin is the trip-level starting point;
// otherwise it is the previous stop in the same day. The day markers
// are hidden behind a snapshot while the route overlay is shown.
func (s *Session) RouteToStop(ctx context.Context, index int, mode domain.TravelMode) (*domain.RouteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.days[s.activeDay]
	if index < 0 || index >= len(bucket) {
		return nil, fmt.Errorf("route to stop: index %d out of range for day %d", index, s.activeDay)
	}

	origin := s.start
	if index > 0 {
		origin = domain.WaypointForItem(bucket[index-1])
	}
	destination := domain.WaypointForItem(bucket[index])

	if !s.routeOpen {
		s.overlay.SnapshotAndHide()
		s.routeOpen = true
	}

	res, err := s.resolver.Resolve(ctx, origin, destination, mode)
	if err != nil {
		// No visual fallback exists; bring the day markers back.
		s.overlay.Restore()
		s.routeOpen = false
		return nil, err
	}

	return res, nil
}

// SwitchRouteMode re-resolves the open route lookup with a different
// travel mode.
func (s *Session) SwitchRouteMode(ctx context.Context, mode domain.TravelMode) (*domain.RouteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.routeOpen {
		return nil, fmt.Errorf("switch route mode: no route overlay is open")
	}

	return s.resolver.ResolveAgain(ctx, mode)
}

// CloseRoute dismisses the route overlay and restores exactly the
// marker set that was visible before it opened.
func (s *Session) CloseRoute() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.routeOpen {
		return
	}
	s.overlay.Restore()
	s.routeOpen = false
}

// OpenMarkerInfo opens the shared popup on the active day's marker.
func (s *Session) OpenMarkerInfo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay.OpenMarkerInfo(index)
}

// Map captures the current surface state for rendering.
func (s *Session) Map() MapState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := MapState{
		Markers: s.surface.Markers(),
		Route:   s.surface.RoutePath(),
		Zoom:    s.surface.Zoom(),
		Center:  s.surface.Center(),
	}
	if id, open := s.surface.InfoOpenOn(); open {
		state.InfoOpenOn = id
	}
	return state
}

// Plan returns the upstream plan this session views.
func (s *Session) Plan() *domain.PlanResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// Registry is the uuid-keyed set of live sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	provider ports.DirectionsProvider
}

func NewRegistry(provider ports.DirectionsProvider) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		provider: provider,
	}
}

// Create builds a session for a fresh plan and registers it.
func (r *Registry) Create(plan *domain.PlanResponse, start domain.Waypoint) *Session {
	s := newSession(plan, start, r.provider)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	return s
}

// Get looks up a live session by id.
func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete drops a session from the registry.
func (r *Registry) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

package overlay

import (
	"math"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/ports"
)

const (
	defaultZoom = 13
	minZoom     = 0
	maxZoom     = 21
)

// Surface is the in-process map state the API reports to the browser.
// It implements ports.MapSurface; the client renders exactly what the
// surface holds. Not safe for concurrent use; the owning session
// serializes access.
type Surface struct {
	nextID   ports.MarkerID
	order    []ports.MarkerID
	markers  map[ports.MarkerID]ports.Marker
	route    *ports.Path
	zoom     int
	center   domain.Coordinates
	infoOpen ports.MarkerID // 0 = closed
}

func NewSurface() *Surface {
	return &Surface{
		markers: make(map[ports.MarkerID]ports.Marker),
		zoom:    defaultZoom,
		center:  domain.CityCenterFallback,
	}
}

func (s *Surface) AddMarker(m ports.Marker) ports.MarkerID {
	s.nextID++
	m.ID = s.nextID

	s.markers[m.ID] = m
	s.order = append(s.order, m.ID)

	return m.ID
}

func (s *Surface) RemoveMarker(id ports.MarkerID) {
	if _, ok := s.markers[id]; !ok {
		return
	}

	delete(s.markers, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	if s.infoOpen == id {
		s.infoOpen = 0
	}
}

func (s *Surface) SetMarkerVisible(id ports.MarkerID, visible bool) {
	m, ok := s.markers[id]
	if !ok {
		return
	}

	m.Visible = visible
	s.markers[id] = m

	if !visible && s.infoOpen == id {
		s.infoOpen = 0
	}
}

// OpenInfo opens the shared popup on one marker. Any previously open
// popup closes first; at most one is ever open.
func (s *Surface) OpenInfo(id ports.MarkerID) {
	if _, ok := s.markers[id]; !ok {
		return
	}
	s.infoOpen = id
}

func (s *Surface) CloseInfo() {
	s.infoOpen = 0
}

func (s *Surface) SetRoutePath(p *ports.Path) {
	s.route = p
}

// FitBounds frames the viewport around b and returns the resulting
// zoom level, derived from the wider of the two angular spans.
func (s *Surface) FitBounds(b domain.Bounds) int {
	s.center = domain.Coordinates{
		Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2,
		Lng: (b.SouthWest.Lng + b.NorthEast.Lng) / 2,
	}

	span := math.Max(
		b.NorthEast.Lat-b.SouthWest.Lat,
		b.NorthEast.Lng-b.SouthWest.Lng,
	)

	zoom := maxZoom
	if span > 0 {
		zoom = int(math.Floor(math.Log2(360 / span)))
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	if zoom < minZoom {
		zoom = minZoom
	}

	s.zoom = zoom
	return zoom
}

func (s *Surface) SetZoom(level int) {
	s.zoom = level
}

// Markers returns all attached markers in placement order.
func (s *Surface) Markers() []ports.Marker {
	out := make([]ports.Marker, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.markers[id])
	}
	return out
}

// VisibleMarkers returns only the markers currently shown.
func (s *Surface) VisibleMarkers() []ports.Marker {
	out := make([]ports.Marker, 0, len(s.order))
	for _, m := range s.Markers() {
		if m.Visible {
			out = append(out, m)
		}
	}
	return out
}

func (s *Surface) RoutePath() *ports.Path { return s.route }

func (s *Surface) Zoom() int { return s.zoom }

func (s *Surface) Center() domain.Coordinates { return s.center }

// InfoOpenOn returns the marker the shared popup is open on, if any.
func (s *Surface) InfoOpenOn() (ports.MarkerID, bool) {
	return s.infoOpen, s.infoOpen != 0
}

package ports

import "travel-itinerary-service/internal/domain"

// Handle for a marker placed on a map surface.
type MarkerID int

// Marker as the overlay manager places it. Info is the shared popup
// content shown when the marker is clicked.
type Marker struct {
	ID       MarkerID
	Position domain.Coordinates
	Label    string
	Title    string
	Info     string
	Visible  bool
}

// Drawn route line. A dashed path marks a straight-line estimate.
type Path struct {
	Points []domain.Coordinates
	Color  string
	Dashed bool
}

// Port: the map the overlay manager draws on. The concrete browser map
// is an external collaborator; in-process implementations only track
// the state the client should render. All side effects stay on the
// surface, never on the network.
type MapSurface interface {
	// AddMarker places a marker and returns its handle.
	AddMarker(m Marker) MarkerID
	// RemoveMarker detaches a marker entirely.
	RemoveMarker(id MarkerID)
	// SetMarkerVisible hides or re-shows a marker without detaching it.
	SetMarkerVisible(id MarkerID, visible bool)
	// OpenInfo opens the shared info popup on a marker, closing any
	// previously open popup first.
	OpenInfo(id MarkerID)
	// SetRoutePath draws the route line, replacing any previous one.
	// A nil path clears it.
	SetRoutePath(p *Path)
	// FitBounds frames the viewport around b and returns the
	// resulting zoom level.
	FitBounds(b domain.Bounds) int
	// SetZoom overrides the current zoom level.
	SetZoom(level int)
}

// Package overlay owns the marker and route-line state drawn on a map
// surface. At most one of the day-marker set or a temporary route view
// is visible at a time; a snapshot/restore pair moves between the two.
package overlay

import (
	"fmt"
	"strconv"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/ports"
)

// Zoom is clamped to this after fitting bounds so a single marker does
// not zoom in to street level.
const zoomCap = 15

// Manager tracks the live marker list on a surface and the backup set
// saved while a route overlay is shown. It performs no network calls.
type Manager struct {
	surface ports.MapSurface
	markers []ports.MarkerID
	backup  []ports.MarkerID
}

func NewManager(surface ports.MapSurface) *Manager {
	return &Manager{surface: surface}
}

// ShowMarkers replaces the current marker set with one marker per item,
// labeled by 1-based position. The previous set is fully detached
// before the first new marker is placed. Items without a usable
// coordinate are pinned to the city-center fallback. The viewport is
// fit to the new markers with the zoom capped.
func (m *Manager) ShowMarkers(items []*domain.ItineraryItem) {
	for _, id := range m.markers {
		m.surface.RemoveMarker(id)
	}
	m.markers = m.markers[:0]

	if len(items) == 0 {
		return
	}

	points := make([]domain.Coordinates, 0, len(items))
	for i, it := range items {
		coord := it.Coord()
		if !coord.Valid() {
			coord = domain.CityCenterFallback
		}

		id := m.surface.AddMarker(ports.Marker{
			Position: coord,
			Label:    strconv.Itoa(i + 1),
			Title:    it.DisplayName(),
			Info:     markerInfo(it),
			Visible:  true,
		})

		m.markers = append(m.markers, id)
		points = append(points, coord)
	}

	if bounds, ok := domain.BoundsOf(points); ok {
		if zoom := m.surface.FitBounds(bounds); zoom > zoomCap {
			m.surface.SetZoom(zoomCap)
		}
	}
}

// OpenMarkerInfo opens the shared info popup on the marker at the given
// 0-based position in the current set.
func (m *Manager) OpenMarkerInfo(index int) error {
	if index < 0 || index >= len(m.markers) {
		return fmt.Errorf("open marker info: index %d out of range", index)
	}
	m.surface.OpenInfo(m.markers[index])
	return nil
}

// SnapshotAndHide saves the current marker set and hides it without
// detaching, ahead of a temporary route overlay.
func (m *Manager) SnapshotAndHide() {
	m.backup = append([]ports.MarkerID(nil), m.markers...)
	for _, id := range m.markers {
		m.surface.SetMarkerVisible(id, false)
	}
}

// Restore re-shows the marker set saved by the most recent snapshot and
// clears any route overlay. Safe to call with no backup.
func (m *Manager) Restore() {
	if m.backup == nil {
		m.ClearRoute()
		return
	}

	for _, id := range m.backup {
		m.surface.SetMarkerVisible(id, true)
	}
	m.markers = m.backup
	m.backup = nil

	m.ClearRoute()
}

// ClearRoute removes any drawn route line from the surface.
func (m *Manager) ClearRoute() {
	m.surface.SetRoutePath(nil)
}

// DrawRoute draws the result's path in its mode color, dashed for
// estimates. Point markers stay with the overlay manager, so the path
// carries none of its own.
func (m *Manager) DrawRoute(res *domain.RouteResult) {
	if res == nil || len(res.Path) == 0 {
		return
	}

	m.surface.SetRoutePath(&ports.Path{
		Points: res.Path,
		Color:  res.Mode.PathColor(),
		Dashed: res.Dashed(),
	})

	if bounds, ok := domain.BoundsOf(res.Path); ok {
		if zoom := m.surface.FitBounds(bounds); zoom > zoomCap {
			m.surface.SetZoom(zoomCap)
		}
	}
}

// MarkerCount reports the size of the current marker set.
func (m *Manager) MarkerCount() int { return len(m.markers) }

func markerInfo(it *domain.ItineraryItem) string {
	if addr := it.FormattedAddress(); addr != "" {
		return it.DisplayName() + "\n" + addr
	}
	return it.DisplayName()
}

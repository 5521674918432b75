package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"travel-itinerary-service/internal/api/dto"
	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/routing"
	"travel-itinerary-service/internal/session"
)

// SessionHandler exposes the per-session viewer operations: day tab
// switching, route lookups, and marker interaction.
type SessionHandler struct {
	Sessions *session.Registry
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid session id")
		return nil, false
	}

	s, ok := h.Sessions.Get(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "session not found")
		return nil, false
	}
	return s, true
}

// Get returns the session's current view.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, planView(s, ""))
}

// SelectDay switches the active day tab.
func (h *SessionHandler) SelectDay(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.DaySelectRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := s.SelectDay(req.Day); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, planView(s, ""))
}

// Route resolves the route to one of the active day's stops.
func (h *SessionHandler) Route(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.RouteLookupRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	mode := domain.ModeTransit
	if req.Mode != "" {
		var err error
		mode, err = domain.ParseTravelMode(req.Mode)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	res, err := s.RouteToStop(r.Context(), req.Index, mode)
	if err != nil {
		h.writeRouteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, routeView(res, s.Map()))
}

// SwitchMode re-resolves the open route with a different travel mode.
func (h *SessionHandler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.RouteModeRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	mode, err := domain.ParseTravelMode(req.Mode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.SwitchRouteMode(r.Context(), mode)
	if err != nil {
		h.writeRouteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, routeView(res, s.Map()))
}

// CloseRoute dismisses the route overlay and restores the day markers.
func (h *SessionHandler) CloseRoute(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	s.CloseRoute()
	writeJSON(w, r, http.StatusOK, map[string]any{"map": mapView(s.Map())})
}

// OpenInfo opens the shared info popup on a marker.
func (h *SessionHandler) OpenInfo(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.MarkerInfoRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := s.OpenMarkerInfo(req.Index); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"map": mapView(s.Map())})
}

// Delete drops the session.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid session id")
		return
	}

	h.Sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// writeRouteError maps route failures to status codes. Unroutable
// coordinates are the caller's data problem, not an internal fault.
func (h *SessionHandler) writeRouteError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, routing.ErrInvalidCoordinates) {
		writeError(w, r, http.StatusUnprocessableEntity, "cannot determine the location of these stops")
		return
	}
	writeError(w, r, http.StatusBadRequest, err.Error())
}

package handlers

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	"travel-itinerary-service/internal/api/dto"
	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/ports"
	"travel-itinerary-service/internal/session"
)

// BudgetHandler estimates a cost breakdown for a session's itinerary.
type BudgetHandler struct {
	Estimator ports.BudgetEstimator
	Sessions  *session.Registry
}

func (h *BudgetHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if h.Estimator == nil {
		writeError(w, r, http.StatusServiceUnavailable, "budget estimation is not configured")
		return
	}

	var req dto.BudgetRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	s, ok := lookupSession(w, r, h.Sessions, req.SessionID)
	if !ok {
		return
	}

	breakdown, err := h.Estimator.Estimate(r.Context(), s.Plan().Itinerary, req.TravelStyle)
	if err != nil {
		log.Printf("estimate budget failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "budget estimation failed")
		return
	}

	writeJSON(w, r, http.StatusOK, breakdown)
}

// NotesHandler saves a session's plan to the external notes service.
type NotesHandler struct {
	Saver    ports.NoteSaver
	Sessions *session.Registry
}

func (h *NotesHandler) Save(w http.ResponseWriter, r *http.Request) {
	if h.Saver == nil {
		writeError(w, r, http.StatusServiceUnavailable, "note saving is not configured")
		return
	}

	var req dto.NoteSaveRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	s, ok := lookupSession(w, r, h.Sessions, req.SessionID)
	if !ok {
		return
	}

	url, err := h.Saver.Save(r.Context(), s.Plan())
	if err != nil {
		log.Printf("save note failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "saving the plan failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NoteSaveResponse{URL: url})
}

// Styles returns the fixed travel-style catalog the form renders.
func Styles(w http.ResponseWriter, r *http.Request) {
	styles := domain.TravelStyles()

	res := make([]dto.StyleResponse, 0, len(styles))
	for _, s := range styles {
		res = append(res, dto.StyleResponse{
			Value:     s.Key,
			Label:     s.Label,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func lookupSession(w http.ResponseWriter, r *http.Request, reg *session.Registry, rawID string) (*session.Session, bool) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid session id")
		return nil, false
	}

	s, ok := reg.Get(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "session not found")
		return nil, false
	}
	return s, true
}

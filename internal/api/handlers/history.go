package handlers

import (
	"log"
	"net/http"
	"time"

	"travel-itinerary-service/internal/api/dto"
	"travel-itinerary-service/internal/ports"
)

// HistoryHandler exposes read-only access to past trip submissions.
type HistoryHandler struct {
	Store ports.HistoryStore
}

// List returns past submissions, most recent first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, r, http.StatusServiceUnavailable, "history is not configured")
		return
	}

	subs, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("list history failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.HistoryListResponse{
		Entries: make([]dto.HistoryEntryResponse, 0, len(subs)),
	}
	for _, s := range subs {
		p := s.Request.Preferences
		res.Entries = append(res.Entries, dto.HistoryEntryResponse{
			ID:          s.ID,
			CreatedAt:   s.CreatedAt.Format(time.RFC3339),
			Prompt:      s.Request.Prompt,
			City:        p.City,
			TravelStyle: p.TravelStyle,
			StartDate:   p.StartDate,
			EndDate:     p.EndDate,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one full submission, including the stored plan response.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, r, http.StatusServiceUnavailable, "history is not configured")
		return
	}

	sub, err := h.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Printf("get history failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if sub == nil {
		writeError(w, r, http.StatusNotFound, "submission not found")
		return
	}

	writeJSON(w, r, http.StatusOK, sub)
}

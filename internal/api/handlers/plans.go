package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"travel-itinerary-service/internal/api/dto"
	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/ports"
	"travel-itinerary-service/internal/services"
	"travel-itinerary-service/internal/session"
)

// PlanHandler orchestrates plan generation: it validates the trip
// request, calls the upstream planner, enriches the itinerary with
// addresses, records the submission, and opens a viewing session.
type PlanHandler struct {
	Planner  ports.PlannerClient
	History  ports.HistoryStore
	Cache    ports.AddressCache
	Geocoder ports.ReverseGeocoder
	Sessions *session.Registry
}

// Create handles the blocking plan request.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var sub dto.PlanSubmission
	if err := decodeStrict(r, &sub); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	req, err := buildPlanRequest(sub)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.Planner.GeneratePlan(r.Context(), req)
	if err != nil {
		log.Printf("generate plan failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "travel plan generation failed")
		return
	}

	subID := h.finishPlan(r, req, plan)
	sess := h.Sessions.Create(plan, req.Preferences.StartWaypoint())

	writeJSON(w, r, http.StatusOK, planView(sess, subID))
}

// Stream handles the streaming plan request: progress frames are
// relayed to the client as server-sent events, and the terminal frame
// carries the rendered plan view.
func (h *PlanHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var sub dto.PlanSubmission
	if err := decodeStrict(r, &sub); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	req, err := buildPlanRequest(sub)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	fl, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fl.Flush()

	plan, err := h.Planner.StreamPlan(r.Context(), req, func(ev ports.ProgressEvent) {
		writeSSE(w, fl, map[string]any{
			"type":     ev.Type,
			"message":  ev.Message,
			"progress": ev.Progress,
		})
	})
	if err != nil {
		log.Printf("stream plan failed: %v", err)
		writeSSE(w, fl, map[string]any{
			"type":    "error",
			"message": err.Error(),
		})
		return
	}

	subID := h.finishPlan(r, req, plan)
	sess := h.Sessions.Create(plan, req.Preferences.StartWaypoint())

	writeSSE(w, fl, map[string]any{
		"type": "complete",
		"data": planView(sess, subID),
	})
}

// finishPlan runs the post-generation steps shared by both variants:
// address enrichment and history recording. Neither failure aborts the
// response the viewer is waiting on.
func (h *PlanHandler) finishPlan(r *http.Request, req domain.PlanRequest, plan *domain.PlanResponse) string {
	if err := services.EnrichAddresses(r.Context(), plan.Itinerary, h.Cache, h.Geocoder); err != nil {
		log.Printf("enrich addresses failed: %v", err)
	}

	sub := domain.Submission{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Request:   req,
		Response:  plan,
	}
	if h.History != nil {
		if err := h.History.Push(r.Context(), sub); err != nil {
			log.Printf("push history failed: %v", err)
		}
	}
	return sub.ID
}

func writeSSE(w http.ResponseWriter, fl http.Flusher, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("encode sse frame failed: %v", err)
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	fl.Flush()
}

// buildPlanRequest validates a submission and assembles the upstream
// request, deriving trip duration from the date window and folding the
// structured preferences into the prompt text.
func buildPlanRequest(sub dto.PlanSubmission) (domain.PlanRequest, error) {
	prompt := strings.TrimSpace(sub.Prompt)
	if prompt == "" {
		return domain.PlanRequest{}, fmt.Errorf("prompt is required")
	}

	p := sub.Preferences
	if p.StartDate == "" || p.EndDate == "" {
		return domain.PlanRequest{}, fmt.Errorf("start_date and end_date are required")
	}

	startTime := p.StartTime
	if startTime == "" {
		startTime = "09:00"
	}
	endTime := p.EndTime
	if endTime == "" {
		endTime = "18:00"
	}

	start, err := time.Parse("2006-01-02 15:04", p.StartDate+" "+startTime)
	if err != nil {
		return domain.PlanRequest{}, fmt.Errorf("invalid start date or time")
	}
	end, err := time.Parse("2006-01-02 15:04", p.EndDate+" "+endTime)
	if err != nil {
		return domain.PlanRequest{}, fmt.Errorf("invalid end date or time")
	}
	if !end.After(start) {
		return domain.PlanRequest{}, fmt.Errorf("end must be after start")
	}

	hours := int(end.Sub(start).Hours())
	prefs := domain.TripPreferences{
		City:          p.City,
		TravelStyle:   p.TravelStyle,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		StartTime:     startTime,
		EndTime:       endTime,
		StartLocation: p.StartLocation,
		DurationDays:  hours / 24,
		DurationHours: hours % 24,
	}

	return domain.PlanRequest{
		Prompt:      composePrompt(prompt, prefs),
		Preferences: prefs,
	}, nil
}

// composePrompt prefixes the free-text prompt with the structured trip
// context the upstream model expects inline.
func composePrompt(prompt string, p domain.TripPreferences) string {
	duration := durationText(p.DurationDays, p.DurationHours)

	var b strings.Builder
	if p.City != "" {
		fmt.Fprintf(&b, "%s에서 ", p.City)
	}
	if p.TravelStyle != "" {
		fmt.Fprintf(&b, "%s ", domain.StyleLabel(p.TravelStyle))
	}
	fmt.Fprintf(&b, "%s 여행, %s %s부터 %s %s까지. ", duration, p.StartDate, p.StartTime, p.EndDate, p.EndTime)
	b.WriteString(prompt)
	return b.String()
}

func durationText(days, hours int) string {
	if days == 0 {
		return fmt.Sprintf("당일치기 (%d시간)", hours)
	}
	return fmt.Sprintf("%d박 %d일", days, days+1)
}

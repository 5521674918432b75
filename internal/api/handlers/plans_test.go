package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travel-itinerary-service/internal/api/dto"
	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/ports"
	"travel-itinerary-service/internal/routing"
	"travel-itinerary-service/internal/session"
)

type stubPlanner struct {
	plan *domain.PlanResponse
	err  error
}

func (p *stubPlanner) GeneratePlan(ctx context.Context, req domain.PlanRequest) (*domain.PlanResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.plan, nil
}

func (p *stubPlanner) StreamPlan(ctx context.Context, req domain.PlanRequest, onProgress func(ports.ProgressEvent)) (*domain.PlanResponse, error) {
	onProgress(ports.ProgressEvent{Type: "status", Message: "장소를 찾는 중입니다", Progress: 40})
	if p.err != nil {
		return nil, p.err
	}
	return p.plan, nil
}

func testPlan() *domain.PlanResponse {
	return &domain.PlanResponse{
		Itinerary: []*domain.ItineraryItem{
			{Name: "경복궁", Time: "09:00", Lat: 37.5796, Lng: 126.9770},
			{Name: "광장시장", Time: "13:00", Lat: 37.5700, Lng: 126.9996},
		},
	}
}

func newTestPlanHandler(planner ports.PlannerClient) *PlanHandler {
	return &PlanHandler{
		Planner:  planner,
		Sessions: session.NewRegistry(routing.NewMockDirectionsProvider()),
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func validSubmission() dto.PlanSubmission {
	return dto.PlanSubmission{
		Prompt: "맛집 위주로 부탁해요",
		Preferences: dto.Preferences{
			City:        "서울",
			TravelStyle: "food_tour",
			StartDate:   "2026-09-01",
			EndDate:     "2026-09-02",
			StartTime:   "09:00",
			EndTime:     "18:00",
		},
	}
}

func TestCreatePlanReturnsView(t *testing.T) {
	h := newTestPlanHandler(&stubPlanner{plan: testPlan()})

	rec := postJSON(t, h.Create, "/api/travel/plan", validSubmission())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var view dto.PlanViewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if view.SessionID == "" {
		t.Error("expected a session id")
	}
	if len(view.Timeline) != 2 {
		t.Fatalf("timeline length = %d, want 2", len(view.Timeline))
	}
	if view.Timeline[0].Name != "경복궁" {
		t.Errorf("first stop = %q, want 경복궁", view.Timeline[0].Name)
	}
	if len(view.Map.Markers) != 2 {
		t.Errorf("marker count = %d, want 2", len(view.Map.Markers))
	}
}

func TestCreatePlanValidation(t *testing.T) {
	h := newTestPlanHandler(&stubPlanner{plan: testPlan()})

	cases := []struct {
		name   string
		mutate func(*dto.PlanSubmission)
		want   string
	}{
		{
			name:   "missing prompt",
			mutate: func(s *dto.PlanSubmission) { s.Prompt = "  " },
			want:   "prompt is required",
		},
		{
			name:   "missing dates",
			mutate: func(s *dto.PlanSubmission) { s.Preferences.EndDate = "" },
			want:   "start_date and end_date are required",
		},
		{
			name: "end before start",
			mutate: func(s *dto.PlanSubmission) {
				s.Preferences.StartDate = "2026-09-02"
				s.Preferences.EndDate = "2026-09-01"
			},
			want: "end must be after start",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission()
			tc.mutate(&sub)

			rec := postJSON(t, h.Create, "/api/travel/plan", sub)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Errorf("body %q does not mention %q", rec.Body.String(), tc.want)
			}
		})
	}
}

func TestBuildPlanRequestDerivesDuration(t *testing.T) {
	sub := validSubmission()

	req, err := buildPlanRequest(sub)
	if err != nil {
		t.Fatalf("buildPlanRequest: %v", err)
	}

	if req.Preferences.DurationDays != 1 {
		t.Errorf("DurationDays = %d, want 1", req.Preferences.DurationDays)
	}
	if req.Preferences.DurationHours != 9 {
		t.Errorf("DurationHours = %d, want 9", req.Preferences.DurationHours)
	}
	if !strings.Contains(req.Prompt, "1박 2일") {
		t.Errorf("prompt %q does not mention the trip duration", req.Prompt)
	}
	if !strings.Contains(req.Prompt, "맛집 투어") {
		t.Errorf("prompt %q does not mention the style label", req.Prompt)
	}
}

func TestBuildPlanRequestDayTrip(t *testing.T) {
	sub := validSubmission()
	sub.Preferences.EndDate = "2026-09-01"
	sub.Preferences.EndTime = "17:00"

	req, err := buildPlanRequest(sub)
	if err != nil {
		t.Fatalf("buildPlanRequest: %v", err)
	}

	if req.Preferences.DurationDays != 0 || req.Preferences.DurationHours != 8 {
		t.Errorf("duration = %dd %dh, want 0d 8h",
			req.Preferences.DurationDays, req.Preferences.DurationHours)
	}
	if !strings.Contains(req.Prompt, "당일치기") {
		t.Errorf("prompt %q does not mark a day trip", req.Prompt)
	}
}

func TestStreamPlanEmitsFrames(t *testing.T) {
	h := newTestPlanHandler(&stubPlanner{plan: testPlan()})

	rec := postJSON(t, h.Stream, "/api/travel/plan/stream", validSubmission())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q, want text/event-stream", ct)
	}

	var types []string
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		raw, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		var frame struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal([]byte(raw), &frame); err != nil {
			t.Fatalf("decode frame %q: %v", raw, err)
		}
		types = append(types, frame.Type)
	}

	if len(types) != 2 || types[0] != "status" || types[1] != "complete" {
		t.Fatalf("frame types = %v, want [status complete]", types)
	}
}

func TestStreamPlanUpstreamError(t *testing.T) {
	h := newTestPlanHandler(&stubPlanner{err: context.DeadlineExceeded})

	rec := postJSON(t, h.Stream, "/api/travel/plan/stream", validSubmission())

	body := rec.Body.String()
	if !strings.Contains(body, `"type":"error"`) {
		t.Fatalf("body %q has no terminal error frame", body)
	}
}

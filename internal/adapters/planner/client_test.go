package planner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/ports"
)

func testRequest() domain.PlanRequest {
	return domain.PlanRequest{
		Prompt: "서울에서 맛집 투어",
		Preferences: domain.TripPreferences{
			City:      "Seoul",
			StartDate: "2026-08-10",
			EndDate:   "2026-08-10",
		},
	}
}

func TestGeneratePlan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/travel/plan" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{"itinerary":[{"name":"경복궁","time":"09:00","lat":37.5796,"lng":126.977}],"notion_url":"https://notion.so/x"}`)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plan, err := client.GeneratePlan(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Itinerary) != 1 || plan.Itinerary[0].Name != "경복궁" {
		t.Fatalf("unexpected itinerary: %+v", plan.Itinerary)
	}
	if plan.NotionURL != "https://notion.so/x" {
		t.Errorf("notion_url = %q", plan.NotionURL)
	}
}

func TestGeneratePlanUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "planner exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL)

	_, err := client.GeneratePlan(context.Background(), testRequest())
	if err == nil || !strings.Contains(err.Error(), "planner exploded") {
		t.Fatalf("err = %v, want upstream error text surfaced", err)
	}
}

func TestStreamPlanSkipsMalformedFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"status\",\"message\":\"시작\",\"progress\":0}\n\n")
		fmt.Fprint(w, "data: {not json at all\n\n")
		fmt.Fprint(w, ": comment line\n\n")
		fmt.Fprint(w, "data: {\"type\":\"info\",\"message\":\"장소 선정\",\"progress\":60}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"complete\",\"data\":{\"itinerary\":[{\"name\":\"남산\"}]}}\n\n")
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL)

	var events []ports.ProgressEvent
	plan, err := client.StreamPlan(context.Background(), testRequest(), func(ev ports.ProgressEvent) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("progress events = %d, want 2 (malformed frames skipped)", len(events))
	}
	if events[1].Progress != 60 {
		t.Errorf("second event progress = %d, want 60", events[1].Progress)
	}
	if len(plan.Itinerary) != 1 || plan.Itinerary[0].Name != "남산" {
		t.Fatalf("unexpected terminal plan: %+v", plan)
	}
}

func TestStreamPlanTerminalError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"status\",\"message\":\"시작\",\"progress\":0}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"error\",\"message\":\"계획 생성 실패\"}\n\n")
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL)

	_, err := client.StreamPlan(context.Background(), testRequest(), nil)
	if err == nil || !strings.Contains(err.Error(), "계획 생성 실패") {
		t.Fatalf("err = %v, want upstream error message", err)
	}
}

func TestStreamPlanEndsWithoutTerminalFrame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"status\",\"message\":\"시작\",\"progress\":0}\n\n")
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL)

	_, err := client.StreamPlan(context.Background(), testRequest(), nil)
	if err == nil {
		t.Fatal("expected error when the stream ends early")
	}
}

package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Trip preferences submitted alongside the free-text prompt.
type TripPreferences struct {
	City          string `json:"city"`
	TravelStyle   string `json:"travel_style"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	StartLocation string `json:"start_location,omitempty"`
	DurationDays  int    `json:"duration_days"`
	DurationHours int    `json:"duration_hours"`
}

// StartWaypoint returns the trip-level starting point: the requested
// start location when set, otherwise the central-station default.
func (p TripPreferences) StartWaypoint() Waypoint {
	name := strings.TrimSpace(p.StartLocation)
	if name == "" {
		return DefaultTripStart
	}
	return Waypoint{Name: name, Coord: CityCenterFallback}
}

// Payload sent to the upstream travel-planning backend.
type PlanRequest struct {
	Prompt      string          `json:"prompt"`
	Preferences TripPreferences `json:"preferences"`
}

// Optimized-route overview attached by upstream when it pre-computed one.
type RouteOverview struct {
	Polyline string  `json:"polyline,omitempty"`
	Bounds   *Bounds `json:"bounds,omitempty"`
}

// Upstream travel-planning response.
type PlanResponse struct {
	Itinerary   []*ItineraryItem `json:"itinerary"`
	RouteInfo   *RouteOverview   `json:"route_info,omitempty"`
	WeatherInfo json.RawMessage  `json:"weather_info,omitempty"`
	NotionURL   string           `json:"notion_url,omitempty"`
}

// One past trip request, most recent first in listings.
type Submission struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Request   PlanRequest   `json:"request"`
	Response  *PlanResponse `json:"response,omitempty"`
}

// Cost breakdown returned by the budget collaborator.
type BudgetBreakdown struct {
	Currency    string         `json:"currency"`
	Total       int            `json:"total"`
	PerCategory map[string]int `json:"per_category"`
}

// Travel style with its recommended day window.
type TravelStyle struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TravelStyles is the fixed style catalog, with the start/end times the
// form pre-fills per style.
func TravelStyles() []TravelStyle {
	return []TravelStyle{
		{Key: "indoor_date", Label: "실내 데이트", StartTime: "10:00", EndTime: "18:00"},
		{Key: "outdoor_date", Label: "실외 데이트", StartTime: "09:00", EndTime: "17:00"},
		{Key: "food_tour", Label: "맛집 투어", StartTime: "11:00", EndTime: "21:00"},
		{Key: "culture_tour", Label: "문화 탐방", StartTime: "09:30", EndTime: "17:30"},
		{Key: "shopping_tour", Label: "쇼핑 투어", StartTime: "11:00", EndTime: "20:00"},
		{Key: "healing_tour", Label: "힐링 여행", StartTime: "10:00", EndTime: "16:00"},
		{Key: "adventure_tour", Label: "액티비티 투어", StartTime: "09:00", EndTime: "18:00"},
		{Key: "night_tour", Label: "야경 투어", StartTime: "17:00", EndTime: "22:00"},
		{Key: "family_tour", Label: "가족 여행", StartTime: "10:00", EndTime: "17:00"},
		{Key: "custom", Label: "맞춤 여행", StartTime: "09:00", EndTime: "18:00"},
	}
}

// StyleLabel maps a style key to its display label, defaulting to the
// custom style for unknown keys.
func StyleLabel(key string) string {
	for _, s := range TravelStyles() {
		if s.Key == key {
			return s.Label
		}
	}
	return "맞춤 여행"
}

package dto

import "encoding/json"

type PlanSubmission struct {
	Prompt      string      `json:"prompt"`
	Preferences Preferences `json:"preferences"`
}

type Preferences struct {
	City          string `json:"city"`
	TravelStyle   string `json:"travel_style"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	StartLocation string `json:"start_location"`
}

type PlanViewResponse struct {
	SessionID    string          `json:"session_id"`
	SubmissionID string          `json:"submission_id"`
	Days         []int           `json:"days"`
	ShowTabs     bool            `json:"show_tabs"`
	ActiveDay    int             `json:"active_day"`
	Timeline     []TimelineItem  `json:"timeline"`
	Map          MapState        `json:"map"`
	NotionURL    string          `json:"notion_url,omitempty"`
	WeatherInfo  json.RawMessage `json:"weather_info,omitempty"`
}

type TimelineItem struct {
	Position       int     `json:"position"`
	Time           string  `json:"time,omitempty"`
	Duration       string  `json:"duration,omitempty"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Location       string  `json:"location,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	QualityScore   float64 `json:"quality_score,omitempty"`
	Transportation string  `json:"transportation,omitempty"`
}

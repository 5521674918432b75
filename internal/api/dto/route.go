package dto

type DaySelectRequest struct {
	Day int `json:"day"`
}

type RouteLookupRequest struct {
	Index int    `json:"index"`
	Mode  string `json:"mode"`
}

type RouteModeRequest struct {
	Mode string `json:"mode"`
}

type MarkerInfoRequest struct {
	Index int `json:"index"`
}

type RouteSegmentResponse struct {
	Mode        string `json:"mode"`
	Instruction string `json:"instruction,omitempty"`
	LineName    string `json:"line_name,omitempty"`
	LineColor   string `json:"line_color,omitempty"`
	Vehicle     string `json:"vehicle,omitempty"`
	DepartStop  string `json:"depart_stop,omitempty"`
	ArriveStop  string `json:"arrive_stop,omitempty"`
	StopCount   int    `json:"stop_count,omitempty"`
	Distance    string `json:"distance,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

type RouteResponse struct {
	Kind            string                 `json:"kind"`
	Mode            string                 `json:"mode"`
	Origin          string                 `json:"origin"`
	Destination     string                 `json:"destination"`
	DistanceText    string                 `json:"distance_text,omitempty"`
	DurationText    string                 `json:"duration_text,omitempty"`
	DistanceMeters  float64                `json:"distance_meters,omitempty"`
	DurationSeconds int                    `json:"duration_seconds,omitempty"`
	Segments        []RouteSegmentResponse `json:"segments,omitempty"`
	Reason          string                 `json:"reason,omitempty"`
	Map             MapState               `json:"map"`
}

type HistoryEntryResponse struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	Prompt      string `json:"prompt"`
	City        string `json:"city,omitempty"`
	TravelStyle string `json:"travel_style,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

type HistoryListResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
}

type BudgetRequest struct {
	SessionID   string `json:"session_id"`
	TravelStyle string `json:"travel_style"`
}

type NoteSaveRequest struct {
	SessionID string `json:"session_id"`
}

type NoteSaveResponse struct {
	URL string `json:"url"`
}

type StyleResponse struct {
	Value     string `json:"value"`
	Label     string `json:"label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

package dto

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type MarkerResponse struct {
	ID      int     `json:"id"`
	Label   string  `json:"label"`
	Title   string  `json:"title"`
	Info    string  `json:"info,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Visible bool    `json:"visible"`
}

type RoutePathResponse struct {
	Points []LatLng `json:"points"`
	Color  string   `json:"color"`
	Dashed bool     `json:"dashed"`
}

type MapState struct {
	Markers    []MarkerResponse   `json:"markers"`
	Route      *RoutePathResponse `json:"route,omitempty"`
	Zoom       int                `json:"zoom"`
	Center     LatLng             `json:"center"`
	InfoOpenOn int                `json:"info_open_on,omitempty"`
}

package domain

import (
	"strconv"
	"strings"
)

// Fallback coordinate used when an item carries no usable position.
var CityCenterFallback = Coordinates{Lat: 37.5665, Lng: 126.9780}

// Default trip-level starting point when the request did not set one.
var DefaultTripStart = Waypoint{
	Name:  "서울역",
	Coord: Coordinates{Lat: 37.5547, Lng: 126.9707},
}

// Hour assumed for items whose scheduled time is absent or unparseable.
const DefaultScheduleHour = 9

// How a day number was attached to an itinerary item.
type DaySource int

const (
	DayUnassigned DaySource = iota
	DayExplicit             // carried in the upstream payload
	DayInferred             // derived by the rollover heuristic
)

// Resolved day number for an item plus its provenance.
type DayAssignment struct {
	Day    int
	Source DaySource
}

// One scheduled stop in a trip plan, in upstream payload order.
// Identity is positional; the struct itself carries no sequence number.
type ItineraryItem struct {
	Name           string  `json:"name"`
	Activity       string  `json:"activity,omitempty"`
	PlaceName      string  `json:"place_name,omitempty"`
	Time           string  `json:"time,omitempty"` // "HH:MM"
	Duration       string  `json:"duration,omitempty"`
	Description    string  `json:"description,omitempty"`
	Location       string  `json:"location,omitempty"`
	Address        string  `json:"address,omitempty"`
	Lat            float64 `json:"lat,omitempty"`
	Lng            float64 `json:"lng,omitempty"`
	Day            int     `json:"day,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	QualityScore   float64 `json:"quality_score,omitempty"`
	Transportation string  `json:"transportation,omitempty"`

	assignment DayAssignment
}

// DisplayName prefers the verified place name, then the item name,
// then the raw activity text.
func (it *ItineraryItem) DisplayName() string {
	for _, s := range []string{it.PlaceName, it.Name, it.Activity} {
		if strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// FormattedAddress prefers the verified address over the free-text location.
func (it *ItineraryItem) FormattedAddress() string {
	if strings.TrimSpace(it.Address) != "" {
		return strings.TrimSpace(it.Address)
	}
	return strings.TrimSpace(it.Location)
}

func (it *ItineraryItem) Coord() Coordinates {
	return Coordinates{Lat: it.Lat, Lng: it.Lng}
}

// HasExplicitDay reports whether the upstream payload tagged this item
// with a day number.
func (it *ItineraryItem) HasExplicitDay() bool {
	return it.Day > 0
}

// ResolvedDay returns the cached day assignment, if any.
func (it *ItineraryItem) ResolvedDay() (DayAssignment, bool) {
	if it.assignment.Source == DayUnassigned {
		return DayAssignment{}, false
	}
	return it.assignment, true
}

// AssignDay caches a day resolution. Once resolved the assignment is
// never recomputed; later calls are no-ops.
func (it *ItineraryItem) AssignDay(day int, source DaySource) {
	if it.assignment.Source != DayUnassigned {
		return
	}
	it.assignment = DayAssignment{Day: day, Source: source}
}

// ScheduleHour parses the hour component of the item's scheduled time.
// Missing colons and non-numeric hours fall back to DefaultScheduleHour
// instead of failing.
func (it *ItineraryItem) ScheduleHour() int {
	t := strings.TrimSpace(it.Time)
	if t == "" {
		return DefaultScheduleHour
	}

	hourPart, _, found := strings.Cut(t, ":")
	if !found {
		return DefaultScheduleHour
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil || hour < 0 || hour > 23 {
		return DefaultScheduleHour
	}

	return hour
}

// A named place or raw coordinate used as a route endpoint.
// The name is preferred when present; coordinates back the straight-line
// fallback and marker placement.
type Waypoint struct {
	Name  string
	Coord Coordinates
}

// WaypointForItem builds a route endpoint from an itinerary item using
// the display-name fallback chain.
func WaypointForItem(it *ItineraryItem) Waypoint {
	return Waypoint{Name: it.DisplayName(), Coord: it.Coord()}
}

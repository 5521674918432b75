package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/platform/obs"
	"travel-itinerary-service/internal/ports"
)

// GoogleMapsProvider implements DirectionsProvider and ReverseGeocoder
// against the Google Maps web service APIs.
//
// It coordinates:
//   - Endpoint normalization (named place preferred over raw coordinates)
//   - External API calls with retry/backoff
//   - Provider status mapping to typed errors
//
// The provider is safe for concurrent use.
type GoogleMapsProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	lang    string
}

func NewGoogleMapsProvider(apiKey string) (*GoogleMapsProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	return &GoogleMapsProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
		lang:    "ko",
	}, nil
}

type textValue struct {
	Text string `json:"text"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Distance textValue `json:"distance"`
			Duration textValue `json:"duration"`
			Steps    []struct {
				TravelMode       string    `json:"travel_mode"`
				HTMLInstructions string    `json:"html_instructions"`
				Distance         textValue `json:"distance"`
				Duration         textValue `json:"duration"`
				StartLocation    latLng    `json:"start_location"`
				EndLocation      latLng    `json:"end_location"`
				TransitDetails   *struct {
					Line struct {
						ShortName string `json:"short_name"`
						Name      string `json:"name"`
						Color     string `json:"color"`
						Vehicle   struct {
							Type string `json:"type"`
						} `json:"vehicle"`
					} `json:"line"`
					DepartureStop struct {
						Name string `json:"name"`
					} `json:"departure_stop"`
					ArrivalStop struct {
						Name string `json:"name"`
					} `json:"arrival_stop"`
					NumStops int `json:"num_stops"`
				} `json:"transit_details"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Directions resolves a single-leg route for the request.
func (g *GoogleMapsProvider) Directions(
	ctx context.Context,
	req ports.DirectionsRequest,
) (_ *ports.DirectionsRoute, err error) {
	defer obs.Time(ctx, "google.Directions")(&err)

	endpoint := g.baseURL + "/maps/api/directions/json"
	params := map[string]string{
		"origin":      waypointParam(req.Origin),
		"destination": waypointParam(req.Destination),
		"mode":        string(req.Mode),
	}

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, endpoint, params)
	})
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if decoded.Status != "OK" {
		return nil, &ports.StatusError{Status: decoded.Status}
	}

	if len(decoded.Routes) == 0 || len(decoded.Routes[0].Legs) == 0 {
		return nil, &ports.StatusError{Status: "ZERO_RESULTS"}
	}

	leg := decoded.Routes[0].Legs[0]

	route := &ports.DirectionsRoute{
		Steps:        make([]ports.DirectionsStep, 0, len(leg.Steps)),
		DistanceText: leg.Distance.Text,
		DurationText: leg.Duration.Text,
	}

	for _, s := range leg.Steps {
		step := ports.DirectionsStep{
			TravelMode:   s.TravelMode,
			Instruction:  s.HTMLInstructions,
			DistanceText: s.Distance.Text,
			DurationText: s.Duration.Text,
			Start:        domain.Coordinates{Lat: s.StartLocation.Lat, Lng: s.StartLocation.Lng},
			End:          domain.Coordinates{Lat: s.EndLocation.Lat, Lng: s.EndLocation.Lng},
		}

		if s.TransitDetails != nil {
			name := s.TransitDetails.Line.ShortName
			if name == "" {
				name = s.TransitDetails.Line.Name
			}
			step.Transit = &ports.TransitDetails{
				LineName:      name,
				LineColor:     s.TransitDetails.Line.Color,
				Vehicle:       s.TransitDetails.Line.Vehicle.Type,
				DepartureStop: s.TransitDetails.DepartureStop.Name,
				ArrivalStop:   s.TransitDetails.ArrivalStop.Name,
				NumStops:      s.TransitDetails.NumStops,
			}
		}

		route.Steps = append(route.Steps, step)
	}

	return route, nil
}

// waypointParam prefers the named place over raw coordinates; only a
// nameless endpoint is sent as "lat,lng".
func waypointParam(w domain.Waypoint) string {
	if w.Name != "" {
		return w.Name
	}
	return strconv.FormatFloat(w.Coord.Lat, 'f', -1, 64) +
		"," + strconv.FormatFloat(w.Coord.Lng, 'f', -1, 64)
}

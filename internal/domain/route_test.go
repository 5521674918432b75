package domain

import (
	"math"
	"testing"
)

func TestParseTravelMode(t *testing.T) {
	cases := []struct {
		in      string
		want    TravelMode
		wantErr bool
	}{
		{in: "transit", want: ModeTransit},
		{in: "walking", want: ModeWalking},
		{in: "driving", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseTravelMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTravelMode(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTravelMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTravelMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEstimateRouteRoundsDurationUp(t *testing.T) {
	origin := Waypoint{Name: "A", Coord: Coordinates{Lat: 37.5665, Lng: 126.9780}}
	destination := Waypoint{Name: "B", Coord: Coordinates{Lat: 37.5765, Lng: 126.9880}}

	res := EstimateRoute(origin, destination, ModeWalking)

	if res.Kind != RouteEstimated {
		t.Fatalf("kind = %v, want RouteEstimated", res.Kind)
	}
	if !res.Dashed() {
		t.Error("estimates should render dashed")
	}

	wantMeters := origin.Coord.DistanceTo(destination.Coord)
	if math.Abs(res.DistanceMeters-wantMeters) > 1e-9 {
		t.Errorf("distance = %f, want %f", res.DistanceMeters, wantMeters)
	}

	wantSeconds := int(math.Ceil(wantMeters / 1.2))
	if res.DurationSeconds != wantSeconds {
		t.Errorf("duration = %d, want %d", res.DurationSeconds, wantSeconds)
	}

	if len(res.Path) != 2 || res.Path[0] != origin.Coord || res.Path[1] != destination.Coord {
		t.Errorf("path = %v, want straight line origin -> destination", res.Path)
	}
}

func TestCoordinatesValid(t *testing.T) {
	cases := []struct {
		name string
		c    Coordinates
		want bool
	}{
		{name: "seoul", c: Coordinates{Lat: 37.5665, Lng: 126.9780}, want: true},
		{name: "null island", c: Coordinates{}, want: false},
		{name: "nan lat", c: Coordinates{Lat: math.NaN(), Lng: 126.9780}, want: false},
		{name: "inf lng", c: Coordinates{Lat: 37.5665, Lng: math.Inf(1)}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

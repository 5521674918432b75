package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/platform/obs"
	"travel-itinerary-service/internal/ports"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// FormattedAddress reverse geocodes a coordinate to a display address.
func (g *GoogleMapsProvider) FormattedAddress(
	ctx context.Context,
	coord domain.Coordinates,
) (_ string, err error) {
	defer obs.Time(ctx, "google.FormattedAddress")(&err)

	if !coord.Valid() {
		return "", fmt.Errorf("reverse geocode: invalid coordinate %.6f,%.6f", coord.Lat, coord.Lng)
	}

	endpoint := g.baseURL + "/maps/api/geocode/json"
	latlng := strconv.FormatFloat(coord.Lat, 'f', -1, 64) +
		"," + strconv.FormatFloat(coord.Lng, 'f', -1, 64)

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, endpoint, map[string]string{"latlng": latlng})
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode geocode response: %w", err)
	}

	if decoded.Status != "OK" {
		return "", &ports.StatusError{Status: decoded.Status}
	}

	if len(decoded.Results) == 0 {
		return "", fmt.Errorf("no geocode results for %s", latlng)
	}

	return decoded.Results[0].FormattedAddress, nil
}

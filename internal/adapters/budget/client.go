// Package budget fetches cost estimates from the external budget
// calculation service.
package budget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"travel-itinerary-service/internal/domain"
)

type Client struct {
	session *http.Client
	baseURL string
}

func NewClient(baseURL string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("budget service base URL is empty")
	}

	return &Client{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type estimateRequest struct {
	Itinerary   []*domain.ItineraryItem `json:"itinerary"`
	TravelStyle string                  `json:"travel_style"`
}

// Estimate returns a cost breakdown for the itinerary and style.
func (c *Client) Estimate(
	ctx context.Context,
	itinerary []*domain.ItineraryItem,
	travelStyle string,
) (*domain.BudgetBreakdown, error) {
	payload, err := json.Marshal(estimateRequest{Itinerary: itinerary, TravelStyle: travelStyle})
	if err != nil {
		return nil, fmt.Errorf("estimate budget: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/api/budget/estimate", bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("estimate budget: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("estimate budget: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("estimate budget: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var breakdown domain.BudgetBreakdown
	if err := json.NewDecoder(resp.Body).Decode(&breakdown); err != nil {
		return nil, fmt.Errorf("estimate budget: decode response: %w", err)
	}

	return &breakdown, nil
}

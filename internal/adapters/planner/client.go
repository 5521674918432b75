// Package planner talks to the upstream travel-planning backend, which
// performs the itinerary generation, place verification, and route
// optimization this service only displays.
package planner

import (
	"bufio"
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
	"travel-itinerary-service/internal/platform/obs"
	"travel-itinerary-service/internal/ports"
)

type Client struct {
	session *http.Client
	baseURL string
}

func NewClient(baseURL string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("planner base URL is empty")
	}

	return &Client{
		// Plan generation runs LLM and crawling work upstream; the
		// timeout is sized for that, not for a typical API call.
		session: &http.Client{Timeout: 180 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// GeneratePlan submits a trip request and waits for the complete plan.
func (c *Client) GeneratePlan(ctx context.Context, req domain.PlanRequest) (_ *domain.PlanResponse, err error) {
	defer obs.Time(ctx, "planner.GeneratePlan")(&err)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("generate plan: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/api/travel/plan", bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("generate plan: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generate plan: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf(
			"generate plan: upstream status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(b)),
		)
	}

	var plan domain.PlanResponse
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, fmt.Errorf("generate plan: decode response: %w", err)
	}

	return &plan, nil
}

// Frame shapes on the streaming endpoint. Progress frames carry
// type/message/progress; the terminal frame carries either the plan
// under "data" or an error message.
type streamFrame struct {
	Type     string          `json:"type"`
	Message  string          `json:"message"`
	Progress int             `json:"progress"`
	Data     json.RawMessage `json:"data"`
}

// StreamPlan submits a trip request over the SSE variant, invoking
// onProgress per status/info frame until a terminal complete or error
// frame arrives. Malformed frames are skipped, never fatal; only an
// explicit error frame or a dropped stream aborts.
func (c *Client) StreamPlan(
	ctx context.Context,
	req domain.PlanRequest,
	onProgress func(ports.ProgressEvent),
) (_ *domain.PlanResponse, err error) {
	defer obs.Time(ctx, "planner.StreamPlan")(&err)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("stream plan: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/api/travel/plan/stream", bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("stream plan: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.session.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("stream plan: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf(
			"stream plan: upstream status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(b)),
		)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}

		var frame streamFrame
		if err := json.Unmarshal([]byte(strings.TrimSpace(data)), &frame); err != nil {
			// Partial or garbled frame; keep reading.
			continue
		}

		switch frame.Type {
		case "status", "info":
			if onProgress != nil {
				onProgress(ports.ProgressEvent{
					Type:     frame.Type,
					Message:  frame.Message,
					Progress: frame.Progress,
				})
			}
		case "complete":
			var plan domain.PlanResponse
			if err := json.Unmarshal(frame.Data, &plan); err != nil {
				return nil, fmt.Errorf("stream plan: decode terminal frame: %w", err)
			}
			return &plan, nil
		case "error":
			msg := frame.Message
			if msg == "" {
				msg = "upstream planning failed"
			}
			return nil, fmt.Errorf("stream plan: upstream error: %s", msg)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stream plan: read stream: %w", err)
	}

	return nil, errors.New("stream plan: stream ended without a terminal frame")
}

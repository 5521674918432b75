package handlers

import (
	"travel-itinerary-service/internal/api/dto"
	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/session"
)

// planView renders the full client view of a session: day tabs, the
// active day's timeline, and the map snapshot.
func planView(s *session.Session, submissionID string) dto.PlanViewResponse {
	plan := s.Plan()

	res := dto.PlanViewResponse{
		SessionID:    s.ID.String(),
		SubmissionID: submissionID,
		Days:         s.Days(),
		ShowTabs:     s.ShowTabs(),
		ActiveDay:    s.ActiveDay(),
		Timeline:     timelineView(s.Timeline()),
		Map:          mapView(s.Map()),
		NotionURL:    plan.NotionURL,
		WeatherInfo:  plan.WeatherInfo,
	}
	return res
}

func timelineView(items []*domain.ItineraryItem) []dto.TimelineItem {
	out := make([]dto.TimelineItem, 0, len(items))
	for i, it := range items {
		out = append(out, dto.TimelineItem{
			Position:       i + 1,
			Time:           it.Time,
			Duration:       it.Duration,
			Name:           it.DisplayName(),
			Description:    it.Description,
			Location:       it.FormattedAddress(),
			Rating:         it.Rating,
			QualityScore:   it.QualityScore,
			Transportation: it.Transportation,
		})
	}
	return out
}

func mapView(state session.MapState) dto.MapState {
	res := dto.MapState{
		Markers: make([]dto.MarkerResponse, 0, len(state.Markers)),
		Zoom:    state.Zoom,
		Center:  dto.LatLng{Lat: state.Center.Lat, Lng: state.Center.Lng},
	}

	for _, m := range state.Markers {
		res.Markers = append(res.Markers, dto.MarkerResponse{
			ID:      int(m.ID),
			Label:   m.Label,
			Title:   m.Title,
			Info:    m.Info,
			Lat:     m.Position.Lat,
			Lng:     m.Position.Lng,
			Visible: m.Visible,
		})
	}

	if state.Route != nil {
		path := &dto.RoutePathResponse{
			Points: make([]dto.LatLng, 0, len(state.Route.Points)),
			Color:  state.Route.Color,
			Dashed: state.Route.Dashed,
		}
		for _, p := range state.Route.Points {
			path.Points = append(path.Points, dto.LatLng{Lat: p.Lat, Lng: p.Lng})
		}
		res.Route = path
	}

	res.InfoOpenOn = int(state.InfoOpenOn)
	return res
}

func routeView(res *domain.RouteResult, state session.MapState) dto.RouteResponse {
	out := dto.RouteResponse{
		Mode:        string(res.Mode),
		Origin:      res.Origin.Name,
		Destination: res.Destination.Name,
		Reason:      res.Reason,
		Map:         mapView(state),
	}

	switch res.Kind {
	case domain.RouteResolved:
		out.Kind = "resolved"
		out.DistanceText = res.DistanceText
		out.DurationText = res.DurationText
		out.Segments = make([]dto.RouteSegmentResponse, 0, len(res.Segments))
		for _, seg := range res.Segments {
			out.Segments = append(out.Segments, dto.RouteSegmentResponse{
				Mode:        string(seg.Mode),
				Instruction: seg.Instruction,
				LineName:    seg.LineName,
				LineColor:   seg.LineColor,
				Vehicle:     seg.Vehicle,
				DepartStop:  seg.DepartStop,
				ArriveStop:  seg.ArriveStop,
				StopCount:   seg.StopCount,
				Distance:    seg.DistanceText,
				Duration:    seg.DurationText,
			})
		}
	case domain.RouteEstimated:
		out.Kind = "estimated"
		out.DistanceMeters = res.DistanceMeters
		out.DurationSeconds = res.DurationSeconds
	}

	return out
}

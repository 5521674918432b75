package api

import (
	"net/http"

	"travel-itinerary-service/internal/api/handlers"
	"travel-itinerary-service/internal/ports"
	"travel-itinerary-service/internal/session"
)

// Deps holds everything the HTTP layer needs. History, Cache,
// Geocoder, Estimator, and Notes may be nil; the affected features
// degrade.
type Deps struct {
	Planner   ports.PlannerClient
	History   ports.HistoryStore
	Cache     ports.AddressCache
	Geocoder  ports.ReverseGeocoder
	Estimator ports.BudgetEstimator
	Notes     ports.NoteSaver
	Sessions  *session.Registry
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Planner:  deps.Planner,
		History:  deps.History,
		Cache:    deps.Cache,
		Geocoder: deps.Geocoder,
		Sessions: deps.Sessions,
	}
	sessionHandler := &handlers.SessionHandler{Sessions: deps.Sessions}
	historyHandler := &handlers.HistoryHandler{Store: deps.History}
	budgetHandler := &handlers.BudgetHandler{Estimator: deps.Estimator, Sessions: deps.Sessions}
	notesHandler := &handlers.NotesHandler{Saver: deps.Notes, Sessions: deps.Sessions}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /api/travel/plan", planHandler.Create)
	mux.HandleFunc("POST /api/travel/plan/stream", planHandler.Stream)

	mux.HandleFunc("GET /api/sessions/{id}", sessionHandler.Get)
	mux.HandleFunc("DELETE /api/sessions/{id}", sessionHandler.Delete)
	mux.HandleFunc("POST /api/sessions/{id}/day", sessionHandler.SelectDay)
	mux.HandleFunc("POST /api/sessions/{id}/route", sessionHandler.Route)
	mux.HandleFunc("POST /api/sessions/{id}/route/mode", sessionHandler.SwitchMode)
	mux.HandleFunc("POST /api/sessions/{id}/route/close", sessionHandler.CloseRoute)
	mux.HandleFunc("POST /api/sessions/{id}/marker/info", sessionHandler.OpenInfo)

	mux.HandleFunc("GET /api/history", historyHandler.List)
	mux.HandleFunc("GET /api/history/{id}", historyHandler.Get)

	mux.HandleFunc("POST /api/budget", budgetHandler.Estimate)
	mux.HandleFunc("POST /api/notes", notesHandler.Save)
	mux.HandleFunc("GET /api/styles", handlers.Styles)

	return loggingMiddleware(mux)
}

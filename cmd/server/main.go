package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"travel-itinerary-service/internal/adapters/budget"
	"travel-itinerary-service/internal/adapters/cache"
	"travel-itinerary-service/internal/adapters/history"
	"travel-itinerary-service/internal/adapters/notes"
	"travel-itinerary-service/internal/adapters/planner"
	"travel-itinerary-service/internal/api"
	"travel-itinerary-service/internal/config"
	"travel-itinerary-service/internal/platform/db"
	"travel-itinerary-service/internal/routing"
	"travel-itinerary-service/internal/session"
)

// main is the application composition root.
// It wires concrete adapters (planner backend, Google Maps, Postgres,
// Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	plannerURL := config.Get("PLANNER_URL", "http://localhost:8000")

	mapsKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if strings.TrimSpace(mapsKey) == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	provider, err := routing.NewGoogleMapsProvider(mapsKey)
	if err != nil {
		log.Fatal(err)
	}

	plannerClient, err := planner.NewClient(plannerURL)
	if err != nil {
		log.Fatal(err)
	}
	budgetClient, err := budget.NewClient(plannerURL)
	if err != nil {
		log.Fatal(err)
	}
	notesClient, err := notes.NewClient(plannerURL)
	if err != nil {
		log.Fatal(err)
	}

	deps := api.Deps{
		Planner:   plannerClient,
		Geocoder:  provider,
		Estimator: budgetClient,
		Notes:     notesClient,
		Sessions:  session.NewRegistry(provider),
	}

	// The address cache rides on Postgres and is optional: without
	// DATABASE_URL every miss goes straight to the geocoder.
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		deps.Cache = cache.NewSQLAddressCache(pg)
	} else {
		log.Println("DATABASE_URL not set; address cache disabled")
	}

	// Trip history lives in Redis and is likewise optional.
	if redisAddr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(redisAddr) != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer client.Close()

		deps.History = history.NewRedisHistoryStore(client)
	} else {
		log.Println("REDIS_ADDR not set; trip history disabled")
	}

	router := api.NewRouter(deps)

	// The write timeout covers the streaming plan endpoint, which can
	// hold the response open for the full upstream generation.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

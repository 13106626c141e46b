package readings

import (
	"net/http"
	"os"
	"strconv"

	"github.com/aeris-iot/aeris-backend/internal/apikeys"
	"github.com/aeris-iot/aeris-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

func SetupRoutes(registry DeviceRegistry) http.Handler {
	r := chi.NewRouter()
	keyFetcher := apikeys.KeyInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyMiddleware(keyFetcher))
		r.Use(middleware.RateLimitMiddleware(ingestRate(), ingestBurst()))
		r.Post("/readings", CreateReadingHandler(registry))
		r.Get("/devices/{device_id}/history", HistoryHandler)
		r.Get("/devices/{device_id}/latest", LatestHandler)
	})

	return r
}

func ingestRate() rate.Limit {
	if s := os.Getenv("RATE_LIMIT_RPS"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			return rate.Limit(v)
		}
	}
	return rate.Limit(50)
}

func ingestBurst() int {
	if s := os.Getenv("RATE_LIMIT_BURST"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return 100
}

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/aeris-iot/aeris-backend/internal/apikeys"
	"github.com/aeris-iot/aeris-backend/internal/db"
	"github.com/aeris-iot/aeris-backend/internal/devices"
	"github.com/aeris-iot/aeris-backend/internal/middleware"
	"github.com/aeris-iot/aeris-backend/internal/readings"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func HealthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := db.Ping(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "db": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "db": "reachable"})
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	apikeys.Init()
	devices.Init()
	readings.Init()

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)
	r.Get("/healthz", HealthzHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/v1", readings.SetupRoutes(devices.RegistryInfo{}))
	r.Mount("/devices", devices.SetupRoutes())
	r.Mount("/keys", apikeys.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}

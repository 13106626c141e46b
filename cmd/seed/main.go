package main

import (
	"log"

	"github.com/aeris-iot/aeris-backend/internal/apikeys"
	"github.com/aeris-iot/aeris-backend/internal/db"
	"github.com/aeris-iot/aeris-backend/internal/devices"
	"github.com/aeris-iot/aeris-backend/internal/readings"
	"github.com/aeris-iot/aeris-backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	apikeys.Init()
	devices.Init()
	readings.Init()

	if err := seeds.SeedAll(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

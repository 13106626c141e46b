package readings

import (
	"log"

	"github.com/aeris-iot/aeris-backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "telemetry"); err != nil {
		log.Fatal("Failed to ensure schema telemetry: ", err)
	}

	if err := db.DB.AutoMigrate(&Reading{}, &IdempotencyRecord{}, &PollutantThreshold{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}

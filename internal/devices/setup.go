package devices

import (
	"log"

	"github.com/aeris-iot/aeris-backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "registry"); err != nil {
		log.Fatal("Failed to ensure schema registry: ", err)
	}

	if err := db.DB.AutoMigrate(&Device{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}

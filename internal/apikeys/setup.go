package apikeys

import (
	"log"

	"github.com/aeris-iot/aeris-backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_auth"); err != nil {
		log.Fatal("Failed to ensure schema app_auth: ", err)
	}

	if err := db.DB.AutoMigrate(&APIKey{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}

package seeds

import (
	"log"

	"github.com/aeris-iot/aeris-backend/internal/apikeys"
	"github.com/aeris-iot/aeris-backend/internal/db"
)

// SeedBootstrapKey issues the first API key when the table is empty. Key
// management endpoints require an existing key, so something has to mint the
// first one. The token is printed once and never recoverable.
func SeedBootstrapKey() error {
	var count int64
	if err := db.DB.Model(&apikeys.APIKey{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	key, token, err := apikeys.Issue("bootstrap")
	if err != nil {
		return err
	}

	log.Printf("Issued bootstrap API key %s", key.KeyID)
	log.Printf("Bearer token (store it now, shown once): %s", token)
	return nil
}

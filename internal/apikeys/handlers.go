package apikeys

import (
	"encoding/json"
	"net/http"

	"github.com/aeris-iot/aeris-backend/internal/db"
	"github.com/go-chi/chi/v5"
)

func CreateKeyHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Owner string `json:"owner"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Owner == "" {
		http.Error(w, "Owner is required", http.StatusBadRequest)
		return
	}

	key, token, err := Issue(input.Owner)
	if err != nil {
		http.Error(w, "Failed to issue key", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"key_id": key.KeyID,
		"owner":  key.Owner,
		// Shown once; only the hash is stored.
		"token": token,
	})
}

func ListKeysHandler(w http.ResponseWriter, r *http.Request) {
	var keys []APIKey
	if err := db.DB.Order("created_at DESC").Find(&keys).Error; err != nil {
		http.Error(w, "Failed to fetch keys: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(keys)
}

func RevokeKeyHandler(w http.ResponseWriter, r *http.Request) {
	keyID := chi.URLParam(r, "key_id")

	var key APIKey
	if err := db.DB.First(&key, "key_id = ?", keyID).Error; err != nil {
		http.Error(w, "Key not found", http.StatusNotFound)
		return
	}

	if err := db.DB.Model(&key).Update("revoked", true).Error; err != nil {
		http.Error(w, "Failed to revoke key", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"key_id": key.KeyID, "revoked": true})
}
